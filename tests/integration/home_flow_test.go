package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHomeFlow_CreateInviteAccept(t *testing.T) {
	app := setupApp(t)

	ownerToken, _ := app.registerUser(t, "owner@test.com", "password123")
	memberToken, memberID := app.registerUser(t, "member@test.com", "password123")

	// Step 1: Owner creates a home
	homeID := app.createHome(t, ownerToken, "Maple Street")

	// Step 2: Owner invites the member
	rec := app.request("POST", fmt.Sprintf("/api/v1/homes/%.0f/members", homeID),
		fmt.Sprintf(`{"user_id":%.0f}`, memberID), ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("invite failed: %d %s", rec.Code, rec.Body.String())
	}
	member := parseJSON(t, rec)["member"].(map[string]interface{})
	if member["status"] != "pending" {
		t.Errorf("expected pending invite, got %v", member["status"])
	}

	// Step 3: Before accepting, the invitee cannot see the home
	rec = app.request("GET", "/api/v1/homes", "", memberToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list homes failed: %d %s", rec.Code, rec.Body.String())
	}
	if data := parseJSON(t, rec)["data"].([]interface{}); len(data) != 0 {
		t.Errorf("expected no visible homes before accepting, got %d", len(data))
	}

	// Step 4: Member accepts
	rec = app.request("POST", fmt.Sprintf("/api/v1/homes/%.0f/members/respond", homeID),
		`{"response":"accepted"}`, memberToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 5: The home now appears in the member's list
	rec = app.request("GET", "/api/v1/homes", "", memberToken)
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 visible home after accepting, got %d", len(data))
	}
	home := data[0].(map[string]interface{})
	if home["name"] != "Maple Street" {
		t.Errorf("expected Maple Street, got %v", home["name"])
	}

	// Step 6: Answering again conflicts
	rec = app.request("POST", fmt.Sprintf("/api/v1/homes/%.0f/members/respond", homeID),
		`{"response":"declined"}`, memberToken)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second answer, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHomeFlow_OnlyOwnerInvites(t *testing.T) {
	app := setupApp(t)

	ownerToken, _ := app.registerUser(t, "owner2@test.com", "password123")
	memberToken, memberID := app.registerUser(t, "member2@test.com", "password123")
	_, thirdID := app.registerUser(t, "third@test.com", "password123")

	homeID := app.createHome(t, ownerToken, "Oak Avenue")
	app.addAcceptedMember(t, ownerToken, memberToken, homeID, memberID)

	// An accepted member may not invite others.
	rec := app.request("POST", fmt.Sprintf("/api/v1/homes/%.0f/members", homeID),
		fmt.Sprintf(`{"user_id":%.0f}`, thirdID), memberToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "NOT_HOME_OWNER" {
		t.Errorf("expected NOT_HOME_OWNER, got %v", errObj["code"])
	}
}

func TestHomeFlow_DeclinedMemberSeesNothing(t *testing.T) {
	app := setupApp(t)

	ownerToken, _ := app.registerUser(t, "owner3@test.com", "password123")
	memberToken, memberID := app.registerUser(t, "member3@test.com", "password123")

	homeID := app.createHome(t, ownerToken, "Birch Lane")

	rec := app.request("POST", fmt.Sprintf("/api/v1/homes/%.0f/members", homeID),
		fmt.Sprintf(`{"user_id":%.0f}`, memberID), ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("invite failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", fmt.Sprintf("/api/v1/homes/%.0f/members/respond", homeID),
		`{"response":"declined"}`, memberToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("decline failed: %d %s", rec.Code, rec.Body.String())
	}

	// Declined members cannot read the home's finances.
	rec = app.request("GET", fmt.Sprintf("/api/v1/homes/%.0f/finances", homeID), "", memberToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for declined member, got %d: %s", rec.Code, rec.Body.String())
	}
}
