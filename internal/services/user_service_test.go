package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"hearth/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("new@example.com", "secret123", "Ada", "Lovelace")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "new@example.com" {
			t.Errorf("expected email new@example.com, got %s", user.Email)
		}
		if !user.IsActive {
			t.Error("expected user to be active")
		}
		if user.Password == "secret123" {
			t.Error("password stored in plain text")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")) != nil {
			t.Error("stored hash does not verify against the password")
		}
	})

	t.Run("normalizes_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("  MiXeD@Example.COM ", "secret123", "", "")
		testutil.AssertNoError(t, err)
		if user.Email != "mixed@example.com" {
			t.Errorf("expected lowercased trimmed email, got %q", user.Email)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@example.com", "secret123", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("DUP@example.com", "other456", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "secret123", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateUser("x@example.com", "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUser(t *testing.T) {
	t.Run("by_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		user, err := svc.GetUserByEmail(created.Email)
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("by_email_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("by_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		user, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)
		if user.Email != created.Email {
			t.Errorf("expected email %s, got %s", created.Email, user.Email)
		}
	})

	t.Run("by_id_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByID(999999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		user, err := svc.AttemptLogin(created.Email, "password123")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}

		fresh, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)
		if fresh.LastLoginAt == nil {
			t.Error("expected last login time recorded")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		_, err := svc.AttemptLogin(created.Email, "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email_same_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("ghost@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("inactive_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)
		db.Model(created).Update("is_active", false)

		_, err := svc.AttemptLogin(created.Email, "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}
