package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hearth/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestHome creates a home owned by the given user.
func CreateTestHome(t *testing.T, db *gorm.DB, ownerID uint) *models.Home {
	t.Helper()

	home := &models.Home{
		OwnerID:  ownerID,
		Name:     fmt.Sprintf("Test Home %d", nextID()),
		Currency: "USD",
	}
	if err := db.Create(home).Error; err != nil {
		t.Fatalf("failed to create test home: %v", err)
	}
	return home
}

// CreateTestMember adds a membership with the given status.
func CreateTestMember(t *testing.T, db *gorm.DB, homeID, userID uint, status models.MemberStatus) *models.HomeMember {
	t.Helper()

	member := &models.HomeMember{
		HomeID: homeID,
		UserID: userID,
		Status: status,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test home member: %v", err)
	}
	return member
}

// CreateTestFinanceRecord creates a finance record with a raw stored amount.
// Callers pass the amount already encoded for whatever codec the test uses.
func CreateTestFinanceRecord(t *testing.T, db *gorm.DB, homeID, createdBy uint, financeType models.FinanceType, storedAmount string, txDate time.Time) *models.FinanceRecord {
	t.Helper()

	record := &models.FinanceRecord{
		HomeID:          homeID,
		Type:            financeType,
		Category:        fmt.Sprintf("Test Category %d", nextID()),
		Amount:          storedAmount,
		TransactionDate: txDate,
		CreatedBy:       createdBy,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test finance record: %v", err)
	}
	return record
}

// GrantTestVisibility shares a finance record with a user.
func GrantTestVisibility(t *testing.T, db *gorm.DB, financeID, userID uint) {
	t.Helper()

	row := &models.FinanceVisibility{FinanceID: financeID, UserID: userID}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create test visibility row: %v", err)
	}
}
