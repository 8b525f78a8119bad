package models

// MemberStatus represents the state of a home membership invitation.
type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusAccepted MemberStatus = "accepted"
	MemberStatusDeclined MemberStatus = "declined"
)

// Home represents a shared household owned by one user.
type Home struct {
	Base
	OwnerID  uint   `gorm:"not null;index" json:"owner_id"`
	Name     string `gorm:"not null" json:"name"`
	Currency string `gorm:"size:3;not null;default:USD" json:"currency"`

	// Relationships
	Owner   User         `gorm:"foreignKey:OwnerID" json:"owner"`
	Members []HomeMember `gorm:"foreignKey:HomeID" json:"members,omitempty"`
}

// HomeMember links a user to a home. Only accepted members count towards
// finance visibility.
type HomeMember struct {
	Base
	HomeID uint         `gorm:"not null;uniqueIndex:idx_home_user" json:"home_id"`
	UserID uint         `gorm:"not null;uniqueIndex:idx_home_user" json:"user_id"`
	Status MemberStatus `gorm:"not null;default:pending" json:"status"`

	// Relationships
	Home Home `gorm:"foreignKey:HomeID" json:"home"`
	User User `gorm:"foreignKey:UserID" json:"user"`
}
