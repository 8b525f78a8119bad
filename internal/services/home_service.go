package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

// homeService handles home and membership business logic.
type homeService struct {
	db *gorm.DB
}

// NewHomeService creates a new HomeServicer.
func NewHomeService(db *gorm.DB) HomeServicer {
	return &homeService{db: db}
}

// CreateHome creates a new home owned by the given user.
func (s *homeService) CreateHome(ownerID uint, name, currency string) (*models.Home, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "home name is required")
	}
	if currency == "" {
		currency = "USD"
	}

	home := &models.Home{
		OwnerID:  ownerID,
		Name:     name,
		Currency: currency,
	}
	if err := s.db.Create(home).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return home, nil
}

// GetUserHomes returns a paginated list of homes the user owns or has an
// accepted membership in.
func (s *homeService) GetUserHomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Home], error) {
	page.Defaults()

	base := s.db.Model(&models.Home{}).
		Where("owner_id = ? OR id IN (?)", userID,
			s.db.Model(&models.HomeMember{}).
				Select("home_id").
				Where("user_id = ? AND status = ?", userID, models.MemberStatusAccepted))

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var homes []models.Home
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&homes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(homes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetHomeByID returns a home if the user is its owner or an accepted member.
func (s *homeService) GetHomeByID(userID, homeID uint) (*models.Home, error) {
	var home models.Home
	if err := s.db.First(&home, homeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if home.OwnerID == userID {
		return &home, nil
	}

	var count int64
	err := s.db.Model(&models.HomeMember{}).
		Where("home_id = ? AND user_id = ? AND status = ?", homeID, userID, models.MemberStatusAccepted).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrNotHomeMember
	}
	return &home, nil
}

// InviteMember creates a pending membership. Only the home owner may invite.
func (s *homeService) InviteMember(ownerID, homeID, userID uint) (*models.HomeMember, error) {
	var home models.Home
	if err := s.db.First(&home, homeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if home.OwnerID != ownerID {
		return nil, apperrors.ErrNotHomeOwner
	}
	if userID == ownerID {
		return nil, apperrors.ErrSelfInvite
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.HomeMember{}).
		Where("home_id = ? AND user_id = ?", homeID, userID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyMember
	}

	member := &models.HomeMember{
		HomeID: homeID,
		UserID: userID,
		Status: models.MemberStatusPending,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// RespondToInvite accepts or declines a pending invitation.
func (s *homeService) RespondToInvite(userID, homeID uint, status models.MemberStatus) (*models.HomeMember, error) {
	if status != models.MemberStatusAccepted && status != models.MemberStatusDeclined {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "response must be accepted or declined")
	}

	var member models.HomeMember
	if err := s.db.Where("home_id = ? AND user_id = ?", homeID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if member.Status != models.MemberStatusPending {
		return nil, apperrors.ErrInviteNotPending
	}

	if err := s.db.Model(&member).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	member.Status = status
	return &member, nil
}

// AcceptedMemberIDs returns the user IDs of all accepted members of a home,
// excluding the owner.
func (s *homeService) AcceptedMemberIDs(homeID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.HomeMember{}).
		Where("home_id = ? AND status = ?", homeID, models.MemberStatusAccepted).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}
