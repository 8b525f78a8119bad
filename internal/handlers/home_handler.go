package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
	"hearth/internal/services"
)

// HomeHandler handles home and membership requests.
type HomeHandler struct {
	homeService  services.HomeServicer
	auditService services.AuditServicer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(homeService services.HomeServicer, auditService services.AuditServicer) *HomeHandler {
	return &HomeHandler{homeService: homeService, auditService: auditService}
}

// CreateHomeRequest represents the request payload for creating a home
type CreateHomeRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Currency string `json:"currency" binding:"omitempty,iso4217"`
}

// CreateHome handles the creation of a new home
// @Summary     Create a home
// @Description Create a new home owned by the authenticated user
// @Tags        homes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateHomeRequest true "Home details"
// @Success     201 {object} map[string]interface{} "Home created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /homes [post]
func (h *HomeHandler) CreateHome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateHomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	home, err := h.homeService.CreateHome(userID, req.Name, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_HOME", "home", home.ID, c.ClientIP(),
		map[string]any{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"home": home})
}

// GetUserHomes handles listing the homes visible to the user
// @Summary     List homes
// @Description Get a paginated list of homes the user owns or belongs to
// @Tags        homes
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Homes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /homes [get]
func (h *HomeHandler) GetUserHomes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	homes, err := h.homeService.GetUserHomes(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, homes)
}

// InviteMemberRequest represents the request payload for inviting a member
type InviteMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// InviteMember handles inviting a user into a home
// @Summary     Invite a member
// @Description Invite a user to a home (owner only); membership starts pending
// @Tags        homes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Home ID"
// @Param       request body InviteMemberRequest true "User to invite"
// @Success     201 {object} map[string]interface{} "Invitation created"
// @Failure     403 {object} ErrorResponse "Not the home owner"
// @Failure     404 {object} ErrorResponse "Home or user not found"
// @Failure     409 {object} ErrorResponse "Already a member"
// @Router      /homes/{id}/members [post]
func (h *HomeHandler) InviteMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	homeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.homeService.InviteMember(userID, homeID, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "INVITE_MEMBER", "home_member", member.ID, c.ClientIP(),
		map[string]any{"home_id": homeID, "invited_user_id": req.UserID})

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// RespondToInviteRequest represents the request payload for answering an invite
type RespondToInviteRequest struct {
	Response string `json:"response" binding:"required,member_response"`
}

// RespondToInvite handles accepting or declining a home invitation
// @Summary     Answer an invitation
// @Description Accept or decline a pending home invitation
// @Tags        homes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Home ID"
// @Param       request body RespondToInviteRequest true "accepted or declined"
// @Success     200 {object} map[string]interface{} "Updated membership"
// @Failure     404 {object} ErrorResponse "No invitation found"
// @Failure     409 {object} ErrorResponse "Invitation already answered"
// @Router      /homes/{id}/members/respond [post]
func (h *HomeHandler) RespondToInvite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	homeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RespondToInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.homeService.RespondToInvite(userID, homeID, models.MemberStatus(req.Response))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RESPOND_INVITE", "home_member", member.ID, c.ClientIP(),
		map[string]any{"home_id": homeID, "response": req.Response})

	c.JSON(http.StatusOK, gin.H{"member": member})
}
