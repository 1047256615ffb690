package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gigmarket/backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	approvedMessage = "ID verified successfully. User has been notified."
	rejectedMessage = "ID verification rejected. User has been notified."

	defaultPageLimit = 20
	maxPageLimit     = 100
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", h.userIdentityMiddleware, h.adminMiddleware)
	{
		admin.GET("/id-verifications", h.listIDVerifications)
		admin.POST("/id-verifications/:userId/approve", h.approveIDVerification)
		admin.POST("/id-verifications/:userId/reject", h.rejectIDVerification)
	}
}

type idVerificationUserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	domain.IDVerificationView
}

type idVerificationsListResponse struct {
	Users []idVerificationUserResponse `json:"users"`
	Total int64                        `json:"total"`
	Page  int                          `json:"page"`
	Limit int                          `json:"limit"`
}

type adminDecisionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type rejectIDVerificationRequest struct {
	Reason string `json:"reason" form:"reason"`
}

// @Summary List ID verifications
// @Tags Admin
// @Description Accounts filtered by ID verification status, least recently updated first
// @ModuleID listIDVerifications
// @Produce  json
// @Param status query string false "pending (default), verified, rejected or unset"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} idVerificationsListResponse
// @Failure 403 {object} ErrorStruct
// @Failure 422 {object} ValidationErrorStruct
// @Security AdminAuth
// @Router /admin/id-verifications [get]
func (h *Handler) listIDVerifications(c *gin.Context) {
	status := domain.VerificationStatusPending
	if raw := c.Query("status"); raw != "" {
		parsed, err := domain.ParseVerificationStatus(raw)
		if err != nil {
			fieldErrorResponse(c, domain.NewValidationError("status", "The selected status is invalid."))
			return
		}
		status = parsed
	}

	page, limit := pagination(c)

	users, total, err := h.services.IDVerifications.ListByStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		idVerificationErrorResponse(c, err)
		return
	}

	response := idVerificationsListResponse{
		Users: make([]idVerificationUserResponse, 0, len(users)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, user := range users {
		response.Users = append(response.Users, idVerificationUserResponse{
			ID:                 user.ID,
			Name:               user.Name,
			Email:              user.Email,
			Role:               user.Role,
			CreatedAt:          user.CreatedAt,
			IDVerificationView: user.Verification.View(true),
		})
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Approve ID verification
// @Tags Admin
// @Description Marks the account's ID as verified and notifies the user
// @ModuleID approveIDVerification
// @Produce  json
// @Param userId path string true "User ID"
// @Success 200 {object} adminDecisionResponse
// @Failure 403 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security AdminAuth
// @Router /admin/id-verifications/{userId}/approve [post]
func (h *Handler) approveIDVerification(c *gin.Context) {
	adminID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, UserNotFoundCode)
		return
	}

	if err := h.services.IDVerifications.Approve(c.Request.Context(), adminID, userID); err != nil {
		idVerificationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, adminDecisionResponse{Success: true, Message: approvedMessage})
}

// @Summary Reject ID verification
// @Tags Admin
// @Description Rejects the account's ID with a reason and notifies the user
// @ModuleID rejectIDVerification
// @Accept  json
// @Produce  json
// @Param userId path string true "User ID"
// @Param input body rejectIDVerificationRequest true "Rejection reason"
// @Success 200 {object} adminDecisionResponse
// @Failure 403 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 422 {object} ValidationErrorStruct
// @Security AdminAuth
// @Router /admin/id-verifications/{userId}/reject [post]
func (h *Handler) rejectIDVerification(c *gin.Context) {
	adminID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, UserNotFoundCode)
		return
	}

	// An empty body leaves the reason blank so the service reports it as a field error.
	var req rejectIDVerificationRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		errorResponse(c, http.StatusBadRequest, InvalidRequestCode)
		return
	}

	if err := h.services.IDVerifications.Reject(c.Request.Context(), adminID, userID, req.Reason); err != nil {
		idVerificationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, adminDecisionResponse{Success: true, Message: rejectedMessage})
}

func pagination(c *gin.Context) (int, int) {
	page := 1
	limit := defaultPageLimit

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxPageLimit {
			limit = l
		}
	}

	return page, limit
}
