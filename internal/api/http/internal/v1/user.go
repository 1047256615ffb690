package v1

import (
	"errors"
	"net/http"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/service"
	"github.com/gigmarket/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.GET("/:id", h.userIdentityMiddleware, h.getUserProfile)

	auth := api.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Phone    string `json:"phone" binding:"omitempty,phonenumber"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=employer gig_worker"`
}

type registerResponse struct {
	ID                   uuid.UUID                 `json:"id"`
	IDVerificationStatus domain.VerificationStatus `json:"id_verification_status"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userAuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type userProfileResponse struct {
	ID   uuid.UUID       `json:"id"`
	Name string          `json:"name"`
	Role domain.UserRole `json:"role"`
	domain.IDVerificationView
}

// @Summary Register
// @Tags Auth
// @Description Creates an employer or gig worker account
// @ModuleID register
// @Accept  json
// @Produce  json
// @Param input body registerRequest true "Account"
// @Success 201 {object} registerResponse
// @Failure 400 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 422 {object} ValidationErrorStruct
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, err := h.services.Users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     domain.UserRole(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExist):
			errorResponse(c, http.StatusConflict, UserAlreadyExistsCode)
		case errors.Is(err, service.ErrRoleNotAllowed):
			errorResponse(c, http.StatusBadRequest, RoleNotAllowedCode)
		default:
			logger.Error("register failed", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		}
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		ID:                   user.ID,
		IDVerificationStatus: user.Verification.Status(),
	})
}

// @Summary Login
// @Tags Auth
// @Description Exchanges credentials for an access token
// @ModuleID login
// @Accept  json
// @Produce  json
// @Param input body loginRequest true "Credentials"
// @Success 200 {object} userAuthResponse
// @Failure 401 {object} ErrorStruct
// @Failure 422 {object} ValidationErrorStruct
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorResponse(c, http.StatusUnauthorized, InvalidCredentialsCode)
			return
		}
		logger.Error("login failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, userAuthResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   int64(tokens.AccessTTL.Seconds()),
	})
}

// @Summary Get user profile
// @Tags Users
// @Description Public profile with ID verification status. Images and review notes are
// @Description only included for the owner and administrators.
// @ModuleID getUserProfile
// @Produce  json
// @Param id path string true "User ID"
// @Success 200 {object} userProfileResponse
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /users/{id} [get]
func (h *Handler) getUserProfile(c *gin.Context) {
	viewerID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, UserNotFoundCode)
		return
	}

	profile, err := h.services.Users.GetProfile(c.Request.Context(), service.Viewer{
		ID:   viewerID,
		Role: h.getUserRole(c),
	}, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			errorResponse(c, http.StatusNotFound, UserNotFoundCode)
			return
		}
		logger.Error("get user profile failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, userProfileResponse{
		ID:                 profile.User.ID,
		Name:               profile.User.Name,
		Role:               profile.User.Role,
		IDVerificationView: profile.Verification,
	})
}
