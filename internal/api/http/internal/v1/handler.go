package v1

import (
	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/service"
	"github.com/gigmarket/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Gig Marketplace API
// @version 1.0
// @description Accounts, identity verification and notifications

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initUsersRoutes(v1)
	h.initIDVerificationRoutes(v1)
	h.initAdminRoutes(v1)
	h.initNotificationsRoutes(v1)
}
