package apiHttp

import (
	"net/url"
	"time"

	ginzap "github.com/gin-contrib/zap"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gigmarket/backend/docs"
	"github.com/gigmarket/backend/pkg/auth"
	"github.com/gigmarket/backend/pkg/limiter"
	"github.com/gigmarket/backend/pkg/logger"
	"github.com/gigmarket/backend/pkg/validator"

	internalV1 "github.com/gigmarket/backend/internal/api/http/internal/v1"
	"github.com/gigmarket/backend/internal/blob"
	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultUploadsPath = "/uploads"

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandlers(
	services *service.Services,
	tokenManager auth.TokenManager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       cfg,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.MaxMultipartMemory = cfg.IDVerification.MaxUploadSize * 2

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware(cfg.HttpServer.AllowedOrigins),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	if cfg.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler(), ginSwagger.InstanceName("internal")))
	}

	// local storage hands out URLs under its public base, so serve them from here
	if cfg.Storage.Driver == blob.DriverLocal || cfg.Storage.Driver == "" {
		router.Static(uploadsPath(cfg.Storage.Local.PublicURL), cfg.Storage.Local.Dir)
	}

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager, h.config)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}

func uploadsPath(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return defaultUploadsPath
	}
	return u.Path
}
