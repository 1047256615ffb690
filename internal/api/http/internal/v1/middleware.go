package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/pkg/auth"
	"github.com/gigmarket/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userId"
	roleCtx             = "userRole"
)

func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	claims, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Debug("parse auth header failed", zap.Error(err))
		}
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	c.Set(userCtx, claims.UserID)
	c.Set(roleCtx, domain.UserRole(claims.Role))
}

// adminMiddleware must run after userIdentityMiddleware.
func (h *Handler) adminMiddleware(c *gin.Context) {
	if h.getUserRole(c) != domain.RoleAdmin {
		errorResponse(c, http.StatusForbidden, ForbiddenCode)
		return
	}
}

func (h *Handler) parseAuthHeader(c *gin.Context) (*auth.Claims, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return nil, errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return nil, errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return nil, errors.New("token is empty")
	}

	return h.tokenManager.Parse(headerParts[1])
}

func (h *Handler) getUserUUID(c *gin.Context) (uuid.UUID, error) {
	id, ok := c.Get(userCtx)
	if !ok {
		return uuid.Nil, errors.New("user id not found")
	}

	userID, ok := id.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user id has wrong type")
	}

	return userID, nil
}

func (h *Handler) getUserRole(c *gin.Context) domain.UserRole {
	role, ok := c.Get(roleCtx)
	if !ok {
		return ""
	}
	r, _ := role.(domain.UserRole)
	return r
}
