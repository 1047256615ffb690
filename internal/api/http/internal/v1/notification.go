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

func (h *Handler) initNotificationsRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications", h.userIdentityMiddleware)
	{
		notifications.GET("", h.getNotifications)
		notifications.POST("/:id/read", h.markNotificationRead)
	}
}

type notificationsListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Unread        int64                 `json:"unread"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
}

// @Summary Get notifications
// @Tags Notifications
// @Description The caller's in-app notifications, newest first
// @ModuleID getNotifications
// @Produce  json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} notificationsListResponse
// @Failure 401 {object} ErrorStruct
// @Security UserAuth
// @Router /notifications [get]
func (h *Handler) getNotifications(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	page, limit := pagination(c)

	result, err := h.services.Notifications.List(c.Request.Context(), userID, page, limit)
	if err != nil {
		logger.Error("list notifications failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	items := result.Items
	if items == nil {
		items = []domain.Notification{}
	}

	c.JSON(http.StatusOK, notificationsListResponse{
		Notifications: items,
		Total:         result.Total,
		Unread:        result.Unread,
		Page:          page,
		Limit:         limit,
	})
}

// @Summary Mark notification read
// @Tags Notifications
// @ModuleID markNotificationRead
// @Produce  json
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /notifications/{id}/read [post]
func (h *Handler) markNotificationRead(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, NotificationNotFoundCode)
		return
	}

	if err := h.services.Notifications.MarkRead(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			errorResponse(c, http.StatusNotFound, NotificationNotFoundCode)
			return
		}
		logger.Error("mark notification read failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.Status(http.StatusNoContent)
}
