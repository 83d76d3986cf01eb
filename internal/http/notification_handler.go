package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flechazo/internal/service"
)

// NotificationHandler mantiene dependencias para endpoints de notificaciones.
type NotificationHandler struct {
	logger           *zap.Logger
	notificationServ *service.NotificationService
}

func NewNotificationHandler(logger *zap.Logger, notificationServ *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{logger: logger, notificationServ: notificationServ}
}

// List maneja GET /notifications. ?unread=true filtra las no leidas.
func (h *NotificationHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.notificationServ.ListForUser(c.Request.Context(), claims.UserID, unreadOnly)
	if err != nil {
		h.logger.Error("list notifications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead maneja POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	if err := h.notificationServ.MarkRead(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		h.logger.Error("mark notification read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
