package handlers

import (
	"net/http"

	"smartrubbish/internal/apperrors"
	"smartrubbish/internal/services"
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *gin.Context) {
	utils.RespondSuccess(c, h.notifications.ListFor(currentUser(c).ID), "")
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"count": h.notifications.UnreadCount(currentUser(c).ID)}, "")
}

// owned reports whether the notification exists and belongs to the current user.
func (h *NotificationHandler) owned(c *gin.Context) (string, bool) {
	id := c.Param("id")
	n, ok := h.notifications.Get(id)
	if !ok || n.UserID != currentUser(c).ID {
		notFound(c, "Notification not found")
		return "", false
	}
	return id, true
}

func (h *NotificationHandler) Read(c *gin.Context) {
	id, ok := h.owned(c)
	if !ok {
		return
	}
	if !h.notifications.MarkRead(id) {
		utils.RespondError(c, http.StatusInternalServerError, apperrors.CodeNotificationUpdate, "Failed to update notification")
		return
	}
	utils.RespondSuccess(c, nil, "Notification marked as read")
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	if !h.notifications.MarkAllRead(currentUser(c).ID) {
		utils.RespondError(c, http.StatusInternalServerError, apperrors.CodeNotificationUpdate, "Failed to update notifications")
		return
	}
	utils.RespondSuccess(c, nil, "All notifications marked as read")
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := h.owned(c)
	if !ok {
		return
	}
	if !h.notifications.Delete(id) {
		utils.RespondError(c, http.StatusInternalServerError, apperrors.CodeStorageDelete, "Failed to delete notification")
		return
	}
	utils.RespondSuccess(c, nil, "Notification deleted")
}
