package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nilecart/storefront_api/internal/service"
	"github.com/nilecart/storefront_api/internal/utils"
)

// NotificationHandler handles admin notification endpoints.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /v1/admin/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := parsePaging(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, unread, err := h.notificationService.List(c.Request.Context(), unreadOnly, page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve notifications")
		return
	}
	utils.SuccessWithPagination(c, 200, "Notifications retrieved", gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	}, page, limit, total)
}

// MarkRead handles PATCH /v1/admin/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to mark notification read")
		return
	}
	utils.Success(c, 200, "Notification marked read", nil)
}

// MarkAllRead handles PATCH /v1/admin/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context()); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to mark notifications read")
		return
	}
	utils.Success(c, 200, "All notifications marked read", nil)
}
