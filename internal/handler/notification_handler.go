package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"exercise-tracker/internal/middleware"
	"exercise-tracker/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

type markReadRequest struct {
	NotificationID int `json:"notification_id"`
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListUnread serves the unread partition as a bare array; clients infer
// "more available" from a page of exactly `limit` items.
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	limit, offset := pageParams(c)
	notifications, apiErr := h.notificationService.ListUnread(c.Request.Context(), middleware.SessionID(c), limit, offset)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) ListRead(c *gin.Context) {
	limit, offset := pageParams(c)
	notifications, apiErr := h.notificationService.ListRead(c.Request.Context(), middleware.SessionID(c), limit, offset)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NotificationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "notification_id is required"},
		})
		return
	}

	marked, apiErr := h.notificationService.MarkRead(c.Request.Context(), middleware.SessionID(c), req.NotificationID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

func (h *NotificationHandler) Clear(c *gin.Context) {
	cleared, apiErr := h.notificationService.ClearAll(c.Request.Context(), middleware.SessionID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	return limit, offset
}
