package v1

import (
	"net/http"
	"strconv"

	"nextcareer-backend/internal/delivery/http/response"
	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

// NewNotificationHandler registers notification polling routes
func NewNotificationHandler(r *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	notifications := r.Group("/notifications")
	{
		notifications.GET("/:userId", handler.List)
		notifications.GET("/unread/:userId", handler.ListUnread)
		notifications.PATCH("/:userId/read/:id", handler.MarkRead)
	}
}

// List godoc
// @Summary      List a user's notifications
// @Description  All notifications for the user, newest first
// @Tags         notifications
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.Notification}
// @Router       /notifications/{userId} [get]
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationUC.List(c, c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications retrieved", notifications)
}

// ListUnread godoc
// @Summary      List a user's unread notifications
// @Tags         notifications
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.Notification}
// @Router       /notifications/unread/{userId} [get]
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	notifications, err := h.notificationUC.ListUnread(c, c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Unread notifications retrieved", notifications)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Param        id      path      int     true  "Notification ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /notifications/{userId}/read/{id} [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid notification ID"))
		return
	}

	if err := h.notificationUC.MarkRead(c, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notification marked as read", nil)
}
