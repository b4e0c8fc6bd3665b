package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cargoflow/cargoflow/internal/server/http/dto"
)

// NotificationHandler serves per-user inboxes.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// List handles GET /api/users/:userId/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.facade.RecipientNotifications(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(notifications) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, dto.NotificationResponse{
			ID:          n.ID,
			RecipientID: n.RecipientID,
			Message:     n.Message,
			Link:        n.Link,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
