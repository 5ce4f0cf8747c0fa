package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/server/http/dto"
)

// NotificationHandler serves the notification store.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	items, err := h.facade.Notifications(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewNotificationResponses(items)})
}

// MarkRead handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := CurrentUserID(c)
	id := pathID(c, "id")
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.MarkNotificationRead(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrMissingField):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
