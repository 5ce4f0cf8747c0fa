package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/server/http/dto"
)

// PickupHandler manages pickup endpoints.
type PickupHandler struct {
	facade PickupFacade
}

// NewPickupHandler constructs PickupHandler.
func NewPickupHandler(facade PickupFacade) *PickupHandler {
	return &PickupHandler{facade: facade}
}

// Schedule handles POST /api/pickup.
func (h *PickupHandler) Schedule(c *gin.Context) {
	var req dto.SchedulePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	pickup, err := h.facade.SchedulePickup(c.Request.Context(), CurrentUserID(c), req.OrderID, req.Location, req.ScheduledAt)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingField):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotAuthorized):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Data: dto.NewPickupResponse(*pickup)})
}

// UpdateStatus handles PUT /api/pickup/status.
func (h *PickupHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdatePickupStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	pickup, err := h.facade.UpdatePickupStatus(c.Request.Context(), CurrentUserID(c), req.PickupID, model.PickupStatus(req.NewStatus))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingField):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotAuthorized):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewPickupResponse(*pickup)})
}

// Scan handles POST /api/pickup/scan: the decoded QR payload confirms the
// handoff. Each rejection carries its specific message so the scanner can
// show what exactly went wrong.
func (h *PickupHandler) Scan(c *gin.Context) {
	var req dto.ScanPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "invalid payload"})
		return
	}

	pickup, err := h.facade.ConfirmPickupScan(c.Request.Context(), CurrentUserID(c), []byte(req.Payload))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMalformedQRPayload):
			c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "malformed QR payload"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.StatusResponse{Success: false, Message: "pickup not found"})
		case errors.Is(err, domainErrors.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, dto.StatusResponse{Success: false, Message: "not a party to this order"})
		case errors.Is(err, domainErrors.ErrPickupMismatch):
			c.JSON(http.StatusConflict, dto.StatusResponse{Success: false, Message: "scanned pickup does not match order"})
		case errors.Is(err, domainErrors.ErrPickupCompleted):
			c.JSON(http.StatusConflict, dto.StatusResponse{Success: false, Message: "pickup already completed"})
		default:
			c.JSON(http.StatusInternalServerError, dto.StatusResponse{Success: false, Message: "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Data: dto.NewPickupResponse(*pickup)})
}
