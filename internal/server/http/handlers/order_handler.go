package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/server/http/dto"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	offers  OfferFacade
	process ProcessFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(offers OfferFacade, process ProcessFacade) *OrderHandler {
	return &OrderHandler{offers: offers, process: process}
}

// Create handles POST /api/orders. Creating an order IS accepting the
// referenced offer: the saga creates the order and then marks the offer
// accepted, so the handler delegates to the accept operation.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.OfferID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.offers.AcceptOffer(c.Request.Context(), userID, req.OfferID)
	if err != nil {
		var incomplete *domainErrors.OfferAcceptIncompleteError
		if errors.As(err, &incomplete) {
			c.JSON(http.StatusConflict, dto.StatusResponse{
				Success: false,
				Data:    dto.AcceptIncompleteResponse{OrderID: incomplete.OrderID, OfferID: incomplete.OfferID},
				Message: "order created but offer not marked accepted, retry accepting",
			})
			return
		}
		respondOfferError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.DataResponse{Data: dto.NewOrderResponse(*order)})
}

// UpdateStatus handles PATCH /api/orders/:id/status: it advances the
// order's process one step or cancels it.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID := pathID(c, "id")
	if orderID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	process, err := h.process.AdvanceOrderStatus(c.Request.Context(), userID, orderID, model.ProcessStatus(req.Status), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingField):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotAuthorized):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrTerminalStatus), errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrPaymentDeclined):
			c.Status(http.StatusPaymentRequired)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewProcessResponse(*process)})
}
