package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/server/http/dto"
)

// OfferHandler manages offer endpoints.
type OfferHandler struct {
	facade OfferFacade
}

// NewOfferHandler constructs OfferHandler.
func NewOfferHandler(facade OfferFacade) *OfferHandler {
	return &OfferHandler{facade: facade}
}

// Make handles POST /api/offers.
func (h *OfferHandler) Make(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.MakeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	offer, err := h.facade.MakeOffer(c.Request.Context(), userID, req.RequestID, req.Price, req.EstimatedDeliveryDate, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingField):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrRequestNotOfferable):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.DataResponse{Data: dto.NewOfferResponse(*offer)})
}

// UpdateStatus handles PATCH /api/offers/:id/status. ACCEPTED runs the
// two-phase accept saga; REJECTED is the requester's refusal; CANCELLED
// withdraws the traveler's own offer.
func (h *OfferHandler) UpdateStatus(c *gin.Context) {
	userID := CurrentUserID(c)
	offerID := pathID(c, "id")
	if offerID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.UpdateOfferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	switch model.OfferStatus(req.Status) {
	case model.OfferStatusAccepted:
		order, err := h.facade.AcceptOffer(c.Request.Context(), userID, offerID)
		if err != nil {
			h.respondAcceptError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewOrderResponse(*order)})
	case model.OfferStatusRejected:
		if err := h.facade.RejectOffer(c.Request.Context(), userID, offerID); err != nil {
			respondOfferError(c, err)
			return
		}
		c.Status(http.StatusOK)
	case "CANCELLED":
		if err := h.facade.WithdrawOffer(c.Request.Context(), userID, offerID); err != nil {
			respondOfferError(c, err)
			return
		}
		c.Status(http.StatusOK)
	default:
		c.Status(http.StatusBadRequest)
	}
}

// RetryAccept handles POST /api/offers/:id/accept/retry: it resumes the
// accept saga's second phase against the already created order.
func (h *OfferHandler) RetryAccept(c *gin.Context) {
	userID := CurrentUserID(c)
	offerID := pathID(c, "id")
	if offerID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.RetryAcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.RetryAcceptOffer(c.Request.Context(), userID, offerID, req.OrderID)
	if err != nil {
		h.respondAcceptError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewOrderResponse(*order)})
}

// respondAcceptError surfaces the saga's partial failure distinctly: the
// client gets the created order id and a recovery hint instead of a
// generic failure.
func (h *OfferHandler) respondAcceptError(c *gin.Context, err error) {
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
}

func respondOfferError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrMissingField):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrNotAuthorized):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrOfferNotPending), errors.Is(err, domainErrors.ErrRequestNotOfferable):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
