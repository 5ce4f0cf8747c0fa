package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/server/http/dto"
)

// RequestHandler manages delivery-request endpoints.
type RequestHandler struct {
	facade RequestFacade
}

// NewRequestHandler constructs RequestHandler.
func NewRequestHandler(facade RequestFacade) *RequestHandler {
	return &RequestHandler{facade: facade}
}

// Create handles POST /api/requests.
func (h *RequestHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	request, err := h.facade.CreateRequest(c.Request.Context(), userID, req.GoodsName, req.Quantity, req.Origin, req.Destination)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingField):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.DataResponse{Data: dto.NewRequestResponse(*request)})
}

// List handles GET /api/requests. By default it returns the offerable pool;
// with ?mine=true it returns the caller's own requests.
func (h *RequestHandler) List(c *gin.Context) {
	if c.Query("mine") == "true" {
		items, listErr := h.facade.UserRequests(c.Request.Context(), CurrentUserID(c))
		if listErr != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewRequestResponses(items)})
		return
	}

	items, err := h.facade.OfferableRequests(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewRequestResponses(items)})
}

// Offers handles GET /api/requests/:id/offers.
func (h *RequestHandler) Offers(c *gin.Context) {
	requestID := pathID(c, "id")
	if requestID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	offers, err := h.facade.RequestOffers(c.Request.Context(), requestID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewOfferResponses(offers)})
}
