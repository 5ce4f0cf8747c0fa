package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/server/http/dto"
)

// SponsorshipHandler manages the sponsorship purchase endpoints. Responses
// use the {success, data} envelope these clients expect.
type SponsorshipHandler struct {
	facade SponsorshipFacade
}

// NewSponsorshipHandler constructs SponsorshipHandler.
func NewSponsorshipHandler(facade SponsorshipFacade) *SponsorshipHandler {
	return &SponsorshipHandler{facade: facade}
}

// ListActive handles GET /api/sponsorships.
func (h *SponsorshipHandler) ListActive(c *gin.Context) {
	items, err := h.facade.ActiveSponsorships(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.StatusResponse{Success: false, Message: "could not list sponsorships"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Data: dto.NewSponsorshipResponses(items)})
}

// Initiate handles POST /api/sponsorship-process/initiate.
func (h *SponsorshipHandler) Initiate(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.InitiateSponsorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "invalid payload"})
		return
	}
	buyerID := req.BuyerID
	if buyerID == 0 {
		buyerID = req.RecipientID
	}
	if buyerID == 0 {
		buyerID = userID
	}

	process, sponsorID, err := h.facade.InitiateSponsorship(c.Request.Context(), buyerID, req.SponsorshipID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.StatusResponse{
		Success: true,
		Data:    dto.InitiatedSponsorshipResponse{ID: process.ID, SponsorID: sponsorID},
	})
}

// Get handles GET /api/sponsorship-process/:id.
func (h *SponsorshipHandler) Get(c *gin.Context) {
	processID := pathID(c, "id")
	if processID == 0 {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "invalid process id"})
		return
	}

	process, err := h.facade.SponsorshipProcess(c.Request.Context(), processID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewSponsorshipProcessResponse(*process)})
}

// UpdateStatus handles PATCH /api/sponsorship-process/:id/status.
func (h *SponsorshipHandler) UpdateStatus(c *gin.Context) {
	userID := CurrentUserID(c)
	processID := pathID(c, "id")
	if processID == 0 {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "invalid process id"})
		return
	}

	var req dto.UpdateSponsorshipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "invalid payload"})
		return
	}

	process, err := h.facade.UpdateSponsorshipStatus(c.Request.Context(), userID, processID, model.SponsorshipStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Data: dto.NewSponsorshipProcessResponse(*process)})
}

// Verify handles POST /api/sponsorship-process/verify: a multipart form
// with the delivery proof file and the process id. Only the stored file
// reference matters here; the upload pipeline lives elsewhere.
func (h *SponsorshipHandler) Verify(c *gin.Context) {
	userID := CurrentUserID(c)

	processID, err := strconv.ParseInt(c.PostForm("processId"), 10, 64)
	if err != nil || processID <= 0 {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "invalid process id"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "verification file missing"})
		return
	}

	if _, err := h.facade.VerifySponsorshipDelivery(c.Request.Context(), userID, processID, file.Filename); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true})
}

// RequestNewPhoto handles POST /api/sponsorship-process/:id/request-new-photo.
func (h *SponsorshipHandler) RequestNewPhoto(c *gin.Context) {
	userID := CurrentUserID(c)
	processID := pathID(c, "id")
	if processID == 0 {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "invalid process id"})
		return
	}

	process, err := h.facade.RequestNewSponsorshipPhoto(c.Request.Context(), userID, processID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Data: dto.NewSponsorshipProcessResponse(*process)})
}

func (h *SponsorshipHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrMissingField):
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "required field missing"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.StatusResponse{Success: false, Message: "not found"})
	case errors.Is(err, domainErrors.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, dto.StatusResponse{Success: false, Message: "not authorized for this transaction"})
	case errors.Is(err, domainErrors.ErrTerminalStatus), errors.Is(err, domainErrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, dto.StatusResponse{Success: false, Message: "transition not allowed"})
	case errors.Is(err, domainErrors.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, dto.StatusResponse{Success: false, Message: "payment declined"})
	default:
		c.JSON(http.StatusInternalServerError, dto.StatusResponse{Success: false, Message: "internal error"})
	}
}
