package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/server/http/dto"
)

// ProcessHandler serves the delivery process read endpoints.
type ProcessHandler struct {
	facade ProcessFacade
}

// NewProcessHandler constructs ProcessHandler.
func NewProcessHandler(facade ProcessFacade) *ProcessHandler {
	return &ProcessHandler{facade: facade}
}

// List handles GET /api/process.
func (h *ProcessHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	processes, err := h.facade.Processes(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewProcessResponses(processes)})
}

// Get handles GET /api/process/:id.
func (h *ProcessHandler) Get(c *gin.Context) {
	processID := pathID(c, "id")
	if processID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	process, err := h.facade.ProcessByID(c.Request.Context(), processID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewProcessResponse(*process)})
}

// Route handles GET /api/process/:id/route: the viewer's role decides the
// destination screen for the current status.
func (h *ProcessHandler) Route(c *gin.Context) {
	userID := CurrentUserID(c)
	processID := pathID(c, "id")
	if processID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	route, err := h.facade.ProcessRoute(c.Request.Context(), userID, processID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.RouteResponse{Route: string(route)}})
}
