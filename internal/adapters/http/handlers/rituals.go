package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/ritual-service/internal/app"
)

// RitualHandler serves the direct-submit flow and stored results.
type RitualHandler struct {
	service *app.RitualService
}

// NewRitualHandler creates a ritual handler.
func NewRitualHandler(service *app.RitualService) *RitualHandler {
	return &RitualHandler{service: service}
}

// Submit handles POST /api/v1/rituals/submit.
// Generates a ritual inline without payment. Disabled unless the
// direct_submit feature flag is on, in which case it returns 403.
func (h *RitualHandler) Submit(c *gin.Context) {
	var req dto.QuizRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	sub, err := req.ToSubmission()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	res, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitResponse{Ritual: res.Ritual, ResultID: res.ResultID})
}

// GetResult handles GET /api/v1/results/:id.
func (h *RitualHandler) GetResult(c *gin.Context) {
	res, err := h.service.GetResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResultResponse(res))
}
