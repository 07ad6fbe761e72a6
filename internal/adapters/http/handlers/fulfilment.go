package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/ritual-service/internal/app"
)

// FulfilmentHandler exposes on-demand fulfilment to trusted callers.
type FulfilmentHandler struct {
	service *app.FulfilmentService
}

// NewFulfilmentHandler creates a fulfilment handler.
func NewFulfilmentHandler(service *app.FulfilmentService) *FulfilmentHandler {
	return &FulfilmentHandler{service: service}
}

// Fulfil handles POST /api/v1/fulfilment.
// Runs synchronously; a failed order may be fulfilled again.
func (h *FulfilmentHandler) Fulfil(c *gin.Context) {
	var req dto.FulfilmentRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	res, err := h.service.Fulfil(c.Request.Context(), req.OrderID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FulfilmentResponse{
		Success:  true,
		OrderID:  res.OrderID,
		ResultID: res.ResultID,
		PDFURL:   res.PDFURL,
	})
}
