package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/ritual-service/internal/app"
	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// ReferenceHandler serves the lookups the quiz form calls while it is filled in.
type ReferenceHandler struct {
	locations *app.LocationService
}

// NewReferenceHandler creates a reference handler.
func NewReferenceHandler(locations *app.LocationService) *ReferenceHandler {
	return &ReferenceHandler{locations: locations}
}

// Zodiac handles GET /api/v1/zodiac?dob=YYYY-MM-DD.
func (h *ReferenceHandler) Zodiac(c *gin.Context) {
	var req dto.ZodiacRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	dob, err := domain.ParseBirthDate(req.DOB)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	sign := domain.ResolveSunSign(dob)
	element := domain.ResolveElement(sign)

	c.Header("Cache-Control", "public, max-age=86400")
	c.JSON(http.StatusOK, dto.ZodiacResponse{
		SunSign: string(sign),
		Element: string(element),
		Energy:  element.Energy(),
	})
}

// Locations handles GET /api/v1/locations?q=...
// Queries under two characters return an empty list.
func (h *ReferenceHandler) Locations(c *gin.Context) {
	locations, err := h.locations.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLocationsResponse(locations))
}
