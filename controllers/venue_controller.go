package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
	"venue-booking-service/services"
)

type VenueController struct {
	venueService services.VenueService
}

func NewVenueController(svc services.VenueService) *VenueController {
	return &VenueController{venueService: svc}
}

// ListVenues handles GET /venues?city=&type=&minCapacity=
func (vc *VenueController) ListVenues(ctx *gin.Context) {
	filter := models.VenueFilter{
		City: ctx.Query("city"),
		Type: ctx.Query("type"),
	}
	if raw := ctx.Query("minCapacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(ctx, apperrors.Validation("Invalid minCapacity"))
			return
		}
		filter.MinCapacity = n
	}

	venues, err := vc.venueService.ListVenues(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]models.VenueResponse, 0, len(venues))
	for i := range venues {
		out = append(out, models.NewVenueResponse(&venues[i]))
	}
	ctx.JSON(http.StatusOK, gin.H{"venues": out})
}
