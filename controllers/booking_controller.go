package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
	"venue-booking-service/repository"
	"venue-booking-service/services"
)

// BookingController handles HTTP requests for bookings.
type BookingController struct {
	bookingService services.BookingService
}

func NewBookingController(svc services.BookingService) *BookingController {
	return &BookingController{bookingService: svc}
}

// CreateBooking handles POST /bookings
func (bc *BookingController) CreateBooking(ctx *gin.Context) {
	var req models.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, apperrors.Validation("Invalid JSON"))
		return
	}

	booking, err := bc.bookingService.CreateBooking(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"booking": models.NewBookingResponse(booking)})
}

// GetBookings handles GET /bookings. With ?id=N it returns that booking,
// otherwise the most recent bookings.
func (bc *BookingController) GetBookings(ctx *gin.Context) {
	if raw, ok := ctx.GetQuery("id"); ok && strings.TrimSpace(raw) != "" {
		bc.getBooking(ctx, raw)
		return
	}

	list, err := bc.bookingService.ListRecentBookings(ctx.Request.Context(), repository.DefaultRecentLimit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]models.BookingSummary, 0, len(list))
	for i := range list {
		out = append(out, models.NewBookingSummary(&list[i]))
	}
	ctx.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GetBooking handles GET /bookings/:id
func (bc *BookingController) GetBooking(ctx *gin.Context) {
	bc.getBooking(ctx, ctx.Param("id"))
}

func (bc *BookingController) getBooking(ctx *gin.Context, raw string) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		respondError(ctx, apperrors.Validation("Invalid booking id"))
		return
	}

	details, err := bc.bookingService.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewBookingDetailResponse(details))
}
