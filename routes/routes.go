package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"venue-booking-service/apperrors"
	"venue-booking-service/controllers"
	"venue-booking-service/middleware"
)

// Controllers groups the handlers mounted by Register.
type Controllers struct {
	Bookings *controllers.BookingController
	Payments *controllers.PaymentController
	Webhooks *controllers.WebhookController
	Venues   *controllers.VenueController
}

// Register mounts all routes. Client-facing POST endpoints are rate limited
// when limiter is non-nil; the gateway webhook never is.
func Register(r *gin.Engine, c Controllers, limiter *middleware.RateLimiter) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": apperrors.MethodNotAllowed().Message})
	})
	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{limiter.Middleware(), h}
	}

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "venue-booking-service"})
	})

	r.GET("/venues", c.Venues.ListVenues)

	r.POST("/bookings", limited(c.Bookings.CreateBooking)...)
	r.GET("/bookings", c.Bookings.GetBookings)
	r.GET("/bookings/:id", c.Bookings.GetBooking)

	r.POST("/payments", limited(c.Payments.CreatePayment)...)
	r.POST("/payments/webhook", c.Webhooks.HandleWebhook)
}
