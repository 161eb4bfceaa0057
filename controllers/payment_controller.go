package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
	"venue-booking-service/services"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(svc services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: svc}
}

// CreatePayment handles POST /payments
func (pc *PaymentController) CreatePayment(ctx *gin.Context) {
	var req models.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, apperrors.Validation("Invalid JSON"))
		return
	}

	res, err := pc.paymentService.CreatePayment(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, res)
}
