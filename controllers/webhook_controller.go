package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"venue-booking-service/apperrors"
	"venue-booking-service/services"
)

// maxWebhookBody caps what is read from the gateway.
const maxWebhookBody = 1 << 20

type WebhookController struct {
	reconciler services.WebhookReconciler
}

func NewWebhookController(r services.WebhookReconciler) *WebhookController {
	return &WebhookController{reconciler: r}
}

// HandleWebhook handles POST /payments/webhook. The raw body is passed on
// unchanged so it can be stored as received.
func (wc *WebhookController) HandleWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
	if err != nil {
		respondError(ctx, apperrors.Validation("Invalid request body"))
		return
	}

	res, err := wc.reconciler.Reconcile(ctx.Request.Context(), payload)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": res.Message})
}
