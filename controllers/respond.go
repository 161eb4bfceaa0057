package controllers

import (
	"github.com/gin-gonic/gin"
	"venue-booking-service/apperrors"
)

// respondError writes {"error": msg}, adding "details" for gateway failures.
// Internal causes are attached to the gin context for the request log, never
// to the body.
func respondError(ctx *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Err != nil {
		_ = ctx.Error(appErr.Err)
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Kind == apperrors.KindGateway {
		body["details"] = appErr.Details
	}
	ctx.AbortWithStatusJSON(appErr.Code, body)
}
