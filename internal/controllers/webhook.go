package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aura-finance/backend/internal/httputil"
	"github.com/aura-finance/backend/internal/pipeline"
	"github.com/gin-gonic/gin"
)

// maxWebhookBody is the maximum size of a webhook body in bytes.
const maxWebhookBody = 5 << 20

type WebhookResponse struct {
	Data pipeline.Result `json:"data"` // Outcome of the webhook
}

// RegisterWebhookRoutes registers the routes for inbound webhooks with
// the RouterGroup that is passed.
func (co Controller) RegisterWebhookRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/resend", co.OptionsResendWebhook)
	r.POST("/resend", co.ReceiveResendWebhook)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Webhooks
// @Success		204
// @Router			/webhooks/resend [options]
func (co Controller) OptionsResendWebhook(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Receive inbound email
// @Description	Receives the email.received webhook of Resend. The signature is verified before the body is parsed.
// @Description	Other event types are acknowledged with the status "skipped".
// @Tags			Webhooks
// @Accept			json
// @Produce		json
// @Success		200	{object}	WebhookResponse
// @Failure		400	{object}	httperror.Error
// @Failure		401	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Failure		503	{object}	httperror.Error
// @Param			svix-id			header	string	true	"Message ID"
// @Param			svix-timestamp	header	string	true	"Unix timestamp of the delivery"
// @Param			svix-signature	header	string	true	"Signatures of the delivery"
// @Router			/webhooks/resend [post]
func (co Controller) ReceiveResendWebhook(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			abort(c, errWebhookBodyTooLarge)
			return
		}

		abort(c, fmt.Errorf("%w: %w", httputil.ErrInvalidBody, err))
		return
	}

	result, err := co.Webhook.Process(c.Request.Context(), c.Request.Header, body)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{Data: result})
}
