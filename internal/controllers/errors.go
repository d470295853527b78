package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/httperror"
	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/pipeline"
	"github.com/aura-finance/backend/internal/resend"
	"github.com/aura-finance/backend/internal/webhook"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	errTransactionIDMissing = errors.New("the transactionId field must be set")
	errCategoryIDMissing    = errors.New("the categoryId field must be set")
	errNewCategoryIDMissing = errors.New("the newCategoryId field must be set")
	errFeedbackTextMissing  = errors.New("the feedbackText field must not be empty")
	errDevLoginDisabled     = fmt.Errorf("%w development login on this server", models.ErrResourceNotFound)
	errWebhookBodyTooLarge  = errors.New("the webhook body is too large")
	errSalaryNegative       = errors.New("the monthly salary must not be negative")
)

// status returns the HTTP status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, webhook.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, resend.ErrEmailNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrAgentUnavailable), errors.Is(err, resend.ErrUpstream):
		return http.StatusServiceUnavailable
	}

	return http.StatusBadRequest
}

// kind returns the error kind reported to clients.
func kind(err error) httperror.Kind {
	switch status(err) {
	case http.StatusInternalServerError:
		return httperror.KindInternal
	case http.StatusUnauthorized:
		return httperror.KindUnauthorized
	case http.StatusNotFound:
		return httperror.KindNotFound
	case http.StatusServiceUnavailable:
		return httperror.KindUpstream
	}

	return httperror.KindValidation
}

// abort sends the error response for err. Internal errors are logged, their
// message only contains the request ID.
func abort(c *gin.Context, err error) {
	s := status(err)
	if s == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		err = fmt.Errorf("%w, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", models.ErrGeneral, requestid.Get(c))
	}

	c.AbortWithStatusJSON(s, httperror.New(kind(err), err))
}
