package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/logger"
)

// Error codes carried in the envelope.
const (
	CodeEmptyInput       = "empty_input"
	CodeInputTooLong     = "input_too_long"
	CodeNoIngredients    = "no_ingredients"
	CodeInvalidInput     = "invalid_input"
	CodeNotFound         = "not_found"
	CodeRateLimited      = "rate_limited"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeInvalidOfferURL  = "invalid_offer_url"
	CodeInternal         = "internal_error"
)

// Messages shown to API clients.
const (
	MessageRateLimited      = "Too many requests. Please try again later."
	MessageNotFound         = "Not found"
	MessageMethodNotAllowed = "Method not allowed"
	MessageInternal         = "Unable to process request"
	MessageInvalidBody      = "Invalid request body"
	MessageMissingOfferID   = "Missing or invalid offerId parameter"
	MessageInvalidOfferID   = "Invalid offerId format"
	MessageOfferNotFound    = "Offer not found or no longer available"
	MessageInvalidRedirect  = "Invalid redirect URL configuration"
)

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: message, Code: code}})
}

// respondError maps a service error to a status and envelope.
// Unexpected errors are logged and reported without detail.
func respondError(c *gin.Context, err error) {
	if msg, ok := domain.ValidationMessage(err); ok {
		abortWithError(c, http.StatusBadRequest, validationCode(err), msg)
		return
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		abortWithError(c, http.StatusNotFound, CodeNotFound, MessageNotFound)
	case errors.Is(err, domain.ErrRateLimited):
		abortWithError(c, http.StatusTooManyRequests, CodeRateLimited, MessageRateLimited)
	default:
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, CodeInternal, MessageInternal)
	}
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return CodeEmptyInput
	case errors.Is(err, domain.ErrInputTooLong):
		return CodeInputTooLong
	default:
		return CodeNoIngredients
	}
}
