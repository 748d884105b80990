package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/project"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// retryAfterSeconds is advertised on 503 responses.
const retryAfterSeconds = "1"

// requestError reports a request rejected by the API description.
type requestError struct {
	cause error
}

func newRequestError(cause error) *requestError {
	return &requestError{cause: cause}
}

func (e *requestError) Error() string {
	return e.cause.Error()
}

func (e *requestError) Unwrap() error {
	return e.cause
}

type errorMapping struct {
	target error
	code   int
	reason string
}

// errorMappings is evaluated in order; the first matching target wins.
//
//nolint:gochecknoglobals // read-only lookup table
var errorMappings = []errorMapping{
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"},
	{errs.ErrTransactionTooLarge, http.StatusRequestEntityTooLarge, "too_many_parts"},
	{quotation.ErrPaymentAmountMismatch, http.StatusUnprocessableEntity, "payment_amount_mismatch"},
	{services.ErrNoSelection, http.StatusUnprocessableEntity, "selection_incomplete"},
	{quotation.ErrPartsNotQuoted, http.StatusUnprocessableEntity, "parts_not_quoted"},
	{part.ErrEmptyPriceOptions, http.StatusUnprocessableEntity, "parts_not_quoted"},
	{part.ErrPartQuoteExpired, http.StatusUnprocessableEntity, "part_quote_expired"},
	{part.ErrUnknownPriceOption, http.StatusUnprocessableEntity, "unknown_price_option"},
	{quotation.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{commands.ErrQuotationNotDraft, http.StatusConflict, "quotation_not_draft"},
	{commands.ErrQuotationNotEditable, http.StatusConflict, "quotation_not_editable"},
	{project.ErrProjectIsLocked, http.StatusConflict, "project_locked"},
	{order.ErrCannotAdvance, http.StatusConflict, "order_cannot_advance"},
	{commands.ErrConflict, http.StatusConflict, "conflict"},
	{errs.ErrConditionalCheckFailed, http.StatusConflict, "conflict"},
	{kernel.ErrCurrencyMismatch, http.StatusBadRequest, "currency_mismatch"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "invalid_request"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "invalid_request"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "invalid_request"},
}

func classify(err error) (int, string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, "invalid_request"
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, http.StatusText(httpErr.Code)
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.code, m.reason
		}
	}
	return http.StatusInternalServerError, "internal"
}

// errorHandler renders every error returned by a handler as an Error body.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, reason := classify(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}
	if code == http.StatusServiceUnavailable {
		c.Response().Header().Set("Retry-After", retryAfterSeconds)
	}

	if err = c.JSON(code, Error{Code: code, Reason: reason, Message: message}); err != nil {
		s.logger.Error("write error response", "error", err)
	}
}
