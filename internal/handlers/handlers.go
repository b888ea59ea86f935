package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdvest/internal/handlers/business"
	"crowdvest/pkg/custody"
)

var engine *business.Engine

// Init wires the engine all handlers dispatch to.
func Init(e *business.Engine) {
	engine = e
}

// Engine exposes the wired engine for workers and scripts.
func Engine() *business.Engine {
	return engine
}

// statusFor maps engine and custody errors onto HTTP statuses. Validation
// and state-machine violations are the caller's to fix; only unexpected
// errors surface as 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, business.ErrSaleNotFound),
		errors.Is(err, business.ErrVestingNotFound),
		errors.Is(err, custody.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, business.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, business.ErrSaleAlreadyActive),
		errors.Is(err, business.ErrSaleNotActive),
		errors.Is(err, business.ErrVestingExists),
		errors.Is(err, custody.ErrNonZeroBalance):
		return http.StatusConflict
	case errors.Is(err, business.ErrZeroPrice),
		errors.Is(err, business.ErrFractionsNotFullyAllocated),
		errors.Is(err, business.ErrAmountMinimum),
		errors.Is(err, business.ErrCalculationOverflow),
		errors.Is(err, business.ErrIncompatibleVesting),
		errors.Is(err, business.ErrNothingToClaim),
		errors.Is(err, custody.ErrInsufficientFunds),
		errors.Is(err, custody.ErrBadAuthority),
		errors.Is(err, custody.ErrAccountClosed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
