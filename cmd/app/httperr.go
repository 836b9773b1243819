package main

import (
	"errors"
	"net/http"

	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// jsonError maps the service taxonomy onto HTTP codes. Stock and
// conflict failures get 409 so clients can tell them from plain 400s;
// the stock message names the product so the user can fix quantities.
func jsonError(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrCouponInactive):
		code = http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		code = http.StatusUnauthorized
	case errors.Is(err, services.ErrGate), errors.Is(err, services.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrStock), errors.Is(err, services.ErrCouponExhausted), errors.Is(err, services.ErrConflict):
		code = http.StatusConflict
	}
	return c.JSON(code, map[string]string{"error": err.Error()})
}
