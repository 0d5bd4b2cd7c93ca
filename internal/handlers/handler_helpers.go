package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// requireParam returns the trimmed path parameter or a 400 naming it.
func requireParam(c echo.Context, name, label string) (string, error) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, label+" is required")
	}
	return value, nil
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// notFoundOr maps target to 404 with msg and anything else to 500.
func notFoundOr(err, target error, msg string) error {
	return serviceError(err, nil, target, msg)
}

// serviceError maps invalid to 400 with the error text and notFound to 404 with msg.
// Either target may be nil. Anything else is a 500.
func serviceError(err, invalid, notFound error, msg string) error {
	switch {
	case invalid != nil && errors.Is(err, invalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case notFound != nil && errors.Is(err, notFound):
		return echo.NewHTTPError(http.StatusNotFound, msg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
