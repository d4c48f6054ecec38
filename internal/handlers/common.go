package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/askforum/backend/internal/authz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var validate = validator.New()

// deny converts a gate denial into the right HTTP error: anonymous actors get
// 401, identified ones 403.
func deny(in authz.Input, d authz.Decision) *echo.HTTPError {
	if in.Actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, d.Reason)
	}
	return echo.NewHTTPError(http.StatusForbidden, d.Reason)
}

// storageError maps repository errors onto the response taxonomy.
func storageError(err error, notFoundMessage string) *echo.HTTPError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, notFoundMessage)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return echo.NewHTTPError(http.StatusNotFound, notFoundMessage)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return echo.NewHTTPError(http.StatusBadRequest, "duplicate value for a unique field")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// errNoContract reports a wiring bug: the action's contract does not name the
// shape the handler expected.
var errNoContract = echo.NewHTTPError(http.StatusInternalServerError, "request shape does not match the action's contract")

// bindRequest decodes and validates a request body into the input shape the
// action's contract selected.
func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// limitSkip reads the list pagination parameters. Absent values mean
// "everything".
func limitSkip(c echo.Context) (limit, skip int) {
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v > 0 {
		skip = v
	}
	return limit, skip
}
