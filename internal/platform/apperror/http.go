package apperror

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTP maps a domain error to the echo error the API layer should return:
// validation failures become 400s, missing ids become 404s, and everything
// else surfaces as an opaque 500 so no internal detail crosses the boundary.
func HTTP(err error) *echo.HTTPError {
	switch {
	case IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
