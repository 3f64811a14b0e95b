package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/doafacil/doafacil/internal/models"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler maps business errors to their status code and relays the
// message untouched. Anything unrecognized becomes a 500.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := &models.Error{
			Code:    http.StatusInternalServerError,
			Message: "erro interno do servidor",
		}

		var appErr *models.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			resp = appErr
		case errors.As(err, &httpErr):
			resp.Code = httpErr.Code
			resp.Message = fmt.Sprint(httpErr.Message)
		default:
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		if err := c.JSON(resp.Code, resp); err != nil {
			log.Error("could not write error response", zap.Int("code", resp.Code), zap.Error(err))
		}
	}
}
