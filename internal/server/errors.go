package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/san-kum/visualearn/internal/catalog"
	"github.com/san-kum/visualearn/internal/config"
	"github.com/san-kum/visualearn/internal/experiment"
	"github.com/san-kum/visualearn/internal/params"
)

// newAppHTTPErrorHandler maps domain errors onto status codes. Anything it
// does not recognise is logged and reported as a 500.
func newAppHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		var (
			httpErr  *echo.HTTPError
			valErrs  validator.ValidationErrors
			paramErr *params.ParamError
		)
		switch {
		case errors.As(err, &valErrs):
			code = http.StatusBadRequest
			message = config.FieldErrors(valErrs)
		case errors.As(err, &paramErr):
			code = http.StatusBadRequest
			message = echo.Map{
				"error": paramErr.Error(),
				"param": paramErr.Name,
				"min":   paramErr.Min,
				"max":   paramErr.Max,
			}
		case errors.Is(err, params.ErrUnknownParameter),
			errors.Is(err, experiment.ErrNoFrames):
			code = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, experiment.ErrUnknownSimulation),
			errors.Is(err, catalog.ErrTopicNotFound):
			code = http.StatusNotFound
			message = err.Error()
		case errors.As(err, &httpErr):
			code = httpErr.Code
			message = httpErr.Message
		default:
			code = http.StatusInternalServerError
			message = http.StatusText(http.StatusInternalServerError)
			log.Error().Err(err).Str("uri", ctx.Request().RequestURI).Msg("unhandled error")
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				log.Error().Err(err).Msg("writing error response")
			}
		}
	}
}
