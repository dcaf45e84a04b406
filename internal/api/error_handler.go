package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/handler"
	"github.com/csemotors/dealership/internal/api/view"
)

const crashMessage = "Oh no! There was a crash. Maybe try a different route?"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders the HTML error page for every error that reaches Echo.
//   - Shows the message of a 404 and the status text of other HTTP errors.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		page := &view.Page{Title: fmt.Sprintf("%d", code), Data: msg}
		if rerr := c.Render(code, "error", page); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (router 404, 405, bind failures) and handler HTTPErrors.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Warn().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		if he.Code == http.StatusNotFound {
			if msg, ok := he.Message.(string); ok && msg != http.StatusText(http.StatusNotFound) {
				return he.Code, msg
			}
			return he.Code, handler.LostPageMessage
		}
		if he.Code >= http.StatusInternalServerError {
			return he.Code, crashMessage
		}
		return he.Code, http.StatusText(he.Code)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("uri", c.Request().RequestURI).
		Msg("unhandled error")

	return http.StatusInternalServerError, crashMessage
}
