package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/core/domain"
)

const formKey = "form"

const invalidSubmission = "The submitted form could not be read."

// InvalidFunc renders the response for a form that failed validation.
type InvalidFunc[PT any] func(c echo.Context, f PT, errs domain.ValidationErrors) error

// Validate binds the request body into a fresh T, normalizes and validates
// it. On failure onInvalid answers the request and the next handler never
// runs; on success the form is stored on the context for formFrom.
func Validate[T any, PT interface {
	*T
	form
}](v *FormValidator, name string, onInvalid InvalidFunc[PT]) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			f := PT(new(T))
			if err := c.Bind(f); err != nil {
				metrics.ValidationFailuresTotal.WithLabelValues(name).Inc()
				return onInvalid(c, f, domain.ValidationErrors{{Message: invalidSubmission}})
			}
			f.normalize()

			if err := v.ValidateCtx(c.Request().Context(), f); err != nil {
				var errs domain.ValidationErrors
				if !errors.As(err, &errs) {
					return err
				}
				metrics.ValidationFailuresTotal.WithLabelValues(name).Inc()
				return onInvalid(c, f, errs)
			}

			c.Set(formKey, f)
			return next(c)
		}
	}
}

// formFrom returns the form stored by Validate.
func formFrom[PT any](c echo.Context) PT {
	f, _ := c.Get(formKey).(PT)
	return f
}
