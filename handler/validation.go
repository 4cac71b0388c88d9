package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"campusnest/model"
)

// ValidationError is what the echo validator returns for struct tag failures.
type ValidationError struct {
	Fields model.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// fieldErrors runs the struct tag validation and collects the problems per field.
func fieldErrors(c echo.Context, i interface{}) model.FieldErrors {
	problems := model.FieldErrors{}

	err := c.Validate(i)
	if err == nil {
		return problems
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		problems.Merge(ve.Fields)
		return problems
	}

	problems.Add("form", err.Error())
	return problems
}

func validationError(problems model.FieldErrors) *echo.HTTPError {
	return &echo.HTTPError{
		Code: http.StatusBadRequest,
		Message: map[string]interface{}{
			"message": "Please fix the highlighted fields.",
			"fields":  problems,
		},
	}
}
