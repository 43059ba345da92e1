package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to Echo's Validator interface
// so handlers can call c.Validate on bound request bodies.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// invalidFields writes the standard 400 validation response: a list of
// {field, message} objects naming each violated field, or a generic
// message when the error did not come from struct validation.
func invalidFields(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	fields := make([]echo.Map, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, echo.Map{
			"field":   jsonFieldName(fe.Field()),
			"message": violationMessage(fe),
		})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"error":   fields,
	})
}

// jsonFieldName lower-cases the first rune so responses name fields the
// way clients send them (fullName, not FullName).
func jsonFieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
