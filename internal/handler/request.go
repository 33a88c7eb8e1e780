package handler

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "researchops/internal/errors"
)

// bindJSON decodes the request body into dst. A missing, undecodable, or
// empty-object body yields ErrInvalidInput, which handlers turn into a plain
// 400; field-level problems are left to the validator.
func bindJSON(c echo.Context, dst interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return apperrors.ErrInvalidInput
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil || len(probe) == 0 {
		return apperrors.ErrInvalidInput
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.ErrInvalidInput
	}
	return nil
}

// fieldErrors converts validator output into the per-field message map used
// by 422 responses.
func fieldErrors(err error) apperrors.FieldErrors {
	fields := apperrors.FieldErrors{}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields.Add("_schema", "Invalid input type.")
		return fields
	}

	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields.Add(fe.Field(), "Missing data for required field.")
		case "email":
			fields.Add(fe.Field(), "Not a valid email address.")
		case "min":
			fields.Add(fe.Field(), fmt.Sprintf("Shorter than minimum length %s.", fe.Param()))
		case "max":
			fields.Add(fe.Field(), fmt.Sprintf("Longer than maximum length %s.", fe.Param()))
		default:
			fields.Add(fe.Field(), "Invalid value.")
		}
	}
	return fields
}
