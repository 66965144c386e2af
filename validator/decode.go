package validator

import (
	"encoding/json"
	"errors"
	"strings"

	"contact-management/apperr"
)

// Decode parses a request body into one of the input types. A malformed shape
// is rejected before any business logic runs; a type mismatch (age sent as
// "30" or 30.5) surfaces as the same field-level Validation error the struct
// checks produce.
func Decode(body string, out interface{}) error {
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.Validation("Dados inválidos", []apperr.FieldError{
				{Field: typeErr.Field, Message: "Tipo de dado inválido"},
			})
		}
		return apperr.Validation("Dados inválidos", []apperr.FieldError{
			{Field: "body", Message: "Corpo da requisição inválido"},
		})
	}
	return nil
}
