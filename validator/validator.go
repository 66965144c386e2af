// Package validator checks inbound contact payloads before any business logic
// or transaction runs.
package validator

import (
	"strings"

	playground "github.com/go-playground/validator/v10"

	"contact-management/apperr"
)

// CreatePhoneInput matches the register body, which carries the number under
// "numero".
type CreatePhoneInput struct {
	Numero string `json:"numero"`
}

type CreateContactInput struct {
	Name   string             `json:"name" validate:"required"`
	Age    int                `json:"age" validate:"required,gt=0,lte=150"`
	Phones []CreatePhoneInput `json:"phones"`
}

// UpdatePhoneInput carries an id for phones that already exist on the contact;
// a nil id marks a phone to insert.
type UpdatePhoneInput struct {
	ID     *int64 `json:"id"`
	Number string `json:"phone" validate:"required"`
}

type UpdateContactInput struct {
	Name   string             `json:"name" validate:"required"`
	Age    int                `json:"age" validate:"required,gt=0,lte=150"`
	Phones []UpdatePhoneInput `json:"phones" validate:"dive"`
}

// SearchContactInput is an OR filter. Both fields are optional on the server;
// only the UI requires at least one.
type SearchContactInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

var validate = playground.New()

var fieldMessages = map[string]string{
	"name":  "O nome é obrigatório",
	"age":   "A idade deve ser um número inteiro positivo",
	"phone": "O telefone é obrigatório",
}

// ValidateCreate trims the name and checks the required fields, returning a
// Validation error with per-field messages on failure.
func ValidateCreate(in *CreateContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	return check(in)
}

// ValidateUpdate applies the create rules plus per-entry phone checks.
func ValidateUpdate(in *UpdateContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	return check(in)
}

// ValidateSearch only trims; an empty filter is legal and means "no predicate".
func ValidateSearch(in *SearchContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	return nil
}

func check(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return apperr.Storage("falha ao validar dados", err)
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonField(fe.Field())
		msg, ok := fieldMessages[field]
		if !ok {
			msg = "Campo inválido"
		}
		fields = append(fields, apperr.FieldError{Field: field, Message: msg})
	}
	return apperr.Validation("Dados inválidos", fields)
}

func jsonField(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Age":
		return "age"
	case "Number":
		return "phone"
	}
	return strings.ToLower(structField)
}
