// Package response shapes every operation outcome into the wire envelope:
// payload fields, a human message, an errors field that is false, a string, or
// a list of field errors, and an action code.
package response

import (
	"encoding/json"
	"net/http"

	"contact-management/apperr"
	"contact-management/model"
)

const (
	ActionFailure = 0
	ActionSuccess = 1
	ActionEmpty   = 3
)

// Errors marshals as false when clear, as a list when field errors are present,
// and as a plain string otherwise.
type Errors struct {
	Text   string
	Fields []apperr.FieldError
}

func (e Errors) MarshalJSON() ([]byte, error) {
	if len(e.Fields) > 0 {
		return json.Marshal(e.Fields)
	}
	if e.Text != "" {
		return json.Marshal(e.Text)
	}
	return []byte("false"), nil
}

type PhonePayload struct {
	ID    int64  `json:"id"`
	Phone string `json:"phone"`
}

type ContactPayload struct {
	Name   *string        `json:"name"`
	Age    *int           `json:"age"`
	Phones []PhonePayload `json:"phones"`
}

type SearchContactPayload struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Age    int            `json:"age"`
	Phones []PhonePayload `json:"phones"`
}

type CreateEnvelope struct {
	Contact    ContactPayload `json:"contact"`
	Message    string         `json:"message"`
	Errors     Errors         `json:"errors"`
	ActionCode int            `json:"action_code"`
}

type SearchEnvelope struct {
	Contacts   []SearchContactPayload `json:"contacts"`
	Message    string                 `json:"message"`
	Errors     Errors                 `json:"errors"`
	ActionCode int                    `json:"action_code"`
}

type MutationEnvelope struct {
	Message    string `json:"message"`
	Errors     Errors `json:"errors"`
	ActionCode int    `json:"action_code"`
}

func phonePayloads(phones []model.Phone) []PhonePayload {
	out := make([]PhonePayload, 0, len(phones))
	for _, p := range phones {
		out = append(out, PhonePayload{ID: p.ID, Phone: p.Number})
	}
	return out
}

// Created maps a successful create to 201.
func Created(c *model.Contact) (int, CreateEnvelope) {
	return http.StatusCreated, CreateEnvelope{
		Contact: ContactPayload{
			Name:   &c.Name,
			Age:    &c.Age,
			Phones: phonePayloads(c.Phones),
		},
		Message:    "Contato criado com sucesso.",
		ActionCode: ActionSuccess,
	}
}

func CreateFailed(err error) (int, CreateEnvelope) {
	status, msg, errs := failure(err, "Erro ao criar contato")
	return status, CreateEnvelope{
		Message:    msg,
		Errors:     errs,
		ActionCode: ActionFailure,
	}
}

// SearchResult maps a (possibly empty) result set to 200. An empty set is a
// success with its own action code, not an error.
func SearchResult(contacts []model.Contact) (int, SearchEnvelope) {
	payload := make([]SearchContactPayload, 0, len(contacts))
	for _, c := range contacts {
		payload = append(payload, SearchContactPayload{
			ID:     c.ID,
			Name:   c.Name,
			Age:    c.Age,
			Phones: phonePayloads(c.Phones),
		})
	}
	env := SearchEnvelope{
		Contacts:   payload,
		Message:    "Busca de contatos realizada com sucesso",
		ActionCode: ActionSuccess,
	}
	if len(payload) == 0 {
		env.Message = "Nenhum contato encontrado"
		env.ActionCode = ActionEmpty
	}
	return http.StatusOK, env
}

func SearchFailed(err error) (int, SearchEnvelope) {
	status, msg, errs := failure(err, "Erro ao buscar contatos")
	return status, SearchEnvelope{
		Contacts:   []SearchContactPayload{},
		Message:    msg,
		Errors:     errs,
		ActionCode: ActionFailure,
	}
}

func Updated() (int, MutationEnvelope) {
	return http.StatusOK, MutationEnvelope{
		Message:    "Contato atualizado com sucesso",
		ActionCode: ActionSuccess,
	}
}

func UpdateFailed(err error) (int, MutationEnvelope) {
	status, msg, errs := failure(err, "Erro ao atualizar contato")
	return status, MutationEnvelope{Message: msg, Errors: errs, ActionCode: ActionFailure}
}

func Deleted() (int, MutationEnvelope) {
	return http.StatusOK, MutationEnvelope{
		Message:    "Contato deletado com sucesso",
		ActionCode: ActionSuccess,
	}
}

func DeleteFailed(err error) (int, MutationEnvelope) {
	status, msg, errs := failure(err, "Erro ao deletar contato")
	return status, MutationEnvelope{Message: msg, Errors: errs, ActionCode: ActionFailure}
}

// BadRequest covers malformed requests rejected before any operation runs,
// like a missing id or an unreadable body.
func BadRequest(msg string) (int, MutationEnvelope) {
	return http.StatusBadRequest, MutationEnvelope{
		Message:    msg,
		Errors:     Errors{Text: msg},
		ActionCode: ActionFailure,
	}
}

// failure maps the error taxonomy to status, message and errors field. Storage
// details never reach the client beyond the operation summary.
func failure(err error, fallback string) (int, string, Errors) {
	ae, ok := apperr.As(err)
	if !ok {
		return http.StatusInternalServerError, fallback, Errors{Text: fallback}
	}
	switch ae.Kind {
	case apperr.KindValidation:
		return http.StatusBadRequest, ae.Message, Errors{Fields: ae.Fields}
	case apperr.KindNotFound:
		return http.StatusNotFound, ae.Message, Errors{Text: ae.Message}
	case apperr.KindConflict:
		return http.StatusBadRequest, ae.Message, Errors{Text: ae.Message}
	default:
		return http.StatusInternalServerError, fallback, Errors{Text: ae.Message}
	}
}
