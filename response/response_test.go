package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-management/apperr"
	"contact-management/model"
)

func TestCreatedEnvelope(t *testing.T) {
	contact := &model.Contact{
		ID:   7,
		Name: "Ana",
		Age:  30,
		Phones: []model.Phone{
			{ID: 1, ContactID: 7, Number: "+5511912345678"},
		},
	}
	status, env := Created(contact)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, ActionSuccess, env.ActionCode)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `"errors":false`)
	assert.Contains(t, body, `"phone":"+5511912345678"`)
	assert.Contains(t, body, `"action_code":1`)
}

func TestCreateFailedValidation(t *testing.T) {
	err := apperr.Validation("Dados inválidos", []apperr.FieldError{
		{Field: "name", Message: "O nome é obrigatório"},
	})
	status, env := CreateFailed(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ActionFailure, env.ActionCode)

	data, errMarshal := json.Marshal(env)
	require.NoError(t, errMarshal)
	assert.Contains(t, string(data), `"errors":[{"field":"name","message":"O nome é obrigatório"}]`)
}

func TestSearchResultEmptyIsActionEmpty(t *testing.T) {
	status, env := SearchResult(nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, ActionEmpty, env.ActionCode)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contacts":[]`)
	assert.Contains(t, string(data), `"errors":false`)
}

func TestSearchResultWithMatches(t *testing.T) {
	status, env := SearchResult([]model.Contact{{ID: 1, Name: "Ana", Age: 30}})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, ActionSuccess, env.ActionCode)
	require.Len(t, env.Contacts, 1)
	assert.NotNil(t, env.Contacts[0].Phones, "phones marshals as [] even when empty")
}

func TestUpdateFailedNotFound(t *testing.T) {
	status, env := UpdateFailed(apperr.NotFound("Contato não encontrado"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, ActionFailure, env.ActionCode)
	assert.Equal(t, "Contato não encontrado", env.Errors.Text)
}

func TestDeleteFailedStorageHidesDetail(t *testing.T) {
	cause := assert.AnError
	status, env := DeleteFailed(apperr.Storage("Erro ao deletar contato", cause))
	assert.Equal(t, http.StatusInternalServerError, status)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.NotContains(t, string(data), cause.Error(), "internal detail never reaches the client")
	assert.Contains(t, string(data), `"errors":"Erro ao deletar contato"`)
}

func TestConflictMapsToBadRequest(t *testing.T) {
	status, env := UpdateFailed(apperr.Conflict("Telefone não pertence ao contato"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ActionFailure, env.ActionCode)
}

func TestUntypedErrorIsInternal(t *testing.T) {
	status, env := SearchFailed(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Erro ao buscar contatos", env.Message)
}
