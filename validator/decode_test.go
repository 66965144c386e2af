package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateInput(t *testing.T) {
	var in CreateContactInput
	require.NoError(t, Decode(`{"name":"Ana","age":30,"phones":[{"numero":"+5511912345678"}]}`, &in))
	assert.Equal(t, "Ana", in.Name)
	assert.Equal(t, 30, in.Age)
	require.Len(t, in.Phones, 1)
	assert.Equal(t, "+5511912345678", in.Phones[0].Numero)
}

func TestDecodeNonIntegerAge(t *testing.T) {
	var in CreateContactInput
	err := Decode(`{"name":"Ana","age":30.5}`, &in)
	fields := fieldsOf(t, err)
	assert.Equal(t, "Tipo de dado inválido", fields["age"])
}

func TestDecodeAgeAsString(t *testing.T) {
	var in UpdateContactInput
	err := Decode(`{"name":"Ana","age":"30"}`, &in)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "age")
}

func TestDecodeGarbageBody(t *testing.T) {
	var in CreateContactInput
	err := Decode(`{{not json`, &in)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "body")
}
