package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-management/apperr"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	ae, ok := apperr.As(err)
	require.True(t, ok, "expected an apperr.Error, got %v", err)
	require.Equal(t, apperr.KindValidation, ae.Kind)
	out := map[string]string{}
	for _, fe := range ae.Fields {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestValidateCreateOK(t *testing.T) {
	in := &CreateContactInput{Name: "  Ana  ", Age: 30}
	require.NoError(t, ValidateCreate(in))
	assert.Equal(t, "Ana", in.Name, "name is trimmed in place")
}

func TestValidateCreateMissingName(t *testing.T) {
	err := ValidateCreate(&CreateContactInput{Name: "   ", Age: 30})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
	assert.Equal(t, "O nome é obrigatório", fields["name"])
}

func TestValidateCreateBadAge(t *testing.T) {
	for _, age := range []int{0, -5, 200} {
		err := ValidateCreate(&CreateContactInput{Name: "Ana", Age: age})
		fields := fieldsOf(t, err)
		assert.Contains(t, fields, "age", "age %d should be rejected", age)
	}
}

func TestValidateCreateCollectsAllFields(t *testing.T) {
	err := ValidateCreate(&CreateContactInput{})
	fields := fieldsOf(t, err)
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "age")
}

func TestValidateUpdateEmptyPhoneEntry(t *testing.T) {
	err := ValidateUpdate(&UpdateContactInput{
		Name:   "Ana",
		Age:    30,
		Phones: []UpdatePhoneInput{{Number: ""}},
	})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "phone")
}

func TestValidateSearchAllowsEmptyFilter(t *testing.T) {
	in := &SearchContactInput{Name: " ", Phone: " "}
	require.NoError(t, ValidateSearch(in))
	assert.Empty(t, in.Name)
	assert.Empty(t, in.Phone)
}
