package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemPayload struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required,max=500"`
	Price    int64  `json:"price" validate:"required,gte=0"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
	Image    string `json:"image" validate:"omitempty,url"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(addItemPayload{ID: "p1", Name: "Shirt", Price: 1000, Quantity: 1})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(addItemPayload{Name: "Shirt", Price: 1000})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "ID")
	assert.Equal(t, "is required", valErr.Fields()["ID"])
}

func TestValidate_BadURL(t *testing.T) {
	err := Validate(addItemPayload{ID: "p1", Name: "Shirt", Price: 1000, Image: "not a url"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid URL", valErr.Fields()["Image"])
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"id":"p1","name":"Shirt","price":1000}`))

	var payload addItemPayload
	require.NoError(t, DecodeAndValidate(r, &payload))
	assert.Equal(t, "p1", payload.ID)
	assert.EqualValues(t, 1000, payload.Price)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{`))

	var payload addItemPayload
	err := DecodeAndValidate(r, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
