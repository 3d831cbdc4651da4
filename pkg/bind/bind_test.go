package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infernolabs/scmflow/pkg/bind"
)

func TestJSONDecodes(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Bolts","stock":5}`))

	var body struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	require.NoError(t, bind.JSON(req, &body))
	assert.Equal(t, "Bolts", body.Name)
	assert.Equal(t, 5, body.Stock)
}

func TestJSONRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))

	var body map[string]any
	err := bind.JSON(req, &body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestJSONIgnoresUnknownFields(t *testing.T) {
	// Documents are stored verbatim; unknown fields are not an error.
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","extra":true}`))

	var body struct {
		Name string `json:"name"`
	}
	assert.NoError(t, bind.JSON(req, &body))
}
