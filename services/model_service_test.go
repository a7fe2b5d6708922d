package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatweb/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelService_GetModelInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/show", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "gemma2:2b", body["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"details": {
				"family": "gemma2",
				"parameter_size": "2.6B",
				"quantization_level": "Q4_0"
			}
		}`))
	}))
	defer server.Close()

	ms := services.NewModelService(server.URL, "gemma2:2b")

	info, err := ms.GetModelInfo()
	require.NoError(t, err)
	assert.Equal(t, "gemma2:2b", info.Model)
	assert.Equal(t, "gemma2", info.Family)
	assert.Equal(t, "2.6B", info.ParameterSize)
	assert.Equal(t, "Q4_0", info.Quantization)
}

func TestModelService_GetModelInfo_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	ms := services.NewModelService(server.URL, "missing:model")

	_, err := ms.GetModelInfo()
	assert.Error(t, err)
}
