package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatweb/models"
	"chatweb/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaService_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "gemma2:2b", body["model"])

		// 履歴が順序どおりにリクエストへ写されている
		messages := body["messages"].([]interface{})
		require.Len(t, messages, 2)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hello!"}}]}`))
	}))
	defer server.Close()

	svc := services.NewOllamaService(server.URL, "gemma2:2b")

	history := []models.Message{
		{Role: models.RoleAssistant, Content: "Welcome!"},
		{Role: models.RoleUser, Content: "Hi"},
	}

	reply, err := svc.Complete(context.Background(), history, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)
}

func TestOllamaService_CompleteConnectionError(t *testing.T) {
	// 接続先が存在しないポート
	svc := services.NewOllamaService("http://127.0.0.1:1", "gemma2:2b")

	_, err := svc.Complete(context.Background(), []models.Message{{Role: models.RoleUser, Content: "Hi"}}, 0.7)
	assert.Error(t, err)
}

func TestOllamaService_CompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := services.NewOllamaService(server.URL, "gemma2:2b")

	_, err := svc.Complete(context.Background(), []models.Message{{Role: models.RoleUser, Content: "Hi"}}, 0.7)
	assert.ErrorContains(t, err, "no content in response")
}

func TestOllamaService_Stream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"choices":[{"delta":{"content":"1, "}}]}` + "\n\n"))
		w.Write([]byte(`data: {"choices":[{"delta":{"content":"2, "}}]}` + "\n\n"))
		w.Write([]byte(`data: {"choices":[{"delta":{"content":"3"}}]}` + "\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	svc := services.NewOllamaService(server.URL, "gemma2:2b")

	fragments := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Stream(context.Background(), []models.Message{{Role: models.RoleUser, Content: "count to 3"}}, 0.7, fragments)
	}()

	var got []string
	for fragment := range fragments {
		got = append(got, fragment)
	}

	require.NoError(t, <-errCh)
	assert.Equal(t, []string{"1, ", "2, ", "3"}, got)
}

func TestOllamaService_StreamClosesChannelOnError(t *testing.T) {
	svc := services.NewOllamaService("http://127.0.0.1:1", "gemma2:2b")

	fragments := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Stream(context.Background(), []models.Message{{Role: models.RoleUser, Content: "Hi"}}, 0.7, fragments)
	}()

	// 失敗時でもチャネルはクローズされ、受信側は抜けられる
	for range fragments {
	}
	assert.Error(t, <-errCh)
}
