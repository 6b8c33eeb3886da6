package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aiclient "aiupstart.com/ai-client"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:  "sk-test",
		BaseURL: server.URL + "/v1",
	}, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewClient(Config{}, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, aiclient.IsAPIKeyMissing(err))
	assert.Equal(t, aiclient.CodeAPIKeyMissing, aiclient.ErrorCode(err))
}

func TestNewClientKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	client, err := NewClient(Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "openai", client.Name())
	assert.Equal(t, DefaultModel, client.model)
}

func TestGetRawResponseSuccess(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Mocked response"},
				"finish_reason": "stop"
			}]
		}`))
	})

	got, err := client.GetRawResponse(context.Background(), "You are helpful.", "Say hi.")
	require.NoError(t, err)
	assert.Equal(t, "Mocked response", got)
}

func TestGetRawResponseAPIError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "simulated failure", "type": "server_error"}}`))
	})

	_, err := client.GetRawResponse(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.True(t, aiclient.IsResponseError(err))
	assert.Equal(t, aiclient.CodeAPIRequestFailed, aiclient.ErrorCode(err))

	var structured *aiclient.Error
	require.True(t, errors.As(err, &structured))
	assert.NotNil(t, structured.Cause)
	assert.Equal(t, DefaultModel, structured.Metadata["model"])
}

func TestGetRawResponseNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connections now refused

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL + "/v1"}, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.GetRawResponse(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.True(t, aiclient.IsResponseError(err))

	var structured *aiclient.Error
	require.True(t, errors.As(err, &structured))
	assert.NotNil(t, structured.Cause)
}

func TestGetRawResponseNoChoices(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	})

	_, err := client.GetRawResponse(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.True(t, aiclient.IsResponseError(err))
	assert.Equal(t, aiclient.CodeResponseParse, aiclient.ErrorCode(err))
}

func TestConfigOverrides(t *testing.T) {
	client, err := NewClient(Config{
		APIKey:      "sk-test",
		Model:       "gpt-4o",
		Temperature: 0.2,
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", client.model)
	assert.InDelta(t, 0.2, client.temperature, 0.0001)
}
