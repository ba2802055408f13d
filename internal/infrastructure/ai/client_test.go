package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentstudio-backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.AIConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "test-model",
		ImageModel:     "test-image-model",
		TimeoutSeconds: 5,
	})
}

func TestCompleteIssuesExactlyOneRequest(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "generated text"}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	got, err := client.Complete(context.Background(), Prompt{User: "write something"})
	require.NoError(t, err)
	assert.Equal(t, "generated text", got)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "exactly one request per call, no retry")
}

func TestCompletePassesProviderErrorVerbatim(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Rate limit reached for requests"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), Prompt{User: "anything"})
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
	assert.Contains(t, perr.Message, "Rate limit reached")
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "failures are terminal, no retry")
}

func TestCompleteJSONUnmarshalsObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"score": 84, "suggestions": ["add meta description"]}`}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	var out struct {
		Score       int      `json:"score"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, client.CompleteJSON(context.Background(), Prompt{User: "analyze"}, &out))
	assert.Equal(t, 84, out.Score)
	assert.Equal(t, []string{"add meta description"}, out.Suggestions)
}

func TestGenerateImageDecodesPayload(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(payload)},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	img, err := client.GenerateImage(context.Background(), "a leather bag on a desk", "1024x1024")
	require.NoError(t, err)
	assert.Equal(t, payload, img.Data)
	assert.Equal(t, "image/png", img.ContentType)
}
