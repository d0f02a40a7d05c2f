package cosmic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:  srv.URL,
		Bucket:   "test-bucket",
		ReadKey:  "rk",
		WriteKey: "wk",
	}, zap.NewNop())
}

func TestFindObjects_SendsProjectionAndReadKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buckets/test-bucket/objects", r.URL.Path)
		assert.Equal(t, "rk", r.URL.Query().Get("read_key"))
		assert.Equal(t, "1", r.URL.Query().Get("depth"))
		assert.Equal(t, "id,slug,title,type,created_at,modified_at,metadata", r.URL.Query().Get("props"))

		var query map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("query")), &query))
		assert.Equal(t, "stickers", query["type"])

		json.NewEncoder(w).Encode(map[string]any{
			"objects": []map[string]any{
				{"id": "1", "slug": "a", "title": "A", "metadata": map[string]any{}},
			},
			"total": 1,
		})
	})

	objects, err := client.FindObjects(context.Background(), Query{"type": "stickers"})
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "a", objects[0].Slug)
}

func TestFindObject_EmptyResultIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{"objects": []any{}})
	})

	_, err := client.FindObject(context.Background(), Query{"type": "stickers", "slug": "ghost"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDo_ErrorStatusBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "bucket on fire"})
	})

	_, err := client.FindObjects(context.Background(), Query{"type": "stickers"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "bucket on fire", apiErr.Message)
	assert.True(t, IsServerError(err))
}

func TestInsertObject_WritesWithBearerKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer wk", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "stickers", body["type"])
		assert.Equal(t, "cosmic-dragon", body["slug"])

		json.NewEncoder(w).Encode(map[string]any{
			"object": map[string]any{
				"id": "new-1", "slug": "cosmic-dragon", "title": "Cosmic Dragon",
				"metadata": map[string]any{"name": "Cosmic Dragon"},
			},
		})
	})

	obj, err := client.InsertObject(context.Background(), NewObject{
		Title:    "Cosmic Dragon",
		Type:     "stickers",
		Slug:     "cosmic-dragon",
		Metadata: map[string]any{"name": "Cosmic Dragon"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", obj.ID)
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{&APIError{Status: 404}, KindNotFound},
		{&APIError{Status: 500}, KindServerError},
		{&APIError{Status: 503}, KindServerError},
		{&APIError{Status: 400}, KindValidation},
		{&APIError{Status: 422}, KindValidation},
		{&APIError{Status: 403}, KindUnknown},
		{errors.New("plain"), KindUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyError(tc.err))
	}
}

func TestGenerateImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buckets/test-bucket/ai/image", r.URL.Path)
		assert.Equal(t, "Bearer wk", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["prompt"], "sticker design")

		json.NewEncoder(w).Encode(map[string]any{
			"media": map[string]any{
				"id": "m1", "name": "gen.png",
				"url": "https://store.example/gen.png", "imgix_url": "https://imgix.example/gen.png",
			},
			"revised_prompt": "a refined prompt",
		})
	})

	result, err := client.GenerateImage(context.Background(), ImageRequest{
		Prompt: "a dragon, sticker design",
		Folder: "ai-generated-stickers",
	})
	require.NoError(t, err)
	assert.Equal(t, "gen.png", result.Media.Name)
	assert.Equal(t, "https://imgix.example/gen.png", result.Media.ImgixURL)
	assert.Equal(t, "a refined prompt", result.RevisedPrompt)
}
