package cosmic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/user/sticker-shop/internal/models"
)

// Client talks to a Cosmic-style bucket API. Reads carry the read key on the
// query string; writes authenticate with the write key as a bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	readKey    string
	writeKey   string
	logger     *zap.Logger
}

type Config struct {
	BaseURL  string
	Bucket   string
	ReadKey  string
	WriteKey string
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    cfg.BaseURL,
		bucket:     cfg.Bucket,
		readKey:    cfg.ReadKey,
		writeKey:   cfg.WriteKey,
		logger:     logger,
	}
}

// Query is the store's JSON query document, e.g.
// {"type": "stickers", "metadata.collections": id}.
type Query map[string]any

// NewObject is the write payload for creating a content record.
type NewObject struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Slug     string `json:"slug"`
	Metadata any    `json:"metadata"`
}

type objectsResponse struct {
	Objects []models.Object `json:"objects"`
	Total   int             `json:"total"`
}

type objectResponse struct {
	Object models.Object `json:"object"`
}

// FindObjects runs a query with the id/slug/title/metadata projection and
// one level of relationship expansion.
func (c *Client) FindObjects(ctx context.Context, query Query) ([]models.Object, error) {
	q, err := c.readParams(query)
	if err != nil {
		return nil, err
	}

	var resp objectsResponse
	if err := c.do(ctx, http.MethodGet, "/objects?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Objects, nil
}

// FindObject runs a query expected to match a single record. No match is a
// not-found APIError, the same way the store reports it.
func (c *Client) FindObject(ctx context.Context, query Query) (models.Object, error) {
	q, err := c.readParams(query)
	if err != nil {
		return models.Object{}, err
	}
	q.Set("limit", "1")

	var resp objectsResponse
	if err := c.do(ctx, http.MethodGet, "/objects?"+q.Encode(), nil, &resp); err != nil {
		return models.Object{}, err
	}
	if len(resp.Objects) == 0 {
		return models.Object{}, &APIError{Status: http.StatusNotFound, Message: "no object matched the query"}
	}
	return resp.Objects[0], nil
}

// InsertObject creates a record and returns it with its server-assigned id.
func (c *Client) InsertObject(ctx context.Context, obj NewObject) (models.Object, error) {
	var resp objectResponse
	if err := c.do(ctx, http.MethodPost, "/objects", obj, &resp); err != nil {
		return models.Object{}, err
	}
	return resp.Object, nil
}

func (c *Client) readParams(query Query) (url.Values, error) {
	raw, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	q := url.Values{}
	q.Set("query", string(raw))
	q.Set("props", "id,slug,title,type,created_at,modified_at,metadata")
	q.Set("depth", "1")
	if c.readKey != "" {
		q.Set("read_key", c.readKey)
	}
	return q, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint := fmt.Sprintf("%s/buckets/%s%s", c.baseURL, c.bucket, path)

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.writeKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		if resp.StatusCode != http.StatusNotFound {
			c.logger.Warn("content store error",
				zap.String("method", method),
				zap.Int("status", resp.StatusCode),
				zap.String("message", apiErr.Message))
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode content store response: %w", err)
		}
	}
	return nil
}
