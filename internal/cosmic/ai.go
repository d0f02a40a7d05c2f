package cosmic

import (
	"context"
	"net/http"
)

// ImageRequest asks the bucket's AI endpoint to generate and store an image.
type ImageRequest struct {
	Prompt  string `json:"prompt"`
	Folder  string `json:"folder,omitempty"`
	AltText string `json:"alt_text,omitempty"`
}

// GeneratedMedia is the stored media record the AI endpoint returns.
type GeneratedMedia struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

type ImageResult struct {
	Media         GeneratedMedia `json:"media"`
	RevisedPrompt string         `json:"revised_prompt"`
}

// GenerateImage renders an image from the prompt and stores it as bucket
// media. The result's display URL may still be empty on a malformed
// success; callers must check.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	var result ImageResult
	if err := c.do(ctx, http.MethodPost, "/ai/image", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
