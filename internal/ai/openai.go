package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// MediaStore persists rendered image bytes and hands back the raw object
// URL and the CDN-backed display URL.
type MediaStore interface {
	UploadPNG(ctx context.Context, folder string, data []byte) (name, url, displayURL string, err error)
}

// OpenAIGenerator renders with the OpenAI image API and uploads the result
// to the media store, so the rest of the workflow sees the same media shape
// the bucket's own AI endpoint produces.
type OpenAIGenerator struct {
	client openai.Client
	store  MediaStore
	logger *zap.Logger
}

func NewOpenAIGenerator(apiKey string, store MediaStore, logger *zap.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		store:  store,
		logger: logger,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openai.ImageModelDallE3,
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		Size:           openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("image generation returned no images")
	}

	img := resp.Data[0]
	raw, err := base64.StdEncoding.DecodeString(img.B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}

	name, url, displayURL, err := g.store.UploadPNG(ctx, req.Folder, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to store generated image: %w", err)
	}
	g.logger.Info("generated image stored",
		zap.String("name", name),
		zap.Int("bytes", len(raw)))

	return &Result{
		MediaName:     name,
		URL:           url,
		DisplayURL:    displayURL,
		RevisedPrompt: img.RevisedPrompt,
	}, nil
}
