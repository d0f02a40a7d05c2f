package ai

import (
	"context"
	"fmt"

	"github.com/user/sticker-shop/internal/cosmic"
)

// CosmicGenerator delegates to the content store's own AI image endpoint,
// which stores the result directly as bucket media.
type CosmicGenerator struct {
	client *cosmic.Client
}

func NewCosmicGenerator(client *cosmic.Client) *CosmicGenerator {
	return &CosmicGenerator{client: client}
}

func (g *CosmicGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	res, err := g.client.GenerateImage(ctx, cosmic.ImageRequest{
		Prompt:  req.Prompt,
		Folder:  req.Folder,
		AltText: req.AltText,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	name := res.Media.Name
	if name == "" {
		name = res.Media.URL
	}
	return &Result{
		MediaName:     name,
		URL:           res.Media.URL,
		DisplayURL:    res.Media.ImgixURL,
		RevisedPrompt: res.RevisedPrompt,
	}, nil
}
