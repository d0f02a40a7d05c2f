package ai

import (
	"context"
)

// Request describes the image to generate. Folder is the media destination
// inside whatever store the provider writes to.
type Request struct {
	Prompt  string
	Folder  string
	AltText string
}

// Result is the stored generated image. DisplayURL can come back empty on a
// malformed provider success; callers must treat that as a contract
// violation, not use the result.
type Result struct {
	MediaName     string
	URL           string
	DisplayURL    string
	RevisedPrompt string
}

// Generator renders an image from a prompt and stores it as media.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
