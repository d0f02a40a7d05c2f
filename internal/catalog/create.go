package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/sticker-shop/internal/cosmic"
	"github.com/user/sticker-shop/internal/models"
)

// CreateStickerInput is the validated creation payload. Validation happens
// at the HTTP boundary; by the time it reaches here the price is in range.
type CreateStickerInput struct {
	Name         string
	Prompt       string
	Description  string
	Price        float64
	Tags         string
	MaterialType string
	Waterproof   bool
}

// CreateSticker persists a new sticker built around an already-generated
// image. mediaName is the stored media reference, displayURL its imgix-style
// URL. Derived size tiers price off the base: Small at -1, Medium at +1,
// Large at +3. New stickers start in stock and not featured.
func (r *Repository) CreateSticker(ctx context.Context, input CreateStickerInput, mediaName, displayURL string) (*models.Sticker, error) {
	slug := Slugify(input.Name)

	metadata := map[string]any{
		"name":           input.Name,
		"description":    input.Description,
		"ai_prompt":      input.Prompt,
		"product_images": []string{mediaName},
		"price":          input.Price,
		"size_options": []models.SizeOption{
			{Size: `Small (2")`, Price: input.Price - 1},
			{Size: `Medium (4")`, Price: input.Price + 1},
			{Size: `Large (6")`, Price: input.Price + 3},
		},
		"tags": input.Tags,
		"material_type": models.KeyValue{
			Key:   input.MaterialType,
			Value: capitalize(input.MaterialType),
		},
		"waterproof":       input.Waterproof,
		"in_stock":         true,
		"featured_product": false,
	}

	obj, err := r.client.InsertObject(ctx, cosmic.NewObject{
		Title:    input.Name,
		Type:     typeStickers,
		Slug:     slug,
		Metadata: metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sticker: %w", err)
	}

	sticker, err := models.ParseSticker(obj)
	if err != nil {
		return nil, fmt.Errorf("sticker created but response was malformed: %w", err)
	}
	// The store returns file metafields unexpanded on insert; backfill the
	// image we just generated so the caller always sees a renderable record.
	if len(sticker.Metadata.ProductImages) == 0 {
		sticker.Metadata.ProductImages = models.MediaList{{URL: mediaName, ImgixURL: displayURL}}
	} else if sticker.Metadata.ProductImages[0].ImgixURL == "" {
		sticker.Metadata.ProductImages[0].ImgixURL = displayURL
	}
	return sticker, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
