package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Sticker struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug"`
	Title      string          `json:"title"`
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
	Metadata   StickerMetadata `json:"metadata"`
}

type StickerMetadata struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	AIPrompt      string       `json:"ai_prompt,omitempty"`
	ProductImages MediaList    `json:"product_images"`
	Price         float64      `json:"price"`
	SizeOptions   []SizeOption `json:"size_options,omitempty"`
	Tags          string       `json:"tags,omitempty"` // comma-separated, free text
	Collections   []Ref        `json:"collections,omitempty"`
	MaterialType  KeyValue     `json:"material_type"`
	Waterproof    bool         `json:"waterproof,omitempty"`
	InStock       bool         `json:"in_stock"`
	Featured      bool         `json:"featured_product,omitempty"`
}

type SizeOption struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// MediaList tolerates the file metafield's shifting shapes: an array of
// expanded media objects, an array of bare media names, or a single one of
// either. Bare names decode with only the URL set.
type MediaList []Media

func (m *MediaList) UnmarshalJSON(data []byte) error {
	var objs []Media
	if err := json.Unmarshal(data, &objs); err == nil {
		*m = objs
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		out := make(MediaList, 0, len(names))
		for _, n := range names {
			out = append(out, Media{URL: n})
		}
		*m = out
		return nil
	}
	var single Media
	if err := json.Unmarshal(data, &single); err == nil {
		*m = MediaList{single}
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*m = MediaList{{URL: name}}
		return nil
	}
	return fmt.Errorf("unrecognized product_images shape")
}

// ParseSticker converts a raw content object into the typed sticker model.
// A metadata bag that does not decode, or one missing its name, is a shape
// mismatch from the store and is rejected rather than passed through.
func ParseSticker(obj Object) (*Sticker, error) {
	var md StickerMetadata
	if err := json.Unmarshal(obj.Metadata, &md); err != nil {
		return nil, fmt.Errorf("sticker %q has malformed metadata: %w", obj.Slug, err)
	}
	if md.Name == "" {
		return nil, fmt.Errorf("sticker %q is missing a name", obj.Slug)
	}
	return &Sticker{
		ID:         obj.ID,
		Slug:       obj.Slug,
		Title:      obj.Title,
		CreatedAt:  obj.CreatedAt,
		ModifiedAt: obj.ModifiedAt,
		Metadata:   md,
	}, nil
}

// HasTag reports whether the comma-separated tags string contains tag,
// case-insensitively. Stickers without tags never match.
func (s *Sticker) HasTag(tag string) bool {
	if s.Metadata.Tags == "" || tag == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s.Metadata.Tags), strings.ToLower(tag))
}

// Request DTOs
type CreateStickerRequest struct {
	Name         string  `json:"name" validate:"required,max=80"`
	Prompt       string  `json:"prompt" validate:"required,max=1000"`
	Description  string  `json:"description" validate:"required"`
	Price        float64 `json:"price" validate:"required,gte=0,lte=100"`
	Tags         string  `json:"tags"`
	MaterialType string  `json:"materialType" validate:"omitempty,oneof=vinyl holographic paper transparent"`
	Waterproof   bool    `json:"waterproof"`
}

type CreateStickerResponse struct {
	Success bool     `json:"success"`
	Sticker *Sticker `json:"sticker,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// InCollection reports whether the sticker references the given collection.
func (s *Sticker) InCollection(collectionID string) bool {
	for _, c := range s.Metadata.Collections {
		if c.ID == collectionID {
			return true
		}
	}
	return false
}
