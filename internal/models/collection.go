package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Collections without an explicit sort_order sort after every ordered one.
const DefaultSortOrder = 999

type Collection struct {
	ID         string             `json:"id"`
	Slug       string             `json:"slug"`
	Title      string             `json:"title"`
	CreatedAt  time.Time          `json:"created_at"`
	ModifiedAt time.Time          `json:"modified_at"`
	Metadata   CollectionMetadata `json:"metadata"`
}

type CollectionMetadata struct {
	CollectionName string `json:"collection_name"`
	Description    string `json:"description"`
	FeaturedImage  Media  `json:"featured_image"`
	BannerImage    *Media `json:"collection_banner,omitempty"`
	SortOrder      *int   `json:"sort_order,omitempty"`
	Featured       bool   `json:"featured_collection,omitempty"`
}

func ParseCollection(obj Object) (*Collection, error) {
	var md CollectionMetadata
	if err := json.Unmarshal(obj.Metadata, &md); err != nil {
		return nil, fmt.Errorf("collection %q has malformed metadata: %w", obj.Slug, err)
	}
	if md.CollectionName == "" {
		return nil, fmt.Errorf("collection %q is missing a name", obj.Slug)
	}
	return &Collection{
		ID:         obj.ID,
		Slug:       obj.Slug,
		Title:      obj.Title,
		CreatedAt:  obj.CreatedAt,
		ModifiedAt: obj.ModifiedAt,
		Metadata:   md,
	}, nil
}

// EffectiveSortOrder returns the explicit sort order or DefaultSortOrder
// when none is set.
func (c *Collection) EffectiveSortOrder() int {
	if c.Metadata.SortOrder == nil {
		return DefaultSortOrder
	}
	return *c.Metadata.SortOrder
}
