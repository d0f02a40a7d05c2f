package models

import (
	"encoding/json"
	"time"
)

// Object is the raw envelope every record in the content store shares.
// Metadata stays opaque here; each entity kind has a typed parse step.
type Object struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
	Metadata   json.RawMessage `json:"metadata"`
}

// Media is an uploaded file with its raw and display (imgix) URLs.
type Media struct {
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// KeyValue is the store's select-dropdown metafield shape.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Ref is an expanded relationship projected down to its identity fields.
type Ref struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}
