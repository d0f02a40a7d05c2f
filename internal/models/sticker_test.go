package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaListShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want MediaList
	}{
		{
			"expanded objects",
			`[{"url": "u1", "imgix_url": "d1"}]`,
			MediaList{{URL: "u1", ImgixURL: "d1"}},
		},
		{
			"bare names",
			`["a.png", "b.png"]`,
			MediaList{{URL: "a.png"}, {URL: "b.png"}},
		},
		{
			"single object",
			`{"url": "u1", "imgix_url": "d1"}`,
			MediaList{{URL: "u1", ImgixURL: "d1"}},
		},
		{
			"single name",
			`"a.png"`,
			MediaList{{URL: "a.png"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got MediaList
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &got))
			assert.Equal(t, tc.want, got)
		})
	}

	var got MediaList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestParseSticker(t *testing.T) {
	obj := Object{
		ID:   "stk-1",
		Slug: "astro-cat",
		Metadata: json.RawMessage(`{
			"name": "Astro Cat",
			"description": "A cat in space.",
			"product_images": [{"url": "u", "imgix_url": "d"}],
			"price": 3.99,
			"tags": "space, cat",
			"material_type": {"key": "vinyl", "value": "Vinyl"},
			"in_stock": true
		}`),
	}

	sticker, err := ParseSticker(obj)
	require.NoError(t, err)
	assert.Equal(t, "Astro Cat", sticker.Metadata.Name)
	assert.True(t, sticker.Metadata.InStock)
	assert.False(t, sticker.Metadata.Featured)

	_, err = ParseSticker(Object{Slug: "bad", Metadata: json.RawMessage(`{"name": []}`)})
	assert.Error(t, err)

	_, err = ParseSticker(Object{Slug: "anon", Metadata: json.RawMessage(`{"price": 1}`)})
	assert.Error(t, err, "missing name is a shape mismatch")
}

func TestStickerHasTag(t *testing.T) {
	s := &Sticker{Metadata: StickerMetadata{Tags: "Space, Galaxy, dragon"}}
	assert.True(t, s.HasTag("space"))
	assert.True(t, s.HasTag("GALAXY"))
	assert.False(t, s.HasTag("cat"))

	untagged := &Sticker{}
	assert.False(t, untagged.HasTag("space"))
}

func TestReviewTime(t *testing.T) {
	r := &Review{Metadata: ReviewMetadata{ReviewDate: "2025-07-18"}}
	assert.Equal(t, time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC), r.ReviewTime())

	rfc := &Review{Metadata: ReviewMetadata{ReviewDate: "2025-07-18T10:30:00Z"}}
	assert.Equal(t, 10, rfc.ReviewTime().Hour())

	broken := &Review{Metadata: ReviewMetadata{ReviewDate: "soonish"}}
	assert.True(t, broken.ReviewTime().IsZero())
}

func TestReviewRatingValue(t *testing.T) {
	r := &Review{Metadata: ReviewMetadata{Rating: KeyValue{Key: "4", Value: "4 stars"}}}
	assert.Equal(t, 4, r.RatingValue())

	bad := &Review{Metadata: ReviewMetadata{Rating: KeyValue{Key: "many"}}}
	assert.Equal(t, 0, bad.RatingValue())
}

func TestCollectionEffectiveSortOrder(t *testing.T) {
	two := 2
	ordered := &Collection{Metadata: CollectionMetadata{SortOrder: &two}}
	assert.Equal(t, 2, ordered.EffectiveSortOrder())

	unordered := &Collection{}
	assert.Equal(t, DefaultSortOrder, unordered.EffectiveSortOrder())
}
