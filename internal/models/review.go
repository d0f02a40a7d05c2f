package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type Review struct {
	ID         string         `json:"id"`
	Slug       string         `json:"slug"`
	Title      string         `json:"title"`
	CreatedAt  time.Time      `json:"created_at"`
	ModifiedAt time.Time      `json:"modified_at"`
	Metadata   ReviewMetadata `json:"metadata"`
}

type ReviewMetadata struct {
	CustomerName     string   `json:"customer_name"`
	Rating           KeyValue `json:"rating"` // key is "1".."5"
	ReviewText       string   `json:"review_text"`
	ProductReviewed  Ref      `json:"product_reviewed"`
	ReviewPhotos     []Media  `json:"review_photos,omitempty"`
	VerifiedPurchase bool     `json:"verified_purchase,omitempty"`
	ReviewDate       string   `json:"review_date"` // ISO date string
	HelpfulVotes     int      `json:"helpful_votes,omitempty"`
}

func ParseReview(obj Object) (*Review, error) {
	var md ReviewMetadata
	if err := json.Unmarshal(obj.Metadata, &md); err != nil {
		return nil, fmt.Errorf("review %q has malformed metadata: %w", obj.Slug, err)
	}
	if md.CustomerName == "" {
		return nil, fmt.Errorf("review %q is missing a customer name", obj.Slug)
	}
	return &Review{
		ID:         obj.ID,
		Slug:       obj.Slug,
		Title:      obj.Title,
		CreatedAt:  obj.CreatedAt,
		ModifiedAt: obj.ModifiedAt,
		Metadata:   md,
	}, nil
}

// RatingValue parses the rating key. Out-of-range keys are upstream data
// bugs and come back as whatever the key says, not clamped.
func (r *Review) RatingValue() int {
	n, err := strconv.Atoi(r.Metadata.Rating.Key)
	if err != nil {
		return 0
	}
	return n
}

// ReviewTime parses the review date. Unparseable dates degrade to the zero
// time so they sort last in newest-first orderings.
func (r *Review) ReviewTime() time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, r.Metadata.ReviewDate); err == nil {
			return t
		}
	}
	return time.Time{}
}
