package handlers

import (
	"context"

	"github.com/user/sticker-shop/internal/catalog"
	"github.com/user/sticker-shop/internal/models"
)

// Catalog is the data-access surface the HTTP layer consumes. The concrete
// repository satisfies it; tests substitute fakes.
type Catalog interface {
	ListStickers(ctx context.Context) ([]*models.Sticker, error)
	FeaturedStickers(ctx context.Context) ([]*models.Sticker, error)
	StickerBySlug(ctx context.Context, slug string) (*models.Sticker, error)
	SearchStickersByTag(ctx context.Context, tag string) ([]*models.Sticker, error)
	StickersByCollection(ctx context.Context, collectionID string) ([]*models.Sticker, error)
	ListCollections(ctx context.Context) ([]*models.Collection, error)
	FeaturedCollections(ctx context.Context) ([]*models.Collection, error)
	CollectionBySlug(ctx context.Context, slug string) (*models.Collection, error)
	ListReviews(ctx context.Context) ([]*models.Review, error)
	ReviewsByProduct(ctx context.Context, stickerID string) ([]*models.Review, error)
	RecentReviews(ctx context.Context, limit int) ([]*models.Review, error)
	CreateSticker(ctx context.Context, input catalog.CreateStickerInput, mediaName, displayURL string) (*models.Sticker, error)
}
