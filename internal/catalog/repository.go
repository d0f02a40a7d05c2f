package catalog

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/user/sticker-shop/internal/cosmic"
	"github.com/user/sticker-shop/internal/models"
)

const (
	typeStickers    = "stickers"
	typeCollections = "collections"
	typeReviews     = "reviews"
)

// ContentClient is the slice of the store client the catalog needs. The
// concrete client is injected at wiring time.
type ContentClient interface {
	FindObjects(ctx context.Context, query cosmic.Query) ([]models.Object, error)
	FindObject(ctx context.Context, query cosmic.Query) (models.Object, error)
	InsertObject(ctx context.Context, obj cosmic.NewObject) (models.Object, error)
}

// Repository is the read/create surface over the content store. Read paths
// degrade to empty results when the store says not-found, and for most list
// paths on store 5xx as well, so pages render an empty state instead of
// failing outright. Anything unexpected still propagates.
type Repository struct {
	client ContentClient
	logger *zap.Logger
}

func NewRepository(client ContentClient, logger *zap.Logger) *Repository {
	return &Repository{client: client, logger: logger}
}

// ListStickers returns every sticker, featured first, then by ascending
// price. Store not-found and 5xx degrade to an empty list.
func (r *Repository) ListStickers(ctx context.Context) ([]*models.Sticker, error) {
	objects, err := r.client.FindObjects(ctx, cosmic.Query{"type": typeStickers})
	if err != nil {
		if cosmic.IsNotFound(err) || cosmic.IsServerError(err) {
			r.logger.Warn("sticker list degraded to empty", zap.Error(err))
			return []*models.Sticker{}, nil
		}
		return nil, fmt.Errorf("failed to fetch stickers: %w", err)
	}

	stickers := r.parseStickers(objects)
	sort.SliceStable(stickers, func(i, j int) bool {
		a, b := stickers[i], stickers[j]
		if a.Metadata.Featured != b.Metadata.Featured {
			return a.Metadata.Featured
		}
		return a.Metadata.Price < b.Metadata.Price
	})
	return stickers, nil
}

// FeaturedStickers filters ListStickers client-side; there is no separate
// store query.
func (r *Repository) FeaturedStickers(ctx context.Context) ([]*models.Sticker, error) {
	all, err := r.ListStickers(ctx)
	if err != nil {
		return nil, err
	}
	featured := []*models.Sticker{}
	for _, s := range all {
		if s.Metadata.Featured {
			featured = append(featured, s)
		}
	}
	return featured, nil
}

// StickerBySlug returns nil without an error when the sticker does not
// exist, when the store is erroring server-side, or when the record has no
// product images and so cannot render a detail page.
func (r *Repository) StickerBySlug(ctx context.Context, slug string) (*models.Sticker, error) {
	obj, err := r.client.FindObject(ctx, cosmic.Query{"type": typeStickers, "slug": slug})
	if err != nil {
		if cosmic.IsNotFound(err) || cosmic.IsServerError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch sticker: %w", err)
	}

	sticker, err := models.ParseSticker(obj)
	if err != nil {
		r.logger.Warn("dropping malformed sticker", zap.String("slug", slug), zap.Error(err))
		return nil, nil
	}
	if len(sticker.Metadata.ProductImages) == 0 {
		return nil, nil
	}
	return sticker, nil
}

// ListCollections returns collections ordered by sort_order ascending, with
// unset orders sorting last. Store not-found and 5xx degrade to empty.
func (r *Repository) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	objects, err := r.client.FindObjects(ctx, cosmic.Query{"type": typeCollections})
	if err != nil {
		if cosmic.IsNotFound(err) || cosmic.IsServerError(err) {
			r.logger.Warn("collection list degraded to empty", zap.Error(err))
			return []*models.Collection{}, nil
		}
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}

	collections := r.parseCollections(objects)
	sort.SliceStable(collections, func(i, j int) bool {
		return collections[i].EffectiveSortOrder() < collections[j].EffectiveSortOrder()
	})
	return collections, nil
}

func (r *Repository) FeaturedCollections(ctx context.Context) ([]*models.Collection, error) {
	all, err := r.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	featured := []*models.Collection{}
	for _, c := range all {
		if c.Metadata.Featured {
			featured = append(featured, c)
		}
	}
	return featured, nil
}

// CollectionBySlug returns nil on not-found only; unlike the sticker detail
// lookup, a store 5xx propagates here.
func (r *Repository) CollectionBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	obj, err := r.client.FindObject(ctx, cosmic.Query{"type": typeCollections, "slug": slug})
	if err != nil {
		if cosmic.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch collection: %w", err)
	}

	collection, err := models.ParseCollection(obj)
	if err != nil {
		r.logger.Warn("dropping malformed collection", zap.String("slug", slug), zap.Error(err))
		return nil, nil
	}
	return collection, nil
}

// StickersByCollection queries the store for stickers referencing the
// collection. Not-found and 5xx degrade to empty.
func (r *Repository) StickersByCollection(ctx context.Context, collectionID string) ([]*models.Sticker, error) {
	objects, err := r.client.FindObjects(ctx, cosmic.Query{
		"type":                 typeStickers,
		"metadata.collections": collectionID,
	})
	if err != nil {
		if cosmic.IsNotFound(err) || cosmic.IsServerError(err) {
			return []*models.Sticker{}, nil
		}
		return nil, fmt.Errorf("failed to fetch stickers by collection: %w", err)
	}
	return r.parseStickers(objects), nil
}

// ListReviews returns all reviews, newest first. Only not-found degrades to
// empty; a store 5xx propagates.
func (r *Repository) ListReviews(ctx context.Context) ([]*models.Review, error) {
	objects, err := r.client.FindObjects(ctx, cosmic.Query{"type": typeReviews})
	if err != nil {
		if cosmic.IsNotFound(err) {
			return []*models.Review{}, nil
		}
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	reviews := r.parseReviews(objects)
	sortReviewsNewestFirst(reviews)
	return reviews, nil
}

// ReviewsByProduct returns the reviews referencing a sticker, newest first.
func (r *Repository) ReviewsByProduct(ctx context.Context, stickerID string) ([]*models.Review, error) {
	objects, err := r.client.FindObjects(ctx, cosmic.Query{
		"type":                      typeReviews,
		"metadata.product_reviewed": stickerID,
	})
	if err != nil {
		if cosmic.IsNotFound(err) {
			return []*models.Review{}, nil
		}
		return nil, fmt.Errorf("failed to fetch product reviews: %w", err)
	}

	reviews := r.parseReviews(objects)
	sortReviewsNewestFirst(reviews)
	return reviews, nil
}

// RecentReviews returns the newest reviews, up to limit (default 3).
func (r *Repository) RecentReviews(ctx context.Context, limit int) ([]*models.Review, error) {
	if limit <= 0 {
		limit = 3
	}
	all, err := r.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// SearchStickersByTag filters the full sticker list by a case-insensitive
// substring match over the comma-separated tags field.
func (r *Repository) SearchStickersByTag(ctx context.Context, tag string) ([]*models.Sticker, error) {
	all, err := r.ListStickers(ctx)
	if err != nil {
		return nil, err
	}
	matched := []*models.Sticker{}
	for _, s := range all {
		if s.HasTag(tag) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (r *Repository) parseStickers(objects []models.Object) []*models.Sticker {
	stickers := []*models.Sticker{}
	for _, obj := range objects {
		s, err := models.ParseSticker(obj)
		if err != nil {
			r.logger.Warn("dropping malformed sticker", zap.String("slug", obj.Slug), zap.Error(err))
			continue
		}
		stickers = append(stickers, s)
	}
	return stickers
}

func (r *Repository) parseCollections(objects []models.Object) []*models.Collection {
	collections := []*models.Collection{}
	for _, obj := range objects {
		c, err := models.ParseCollection(obj)
		if err != nil {
			r.logger.Warn("dropping malformed collection", zap.String("slug", obj.Slug), zap.Error(err))
			continue
		}
		collections = append(collections, c)
	}
	return collections
}

func (r *Repository) parseReviews(objects []models.Object) []*models.Review {
	reviews := []*models.Review{}
	for _, obj := range objects {
		rev, err := models.ParseReview(obj)
		if err != nil {
			r.logger.Warn("dropping malformed review", zap.String("slug", obj.Slug), zap.Error(err))
			continue
		}
		reviews = append(reviews, rev)
	}
	return reviews
}

func sortReviewsNewestFirst(reviews []*models.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].ReviewTime().After(reviews[j].ReviewTime())
	})
}

var slugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name and collapses non-alphanumeric runs into
// single hyphens, trimming any at the ends.
func Slugify(name string) string {
	return strings.Trim(slugRun.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
