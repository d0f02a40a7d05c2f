package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/sticker-shop/internal/models"
)

type HomeHandler struct {
	repo   Catalog
	logger *zap.Logger
}

func NewHomeHandler(repo Catalog, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{repo: repo, logger: logger}
}

type homeResponse struct {
	FeaturedStickers    []*models.Sticker    `json:"featured_stickers"`
	FeaturedCollections []*models.Collection `json:"featured_collections"`
	RecentReviews       []*models.Review     `json:"recent_reviews"`
}

// Get aggregates the homepage data. The three reads are independent, so
// they go out in parallel.
func (h *HomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	var resp homeResponse

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		resp.FeaturedStickers, err = h.repo.FeaturedStickers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		resp.FeaturedCollections, err = h.repo.FeaturedCollections(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		resp.RecentReviews, err = h.repo.RecentReviews(ctx, 3)
		return err
	})

	if err := g.Wait(); err != nil {
		h.logger.Error("home aggregate failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to load home data")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
