package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/user/sticker-shop/internal/cache"
	"github.com/user/sticker-shop/internal/models"
)

type ReviewsHandler struct {
	repo   Catalog
	cache  *cache.RedisCache
	logger *zap.Logger
}

func NewReviewsHandler(repo Catalog, redisCache *cache.RedisCache, logger *zap.Logger) *ReviewsHandler {
	return &ReviewsHandler{repo: repo, cache: redisCache, logger: logger}
}

// List returns all reviews newest first; ?limit= caps it to the most
// recent ones.
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		reviews, err := h.repo.RecentReviews(r.Context(), limit)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to get reviews")
			return
		}
		respondJSON(w, http.StatusOK, reviews)
		return
	}

	if h.cache != nil {
		var cached []*models.Review
		if err := h.cache.GetJSON(r.Context(), cache.ReviewListKey, &cached); err == nil {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	reviews, err := h.repo.ListReviews(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get reviews")
		return
	}

	if h.cache != nil {
		h.cache.SetJSON(r.Context(), cache.ReviewListKey, reviews, cache.ReviewListTTL)
	}

	respondJSON(w, http.StatusOK, reviews)
}
