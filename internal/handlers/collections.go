package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/user/sticker-shop/internal/cache"
	"github.com/user/sticker-shop/internal/models"
)

type CollectionsHandler struct {
	repo   Catalog
	cache  *cache.RedisCache
	logger *zap.Logger
}

func NewCollectionsHandler(repo Catalog, redisCache *cache.RedisCache, logger *zap.Logger) *CollectionsHandler {
	return &CollectionsHandler{repo: repo, cache: redisCache, logger: logger}
}

// List returns collections in sort order; ?featured=true filters down to
// the featured ones.
func (h *CollectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("featured") == "true" {
		collections, err := h.repo.FeaturedCollections(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to get featured collections")
			return
		}
		respondJSON(w, http.StatusOK, collections)
		return
	}

	if h.cache != nil {
		var cached []*models.Collection
		if err := h.cache.GetJSON(r.Context(), cache.CollectionListKey, &cached); err == nil {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	collections, err := h.repo.ListCollections(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get collections")
		return
	}

	if h.cache != nil {
		h.cache.SetJSON(r.Context(), cache.CollectionListKey, collections, cache.CollectionListTTL)
	}

	respondJSON(w, http.StatusOK, collections)
}

type collectionDetail struct {
	Collection *models.Collection `json:"collection"`
	Stickers   []*models.Sticker  `json:"stickers"`
}

// Get returns one collection plus the stickers referencing it. The sticker
// fetch depends on the collection's id, so the two reads are sequenced.
func (h *CollectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	if h.cache != nil {
		var cached collectionDetail
		if err := h.cache.GetJSON(r.Context(), cache.CollectionKey(slug), &cached); err == nil {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	collection, err := h.repo.CollectionBySlug(r.Context(), slug)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get collection")
		return
	}
	if collection == nil {
		respondError(w, http.StatusNotFound, "Collection not found")
		return
	}

	stickers, err := h.repo.StickersByCollection(r.Context(), collection.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get collection stickers")
		return
	}

	detail := collectionDetail{
		Collection: collection,
		Stickers:   stickers,
	}
	if h.cache != nil {
		h.cache.SetJSON(r.Context(), cache.CollectionKey(slug), detail, cache.CollectionTTL)
	}

	respondJSON(w, http.StatusOK, detail)
}
