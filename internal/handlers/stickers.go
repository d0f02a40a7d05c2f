package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/user/sticker-shop/internal/ai"
	"github.com/user/sticker-shop/internal/cache"
	"github.com/user/sticker-shop/internal/catalog"
	"github.com/user/sticker-shop/internal/models"
)

// Fixed style qualifiers appended to every user prompt so generated images
// come out as product shots rather than arbitrary art.
const stylePromptSuffix = ", sticker design, high quality, detailed illustration, white background, professional product photo"

const generatedImageFolder = "ai-generated-stickers"

type StickersHandler struct {
	repo      Catalog
	generator ai.Generator
	cache     *cache.RedisCache
	validator *validator.Validate
	logger    *zap.Logger
}

func NewStickersHandler(repo Catalog, generator ai.Generator, redisCache *cache.RedisCache, logger *zap.Logger) *StickersHandler {
	return &StickersHandler{
		repo:      repo,
		generator: generator,
		cache:     redisCache,
		validator: validator.New(),
		logger:    logger,
	}
}

// List returns all stickers, featured first then by price. ?tag= switches
// to tag search, ?featured=true to the featured subset.
func (h *StickersHandler) List(w http.ResponseWriter, r *http.Request) {
	if tag := r.URL.Query().Get("tag"); tag != "" {
		stickers, err := h.repo.SearchStickersByTag(r.Context(), tag)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to search stickers")
			return
		}
		respondJSON(w, http.StatusOK, stickers)
		return
	}

	if r.URL.Query().Get("featured") == "true" {
		stickers, err := h.repo.FeaturedStickers(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to get featured stickers")
			return
		}
		respondJSON(w, http.StatusOK, stickers)
		return
	}

	if h.cache != nil {
		var cached []*models.Sticker
		if err := h.cache.GetJSON(r.Context(), cache.StickerListKey, &cached); err == nil {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	stickers, err := h.repo.ListStickers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get stickers")
		return
	}

	if h.cache != nil {
		h.cache.SetJSON(r.Context(), cache.StickerListKey, stickers, cache.StickerListTTL)
	}

	respondJSON(w, http.StatusOK, stickers)
}

// Get returns a single sticker by slug. Missing records, store outages on
// the lookup, and image-less records all come back 404.
func (h *StickersHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	if h.cache != nil {
		var cached models.Sticker
		if err := h.cache.GetJSON(r.Context(), cache.StickerKey(slug), &cached); err == nil {
			respondJSON(w, http.StatusOK, &cached)
			return
		}
	}

	sticker, err := h.repo.StickerBySlug(r.Context(), slug)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get sticker")
		return
	}
	if sticker == nil {
		respondError(w, http.StatusNotFound, "Sticker not found")
		return
	}

	if h.cache != nil {
		h.cache.SetJSON(r.Context(), cache.StickerKey(slug), sticker, cache.StickerTTL)
	}

	respondJSON(w, http.StatusOK, sticker)
}

// Reviews returns the reviews for one sticker, newest first.
func (h *StickersHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	sticker, err := h.repo.StickerBySlug(r.Context(), slug)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get sticker")
		return
	}
	if sticker == nil {
		respondError(w, http.StatusNotFound, "Sticker not found")
		return
	}

	reviews, err := h.repo.ReviewsByProduct(r.Context(), sticker.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get reviews")
		return
	}

	respondJSON(w, http.StatusOK, reviews)
}

// Create runs the two-step creation workflow: generate an image for the
// prompt, then persist the sticker record. Input problems reject before any
// remote call. There is no cleanup of the generated image if the second
// step fails.
func (h *StickersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondCreateError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondCreateError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if req.MaterialType == "" {
		req.MaterialType = "vinyl"
	}

	result, err := h.generator.Generate(r.Context(), ai.Request{
		Prompt:  req.Prompt + stylePromptSuffix,
		Folder:  generatedImageFolder,
		AltText: "AI-generated sticker: " + req.Name,
	})
	if err != nil {
		h.logger.Error("image generation failed", zap.String("name", req.Name), zap.Error(err))
		respondCreateError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result.DisplayURL == "" {
		h.logger.Error("image provider returned no display url", zap.String("name", req.Name))
		respondCreateError(w, http.StatusInternalServerError, "Failed to generate image")
		return
	}

	sticker, err := h.repo.CreateSticker(r.Context(), catalog.CreateStickerInput{
		Name:         req.Name,
		Prompt:       req.Prompt,
		Description:  req.Description,
		Price:        req.Price,
		Tags:         req.Tags,
		MaterialType: req.MaterialType,
		Waterproof:   req.Waterproof,
	}, result.MediaName, result.DisplayURL)
	if err != nil {
		h.logger.Error("sticker creation failed", zap.String("name", req.Name), zap.Error(err))
		respondCreateError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.cache != nil {
		h.cache.Delete(r.Context(), cache.StickerListKey)
	}

	respondJSON(w, http.StatusCreated, models.CreateStickerResponse{
		Success: true,
		Sticker: sticker,
	})
}

func respondCreateError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.CreateStickerResponse{
		Success: false,
		Error:   message,
	})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs {
			if ve.Field() == "Price" && (ve.Tag() == "gte" || ve.Tag() == "lte") {
				return "Price must be between $0 and $100"
			}
		}
	}
	return "Missing required fields"
}
