package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/user/sticker-shop/internal/catalog"
	"github.com/user/sticker-shop/internal/config"
	"github.com/user/sticker-shop/internal/cosmic"
	"github.com/user/sticker-shop/internal/models"
)

// Seeds a development bucket with a few collections, stickers, and reviews
// so the storefront has something to render.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	client := cosmic.NewClient(cosmic.Config{
		BaseURL:  cfg.CosmicAPIURL,
		Bucket:   cfg.CosmicBucketSlug,
		ReadKey:  cfg.CosmicReadKey,
		WriteKey: cfg.CosmicWriteKey,
	}, logger)

	collections := []struct {
		name      string
		desc      string
		sortOrder int
		featured  bool
	}{
		{"Space Explorers", "Cosmic scenes, planets, and astronauts.", 1, true},
		{"Cute Animals", "Soft, friendly creatures for every surface.", 2, true},
		{"Retro Vibes", "Synthwave sunsets and arcade nostalgia.", 3, false},
	}

	collectionIDs := make(map[string]string, len(collections))
	for _, c := range collections {
		obj, err := client.InsertObject(ctx, cosmic.NewObject{
			Title: c.name,
			Type:  "collections",
			Slug:  catalog.Slugify(c.name),
			Metadata: map[string]any{
				"collection_name":     c.name,
				"description":         c.desc,
				"sort_order":          c.sortOrder,
				"featured_collection": c.featured,
			},
		})
		if err != nil {
			log.Fatalf("Failed to seed collection %q: %v", c.name, err)
		}
		collectionIDs[c.name] = obj.ID
		logger.Info("seeded collection", zap.String("slug", obj.Slug))
	}

	stickers := []struct {
		name       string
		desc       string
		price      float64
		tags       string
		material   string
		collection string
		featured   bool
	}{
		{"Cosmic Dragon", "A dragon coiled around a nebula.", 4.99, "space, dragon, galaxy", "holographic", "Space Explorers", true},
		{"Astro Cat", "A cat floating in a tiny spacesuit.", 3.99, "space, cat, cute", "vinyl", "Space Explorers", false},
		{"Sleepy Red Panda", "A red panda napping on a branch.", 3.49, "animal, cute, cozy", "vinyl", "Cute Animals", true},
		{"Neon Sunset", "Palm trees against a synthwave grid.", 2.99, "retro, neon, sunset", "transparent", "Retro Vibes", false},
	}

	stickerIDs := make(map[string]string, len(stickers))
	for _, s := range stickers {
		obj, err := client.InsertObject(ctx, cosmic.NewObject{
			Title: s.name,
			Type:  "stickers",
			Slug:  catalog.Slugify(s.name),
			Metadata: map[string]any{
				"name":           s.name,
				"description":    s.desc,
				"product_images": []string{catalog.Slugify(s.name) + ".png"},
				"price":          s.price,
				"size_options": []models.SizeOption{
					{Size: `Small (2")`, Price: s.price - 1},
					{Size: `Medium (4")`, Price: s.price + 1},
					{Size: `Large (6")`, Price: s.price + 3},
				},
				"tags":        s.tags,
				"collections": []string{collectionIDs[s.collection]},
				"material_type": models.KeyValue{
					Key:   s.material,
					Value: s.material,
				},
				"waterproof":       true,
				"in_stock":         true,
				"featured_product": s.featured,
			},
		})
		if err != nil {
			log.Fatalf("Failed to seed sticker %q: %v", s.name, err)
		}
		stickerIDs[s.name] = obj.ID
		logger.Info("seeded sticker", zap.String("slug", obj.Slug))
	}

	reviews := []struct {
		customer string
		rating   string
		text     string
		sticker  string
		date     string
		verified bool
	}{
		{"Maya R.", "5", "The holographic finish is stunning in sunlight.", "Cosmic Dragon", "2025-07-18", true},
		{"Jon P.", "4", "Survived two months on my water bottle so far.", "Astro Cat", "2025-07-02", true},
		{"Elin S.", "5", "Cutest thing on my laptop lid.", "Sleepy Red Panda", "2025-06-21", false},
	}

	for i, rv := range reviews {
		obj, err := client.InsertObject(ctx, cosmic.NewObject{
			Title: "Review by " + rv.customer,
			Type:  "reviews",
			Slug:  catalog.Slugify(rv.customer) + "-review",
			Metadata: map[string]any{
				"customer_name":     rv.customer,
				"rating":            models.KeyValue{Key: rv.rating, Value: rv.rating + " stars"},
				"review_text":       rv.text,
				"product_reviewed":  stickerIDs[rv.sticker],
				"verified_purchase": rv.verified,
				"review_date":       rv.date,
				"helpful_votes":     i,
			},
		})
		if err != nil {
			log.Fatalf("Failed to seed review by %q: %v", rv.customer, err)
		}
		logger.Info("seeded review", zap.String("slug", obj.Slug))
	}

	logger.Info("seed complete",
		zap.Int("collections", len(collections)),
		zap.Int("stickers", len(stickers)),
		zap.Int("reviews", len(reviews)))
}
