package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/sticker-shop/internal/cosmic"
	"github.com/user/sticker-shop/internal/models"
)

type fakeClient struct {
	findObjectsFn func(query cosmic.Query) ([]models.Object, error)
	findObjectFn  func(query cosmic.Query) (models.Object, error)
	insertFn      func(obj cosmic.NewObject) (models.Object, error)

	findObjectsCalls int
	findObjectCalls  int
	insertCalls      int
}

func (f *fakeClient) FindObjects(_ context.Context, query cosmic.Query) ([]models.Object, error) {
	f.findObjectsCalls++
	return f.findObjectsFn(query)
}

func (f *fakeClient) FindObject(_ context.Context, query cosmic.Query) (models.Object, error) {
	f.findObjectCalls++
	return f.findObjectFn(query)
}

func (f *fakeClient) InsertObject(_ context.Context, obj cosmic.NewObject) (models.Object, error) {
	f.insertCalls++
	return f.insertFn(obj)
}

func mustObject(t *testing.T, slug string, metadata any) models.Object {
	t.Helper()
	raw, err := json.Marshal(metadata)
	require.NoError(t, err)
	return models.Object{
		ID:       "id-" + slug,
		Slug:     slug,
		Title:    slug,
		Metadata: raw,
	}
}

func stickerObject(t *testing.T, slug string, price float64, featured bool, tags string) models.Object {
	t.Helper()
	return mustObject(t, slug, map[string]any{
		"name":             slug,
		"description":      "test sticker",
		"product_images":   []map[string]string{{"url": "u", "imgix_url": "d"}},
		"price":            price,
		"tags":             tags,
		"in_stock":         true,
		"featured_product": featured,
	})
}

func newTestRepo(client ContentClient) *Repository {
	return NewRepository(client, zap.NewNop())
}

func TestListStickers_FeaturedFirstThenPrice(t *testing.T) {
	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return []models.Object{
				stickerObject(t, "plain-cheap", 1.99, false, ""),
				stickerObject(t, "featured-pricey", 9.99, true, ""),
				stickerObject(t, "plain-pricey", 7.99, false, ""),
				stickerObject(t, "featured-cheap", 2.99, true, ""),
			}, nil
		},
	}

	stickers, err := newTestRepo(client).ListStickers(context.Background())
	require.NoError(t, err)
	require.Len(t, stickers, 4)

	var slugs []string
	for _, s := range stickers {
		slugs = append(slugs, s.Slug)
	}
	assert.Equal(t, []string{"featured-cheap", "featured-pricey", "plain-cheap", "plain-pricey"}, slugs)

	// Every featured sticker precedes every non-featured one.
	seenPlain := false
	for _, s := range stickers {
		if !s.Metadata.Featured {
			seenPlain = true
		} else {
			assert.False(t, seenPlain, "featured sticker after non-featured")
		}
	}
}

func TestListStickers_NotFoundAndServerErrorDegrade(t *testing.T) {
	for _, status := range []int{404, 500, 503} {
		client := &fakeClient{
			findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
				return nil, &cosmic.APIError{Status: status, Message: "boom"}
			},
		}
		stickers, err := newTestRepo(client).ListStickers(context.Background())
		require.NoError(t, err, "status %d should degrade", status)
		assert.Empty(t, stickers)
	}
}

func TestListStickers_UnknownErrorPropagates(t *testing.T) {
	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return nil, errors.New("connection reset")
		},
	}
	_, err := newTestRepo(client).ListStickers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch stickers")
}

func TestListStickers_DropsMalformedRecords(t *testing.T) {
	bad := models.Object{Slug: "bad", Metadata: json.RawMessage(`{"name": 42}`)}
	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return []models.Object{bad, stickerObject(t, "good", 1, false, "")}, nil
		},
	}
	stickers, err := newTestRepo(client).ListStickers(context.Background())
	require.NoError(t, err)
	require.Len(t, stickers, 1)
	assert.Equal(t, "good", stickers[0].Slug)
}

func TestFeaturedStickers(t *testing.T) {
	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return []models.Object{
				stickerObject(t, "a", 1, true, ""),
				stickerObject(t, "b", 2, false, ""),
			}, nil
		},
	}
	featured, err := newTestRepo(client).FeaturedStickers(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "a", featured[0].Slug)
}

func TestStickerBySlug(t *testing.T) {
	t.Run("not found returns nil without error", func(t *testing.T) {
		client := &fakeClient{
			findObjectFn: func(cosmic.Query) (models.Object, error) {
				return models.Object{}, &cosmic.APIError{Status: 404, Message: "not found"}
			},
		}
		sticker, err := newTestRepo(client).StickerBySlug(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, sticker)
	})

	t.Run("server error returns nil without error", func(t *testing.T) {
		client := &fakeClient{
			findObjectFn: func(cosmic.Query) (models.Object, error) {
				return models.Object{}, &cosmic.APIError{Status: 500, Message: "outage"}
			},
		}
		sticker, err := newTestRepo(client).StickerBySlug(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, sticker)
	})

	t.Run("unknown error propagates", func(t *testing.T) {
		client := &fakeClient{
			findObjectFn: func(cosmic.Query) (models.Object, error) {
				return models.Object{}, errors.New("dns failure")
			},
		}
		_, err := newTestRepo(client).StickerBySlug(context.Background(), "ghost")
		require.Error(t, err)
	})

	t.Run("zero product images treated as not found", func(t *testing.T) {
		client := &fakeClient{
			findObjectFn: func(cosmic.Query) (models.Object, error) {
				return mustObject(t, "imageless", map[string]any{
					"name":           "imageless",
					"product_images": []string{},
					"price":          1.0,
				}), nil
			},
		}
		sticker, err := newTestRepo(client).StickerBySlug(context.Background(), "imageless")
		require.NoError(t, err)
		assert.Nil(t, sticker)
	})

	t.Run("found", func(t *testing.T) {
		client := &fakeClient{
			findObjectFn: func(query cosmic.Query) (models.Object, error) {
				assert.Equal(t, "astro-cat", query["slug"])
				return stickerObject(t, "astro-cat", 3.99, false, "space, cat"), nil
			},
		}
		sticker, err := newTestRepo(client).StickerBySlug(context.Background(), "astro-cat")
		require.NoError(t, err)
		require.NotNil(t, sticker)
		assert.Equal(t, "astro-cat", sticker.Slug)
	})
}

func TestListCollections_SortOrderAscendingMissingLast(t *testing.T) {
	mkCollection := func(slug string, sortOrder *int) models.Object {
		md := map[string]any{
			"collection_name": slug,
			"description":     "d",
		}
		if sortOrder != nil {
			md["sort_order"] = *sortOrder
		}
		return mustObject(t, slug, md)
	}
	two, five := 2, 5

	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return []models.Object{
				mkCollection("unordered", nil),
				mkCollection("fifth", &five),
				mkCollection("second", &two),
			}, nil
		},
	}

	collections, err := newTestRepo(client).ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, collections, 3)

	assert.Equal(t, "second", collections[0].Slug)
	assert.Equal(t, "fifth", collections[1].Slug)
	assert.Equal(t, "unordered", collections[2].Slug)
	assert.Equal(t, models.DefaultSortOrder, collections[2].EffectiveSortOrder())

	for i := 1; i < len(collections); i++ {
		assert.LessOrEqual(t, collections[i-1].EffectiveSortOrder(), collections[i].EffectiveSortOrder())
	}
}

func TestCollectionBySlug_ServerErrorPropagates(t *testing.T) {
	client := &fakeClient{
		findObjectFn: func(cosmic.Query) (models.Object, error) {
			return models.Object{}, &cosmic.APIError{Status: 500, Message: "outage"}
		},
	}
	_, err := newTestRepo(client).CollectionBySlug(context.Background(), "space")
	require.Error(t, err)

	client.findObjectFn = func(cosmic.Query) (models.Object, error) {
		return models.Object{}, &cosmic.APIError{Status: 404, Message: "gone"}
	}
	collection, err := newTestRepo(client).CollectionBySlug(context.Background(), "space")
	require.NoError(t, err)
	assert.Nil(t, collection)
}

func TestStickersByCollection_QueriesStoreByID(t *testing.T) {
	client := &fakeClient{
		findObjectsFn: func(query cosmic.Query) ([]models.Object, error) {
			assert.Equal(t, "col-1", query["metadata.collections"])
			return []models.Object{stickerObject(t, "member", 1, false, "")}, nil
		},
	}
	stickers, err := newTestRepo(client).StickersByCollection(context.Background(), "col-1")
	require.NoError(t, err)
	require.Len(t, stickers, 1)
}

func reviewObject(t *testing.T, slug, date string) models.Object {
	t.Helper()
	return mustObject(t, slug, map[string]any{
		"customer_name": "Customer " + slug,
		"rating":        map[string]string{"key": "5", "value": "5 stars"},
		"review_text":   "great",
		"review_date":   date,
	})
}

func TestListReviews_NewestFirstUnparseableLast(t *testing.T) {
	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return []models.Object{
				reviewObject(t, "old", "2024-03-01"),
				reviewObject(t, "broken", "soonish"),
				reviewObject(t, "new", "2025-07-18"),
			}, nil
		},
	}

	reviews, err := newTestRepo(client).ListReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 3)

	assert.Equal(t, "new", reviews[0].Slug)
	assert.Equal(t, "old", reviews[1].Slug)
	assert.Equal(t, "broken", reviews[2].Slug)

	for i := 1; i < len(reviews); i++ {
		assert.False(t, reviews[i].ReviewTime().After(reviews[i-1].ReviewTime()))
	}
}

func TestListReviews_ServerErrorPropagates(t *testing.T) {
	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return nil, &cosmic.APIError{Status: 500, Message: "outage"}
		},
	}
	_, err := newTestRepo(client).ListReviews(context.Background())
	require.Error(t, err)

	client.findObjectsFn = func(cosmic.Query) ([]models.Object, error) {
		return nil, &cosmic.APIError{Status: 404, Message: "none"}
	}
	reviews, err := newTestRepo(client).ListReviews(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestRecentReviews_Limit(t *testing.T) {
	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return []models.Object{
				reviewObject(t, "r1", "2025-01-01"),
				reviewObject(t, "r2", "2025-02-01"),
				reviewObject(t, "r3", "2025-03-01"),
				reviewObject(t, "r4", "2025-04-01"),
			}, nil
		},
	}

	reviews, err := newTestRepo(client).RecentReviews(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r4", reviews[0].Slug)
	assert.Equal(t, "r3", reviews[1].Slug)

	// Non-positive limit falls back to the default of 3.
	reviews, err = newTestRepo(client).RecentReviews(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
}

func TestSearchStickersByTag(t *testing.T) {
	client := &fakeClient{
		findObjectsFn: func(cosmic.Query) ([]models.Object, error) {
			return []models.Object{
				stickerObject(t, "dragon", 4.99, false, "Space, dragon, galaxy"),
				stickerObject(t, "cat", 3.99, false, "space, cat"),
				stickerObject(t, "panda", 3.49, false, "animal, cute"),
				stickerObject(t, "untagged", 2.99, false, ""),
			}, nil
		},
	}

	matched, err := newTestRepo(client).SearchStickersByTag(context.Background(), "space")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	for _, s := range matched {
		assert.True(t, s.HasTag("space"))
	}
}
