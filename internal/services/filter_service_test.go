package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"myground/internal/cache"
	"myground/internal/metrics"
	"myground/internal/models"
	"myground/internal/taxonomy"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute), mr
}

func option(t models.FilterOptionType, value, category string, order int) models.FilterOption {
	return models.FilterOption{OptionType: t, Value: value, Label: value, Category: category, SortOrder: order, IsActive: true}
}

func TestGetAllFilterOptionsFallsBackWhenUnseeded(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	svc := NewFilterService(repo, nil, zap.NewNop())

	// Rows of other types alone do not count as seeded
	require.NoError(t, repo.UpsertFilterOptions(ctx, []models.FilterOption{
		option(models.OptionAreaUnit, "SQFT", "", 1),
	}))

	before := testutil.ToFloat64(metrics.FilterOptionsFallback)
	got := svc.GetAllFilterOptions(ctx)

	want := taxonomy.DefaultGrouped()
	assert.Equal(t, taxonomy.SourceDefaults, got.Source)
	assert.Equal(t, want.TransactionTypes, got.TransactionTypes)
	assert.Equal(t, want.PropertyCategories, got.PropertyCategories)
	assert.NotEmpty(t, got.TransactionTypes)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.FilterOptionsFallback))
}

func TestGetAllFilterOptionsFallsBackWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepo(t)
	svc := NewFilterService(repo, nil, zap.NewNop())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	got := svc.GetAllFilterOptions(ctx)
	assert.Equal(t, taxonomy.SourceDefaults, got.Source)
	assert.Len(t, got.PropertyCategories, 6)
}

func TestGetAllFilterOptionsGroupsStoreRows(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	svc := NewFilterService(repo, nil, zap.NewNop())

	require.NoError(t, repo.UpsertFilterOptions(ctx, []models.FilterOption{
		option(models.OptionTransactionType, "SELL", "", 1),
		option(models.OptionPropertyCategory, "RESIDENTIAL", "", 1),
		option(models.OptionPropertySubType, "Villa", "RESIDENTIAL", 1),
		option(models.OptionPropertySubType, "Studio Apartment", "RESIDENTIAL", 2),
		option(models.OptionPropertySubType, "Farm Land", "LAND", 1),
		option(models.OptionBHK, "1", "", 1),
		option(models.OptionBHK, "3", "", 3),
		option(models.OptionBHK, "2", "", 2),
		option(models.OptionBHK, "7+", "", 7),
		option(models.OptionBHK, "7", "", 8),
	}))

	got := svc.GetAllFilterOptions(ctx)
	assert.Equal(t, taxonomy.SourceStore, got.Source)
	assert.Equal(t, []int{1, 2, 3, 7}, got.BHKOptions)
	assert.Equal(t, map[string][]string{
		"RESIDENTIAL": {"Villa", "Studio Apartment"},
		"LAND":        {"Farm Land"},
	}, got.PropertySubTypes)
	assert.Equal(t, []models.OptionItem{{Value: "SELL", Label: "SELL"}}, got.TransactionTypes)
}

func TestGetAllFilterOptionsUsesCache(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepo(t)
	c, mr := newTestCache(t)
	svc := NewFilterService(repo, c, zap.NewNop())

	require.NoError(t, repo.UpsertFilterOptions(ctx, []models.FilterOption{
		option(models.OptionTransactionType, "RENT", "", 1),
		option(models.OptionPropertyCategory, "LAND", "", 1),
	}))

	first := svc.GetAllFilterOptions(ctx)
	require.Equal(t, taxonomy.SourceStore, first.Source)
	assert.True(t, mr.Exists("myground:"+groupedOptionsKey))

	// Served from the cache even after the rows are gone
	require.NoError(t, db.Exec("DELETE FROM filter_options").Error)
	second := svc.GetAllFilterOptions(ctx)
	assert.Equal(t, first, second)

	// Seeding invalidates the cached grouping
	_, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, mr.Exists("myground:"+groupedOptionsKey))
}

func TestFallbackIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	c, mr := newTestCache(t)
	svc := NewFilterService(repo, c, zap.NewNop())

	got := svc.GetAllFilterOptions(ctx)
	assert.Equal(t, taxonomy.SourceDefaults, got.Source)
	assert.False(t, mr.Exists("myground:"+groupedOptionsKey))
}

func TestGetFilterOptionsByType(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	svc := NewFilterService(repo, nil, zap.NewNop())

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Positive(t, n)

	subTypes, err := svc.GetFilterOptionsByType(ctx, "property_subtype", "land")
	require.NoError(t, err)
	require.NotEmpty(t, subTypes)
	for i, o := range subTypes {
		assert.Equal(t, "LAND", o.Category)
		assert.Equal(t, i+1, o.Order)
	}

	units, err := svc.GetFilterOptionsByType(ctx, "AREA_UNIT", "")
	require.NoError(t, err)
	assert.NotEmpty(t, units)

	unknown, err := svc.GetFilterOptionsByType(ctx, "COLOUR", "")
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepo(t)
	svc := NewFilterService(repo, nil, zap.NewNop())

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	_, err = svc.Seed(ctx)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.FilterOption{}).Count(&count).Error)
	assert.Equal(t, int64(n), count)

	got := svc.GetAllFilterOptions(ctx)
	assert.Equal(t, taxonomy.SourceStore, got.Source)
	assert.Equal(t, taxonomy.DefaultGrouped().TransactionTypes, got.TransactionTypes)
}

func TestGetFilterOptionsByTypeUsesCache(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepo(t)
	c, mr := newTestCache(t)
	svc := NewFilterService(repo, c, zap.NewNop())

	require.NoError(t, repo.UpsertFilterOptions(ctx, []models.FilterOption{
		option(models.OptionAreaUnit, "SQFT", "", 1),
		option(models.OptionAreaUnit, "ACRE", "", 2),
	}))

	first, err := svc.GetFilterOptionsByType(ctx, "area_unit", "")
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Key case does not matter, and the rows are no longer read
	require.NoError(t, db.Exec("DELETE FROM filter_options").Error)
	second, err := svc.GetFilterOptionsByType(ctx, "AREA_UNIT", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = svc.Seed(ctx)
	require.NoError(t, err)
	for _, key := range mr.Keys() {
		assert.NotContains(t, key, byTypeKeyPrefix)
	}

	seeded, err := svc.GetFilterOptionsByType(ctx, "AREA_UNIT", "")
	require.NoError(t, err)
	assert.NotEqual(t, first, seeded)
}
