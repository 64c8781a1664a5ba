package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"myground/internal/cache"
	"myground/internal/metrics"
	"myground/internal/models"
	"myground/internal/repository"
	"myground/internal/taxonomy"
)

const (
	groupedOptionsKey = "filters:grouped"
	byTypeKeyPrefix   = "filters:type"
)

var knownOptionTypes = map[models.FilterOptionType]bool{
	models.OptionTransactionType:  true,
	models.OptionPropertyCategory: true,
	models.OptionPropertySubType:  true,
	models.OptionOwnershipType:    true,
	models.OptionPossessionStatus: true,
	models.OptionFurnishingType:   true,
	models.OptionParkingType:      true,
	models.OptionAreaUnit:         true,
	models.OptionBHK:              true,
}

type FilterService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

// NewFilterService creates the filter aggregator. cache may be nil.
func NewFilterService(repo *repository.Repository, c *cache.Cache, log *zap.Logger) *FilterService {
	return &FilterService{repo: repo, cache: c, log: log}
}

// GetAllFilterOptions returns the grouped taxonomy. An unreachable or unseeded
// store yields the built-in defaults instead of an error.
func (s *FilterService) GetAllFilterOptions(ctx context.Context) models.GroupedFilterOptions {
	var grouped models.GroupedFilterOptions
	hit, err := s.cache.GetJSON(ctx, groupedOptionsKey, &grouped)
	if err != nil {
		s.log.Warn("filter options cache read failed", zap.Error(err))
	}
	if hit {
		return grouped
	}

	rows, err := s.repo.ListActiveFilterOptions(ctx)
	if err != nil {
		s.log.Warn("filter option store unavailable, serving defaults", zap.Error(err))
		return s.fallback()
	}

	grouped = taxonomy.Group(rows, taxonomy.SourceStore)
	if !taxonomy.IsSeeded(grouped) {
		s.log.Warn("filter option store is not seeded, serving defaults", zap.Int("rows", len(rows)))
		return s.fallback()
	}

	if err := s.cache.SetJSON(ctx, groupedOptionsKey, grouped); err != nil {
		s.log.Warn("filter options cache write failed", zap.Error(err))
	}
	return grouped
}

func (s *FilterService) fallback() models.GroupedFilterOptions {
	metrics.FilterOptionsFallback.Inc()
	return taxonomy.DefaultGrouped()
}

// GetFilterOptionsByType lists the options of one type, optionally narrowed to a
// category. Unknown types have no options.
func (s *FilterService) GetFilterOptionsByType(
	ctx context.Context,
	optionType string,
	category string,
) ([]models.OptionProjection, error) {
	out := []models.OptionProjection{}
	if !knownOptionTypes[models.FilterOptionType(strings.ToUpper(optionType))] {
		return out, nil
	}

	key := cache.QueryKey(byTypeKeyPrefix, map[string]string{
		"type":     strings.ToUpper(optionType),
		"category": strings.ToUpper(category),
	})
	hit, err := s.cache.GetJSON(ctx, key, &out)
	if err != nil {
		s.log.Warn("filter options cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return out, nil
	}

	rows, err := s.repo.ListFilterOptionsByType(ctx, optionType, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list filter options: %w", err)
	}

	for _, row := range rows {
		out = append(out, models.OptionProjection{
			Value:    row.Value,
			Label:    row.Label,
			Category: row.Category,
			Order:    row.SortOrder,
			Metadata: row.Metadata,
		})
	}

	if err := s.cache.SetJSON(ctx, key, out); err != nil {
		s.log.Warn("filter options cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}

// Seed upserts the built-in taxonomy into the store and drops every cached
// option list
func (s *FilterService) Seed(ctx context.Context) (int, error) {
	rows, err := taxonomy.Default()
	if err != nil {
		return 0, err
	}
	if err := s.repo.UpsertFilterOptions(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to seed filter options: %w", err)
	}
	if err := s.cache.Delete(ctx, groupedOptionsKey); err != nil {
		s.log.Warn("failed to invalidate filter options cache", zap.Error(err))
	}
	if err := s.cache.DeletePrefix(ctx, byTypeKeyPrefix); err != nil {
		s.log.Warn("failed to invalidate filter options cache", zap.Error(err))
	}
	return len(rows), nil
}
