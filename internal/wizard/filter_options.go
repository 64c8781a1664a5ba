package wizard

import (
	"context"

	"go.uber.org/zap"

	"myground/internal/models"
	"myground/internal/taxonomy"
)

// FilterAPI fetches the grouped filter taxonomy
type FilterAPI interface {
	GetFilterOptions(ctx context.Context) (*models.GroupedFilterOptions, error)
}

// FilterOptions returns the options filter panels render. A failed fetch or an
// unseeded store yields the built-in taxonomy, never empty lists.
func FilterOptions(ctx context.Context, api FilterAPI, log *zap.Logger) models.GroupedFilterOptions {
	grouped, err := api.GetFilterOptions(ctx)
	if err != nil {
		log.Warn("filter options unavailable, using built-in taxonomy", zap.Error(err))
		return taxonomy.DefaultGrouped()
	}
	if grouped == nil || !taxonomy.IsSeeded(*grouped) {
		log.Warn("filter options are empty, using built-in taxonomy")
		return taxonomy.DefaultGrouped()
	}
	return *grouped
}
