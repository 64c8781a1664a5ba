package repository

import (
	"context"
	"strings"

	"gorm.io/gorm/clause"

	"myground/internal/models"
)

// ListActiveFilterOptions retrieves all active rows ordered by type, order and category
func (r *Repository) ListActiveFilterOptions(ctx context.Context) ([]models.FilterOption, error) {
	var rows []models.FilterOption
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("option_type ASC").
		Order("sort_order ASC").
		Order("category ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListFilterOptionsByType retrieves active rows of one type, matching the type
// case-insensitively, optionally narrowed to a category
func (r *Repository) ListFilterOptionsByType(ctx context.Context, optionType string, category string) ([]models.FilterOption, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ? AND option_type = ?", true, strings.ToUpper(optionType))

	if category != "" {
		query = query.Where("UPPER(category) = ?", strings.ToUpper(category))
	}

	var rows []models.FilterOption
	if err := query.Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertFilterOptions inserts rows keyed by (type, value, category),
// refreshing label, order, activity and metadata of rows that already exist
func (r *Repository) UpsertFilterOptions(ctx context.Context, rows []models.FilterOption) error {
	if len(rows) == 0 {
		return nil
	}

	batch := make([]models.FilterOption, len(rows))
	for i, row := range rows {
		row.ID = 0
		batch[i] = row
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "option_type"},
			{Name: "value"},
			{Name: "category"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"label", "sort_order", "is_active", "metadata"}),
	}).CreateInBatches(batch, 100).Error
}
