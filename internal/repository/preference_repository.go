package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"myground/internal/models"
)

// GetPreference retrieves the saved preference of a user
func (r *Repository) GetPreference(ctx context.Context, userID uint) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return nil, translate(err)
	}
	return &pref, nil
}

// SavePreference inserts or replaces the preference of a user
func (r *Repository) SavePreference(ctx context.Context, pref *models.UserPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"location", "currency", "language", "updated_at"}),
	}).Create(pref).Error
}
