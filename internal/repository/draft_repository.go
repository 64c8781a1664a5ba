package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"myground/internal/models"
)

// CreateDraft inserts a new draft
func (r *Repository) CreateDraft(ctx context.Context, draft *models.Draft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

// GetDraft retrieves a draft owned by ownerID
func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID, ownerID uint) (*models.Draft, error) {
	var draft models.Draft
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&draft).Error
	if err != nil {
		return nil, translate(err)
	}
	return &draft, nil
}

// ListDrafts retrieves the owner's drafts, most recently saved first
func (r *Repository) ListDrafts(ctx context.Context, ownerID uint) ([]*models.Draft, error) {
	var drafts []*models.Draft
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("last_saved DESC").
		Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

// UpdateDraft overwrites payload, step and save time of an owned draft.
// There is no version check: the last write wins.
func (r *Repository) UpdateDraft(ctx context.Context, draft *models.Draft) error {
	result := r.db.WithContext(ctx).
		Model(&models.Draft{}).
		Where("id = ? AND owner_id = ?", draft.ID, draft.OwnerID).
		Select("payload", "current_step", "property_id", "last_saved", "updated_at").
		Updates(draft)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDraft removes an owned draft and reports whether a row was removed
func (r *Repository) DeleteDraft(ctx context.Context, id uuid.UUID, ownerID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Draft{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteDraftsSavedBefore removes every draft last saved before cutoff
func (r *Repository) DeleteDraftsSavedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("last_saved < ?", cutoff).
		Delete(&models.Draft{})
	return result.RowsAffected, result.Error
}
