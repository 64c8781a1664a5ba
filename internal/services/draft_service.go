package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"myground/internal/metrics"
	"myground/internal/models"
	"myground/internal/repository"
	"myground/internal/validation"
)

type DraftService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewDraftService(repo *repository.Repository, log *zap.Logger) *DraftService {
	return &DraftService{repo: repo, log: log, now: time.Now}
}

// LoadDraft retrieves a draft of the user. Drafts of other users are reported as missing.
func (s *DraftService) LoadDraft(ctx context.Context, userID uint, id uuid.UUID) (*models.Draft, error) {
	draft, err := s.repo.GetDraft(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return draft, nil
}

// ListDrafts retrieves the user's drafts, most recently saved first
func (s *DraftService) ListDrafts(ctx context.Context, userID uint) ([]*models.Draft, error) {
	drafts, err := s.repo.ListDrafts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// SaveDraft creates a draft when id is nil and overwrites the draft otherwise.
// The last write wins.
func (s *DraftService) SaveDraft(
	ctx context.Context,
	userID uint,
	id *uuid.UUID,
	req models.SaveDraftRequest,
) (*models.Draft, error) {
	if !req.Payload.HasMeaningfulData() {
		return nil, ErrEmptyDraft
	}

	step := clampStep(req.CurrentStep)
	now := s.now()

	if id == nil {
		draft := &models.Draft{
			ID:          uuid.New(),
			OwnerID:     userID,
			Payload:     req.Payload,
			CurrentStep: step,
			PropertyID:  req.PropertyID,
			LastSaved:   now,
		}
		if err := s.repo.CreateDraft(ctx, draft); err != nil {
			return nil, fmt.Errorf("failed to create draft: %w", err)
		}
		metrics.DraftsSaved.WithLabelValues(metrics.OpCreate).Inc()
		return draft, nil
	}

	draft, err := s.LoadDraft(ctx, userID, *id)
	if err != nil {
		return nil, err
	}

	draft.Payload = req.Payload
	draft.CurrentStep = step
	draft.LastSaved = now
	draft.UpdatedAt = now
	if req.PropertyID != nil {
		draft.PropertyID = req.PropertyID
	}

	err = s.repo.UpdateDraft(ctx, draft)
	if errors.Is(err, repository.ErrNotFound) {
		// Discarded between the read and the write
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}

	metrics.DraftsSaved.WithLabelValues(metrics.OpUpdate).Inc()
	return draft, nil
}

// DiscardDraft deletes a draft. A draft that is already gone is not an error.
func (s *DraftService) DiscardDraft(ctx context.Context, userID uint, id uuid.UUID) error {
	deleted, err := s.repo.DeleteDraft(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to discard draft: %w", err)
	}
	if deleted {
		metrics.DraftsDiscarded.Inc()
	}
	return nil
}

// PurgeSavedBefore deletes every draft not saved since cutoff
func (s *DraftService) PurgeSavedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.repo.DeleteDraftsSavedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge drafts: %w", err)
	}
	return n, nil
}

func clampStep(step int) int {
	if step < 0 {
		return 0
	}
	if step > validation.FinalStep {
		return validation.FinalStep
	}
	return step
}
