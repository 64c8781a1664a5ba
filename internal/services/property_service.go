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

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PropertyService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewPropertyService(repo *repository.Repository, log *zap.Logger) *PropertyService {
	return &PropertyService{repo: repo, log: log, now: time.Now}
}

// Create stores a validated form as a new DRAFT property of the user
func (s *PropertyService) Create(ctx context.Context, userID uint, form models.PropertyForm) (*models.Property, error) {
	if err := validation.ValidateSubmission(form); err != nil {
		return nil, err
	}

	property := &models.Property{
		ID:      uuid.New(),
		OwnerID: userID,
		Status:  models.PropertyStatusDraft,
	}
	property.ApplyForm(form)
	property.AssetDNA = ComputeAssetDNA(form, s.now())

	if err := s.repo.CreateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.log.Info("property created",
		zap.String("property_id", property.ID.String()),
		zap.Uint("user_id", userID),
		zap.Int("trust_score", property.AssetDNA.TrustScore),
	)
	return property, nil
}

// Update replaces the form of an owned property
func (s *PropertyService) Update(
	ctx context.Context,
	userID uint,
	id uuid.UUID,
	form models.PropertyForm,
) (*models.Property, error) {
	property, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateSubmission(form); err != nil {
		return nil, err
	}

	property.ApplyForm(form)
	property.AssetDNA = ComputeAssetDNA(form, s.now())

	if err := s.repo.UpdateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return property, nil
}

// Submit moves an owned DRAFT property to APPROVED. When draftID is given the
// originating draft is removed afterwards; failing to remove it is only logged.
func (s *PropertyService) Submit(
	ctx context.Context,
	userID uint,
	id uuid.UUID,
	draftID *uuid.UUID,
) (*models.Property, error) {
	property, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if property.Status != models.PropertyStatusDraft {
		metrics.PropertySubmissions.WithLabelValues(metrics.ResultInvalidStatus).Inc()
		return nil, ErrInvalidStatus
	}

	form := property.Form()
	if err := validation.ValidateSubmission(form); err != nil {
		return nil, err
	}

	now := s.now()
	property.Status = models.PropertyStatusApproved
	property.SubmittedAt = &now
	property.AssetDNA = ComputeAssetDNA(form, now)

	if err := s.repo.UpdateProperty(ctx, property); err != nil {
		metrics.PropertySubmissions.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("failed to submit property: %w", err)
	}
	metrics.PropertySubmissions.WithLabelValues(metrics.ResultApproved).Inc()

	if draftID != nil {
		deleted, err := s.repo.DeleteDraft(ctx, *draftID, userID)
		if err != nil {
			s.log.Warn("failed to delete draft after submission",
				zap.String("draft_id", draftID.String()),
				zap.String("property_id", property.ID.String()),
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		} else if deleted {
			metrics.DraftsDiscarded.Inc()
		}
	}

	return property, nil
}

// Get retrieves a property. Only APPROVED properties are visible to users
// other than the owner; viewerID 0 is an anonymous viewer.
func (s *PropertyService) Get(ctx context.Context, viewerID uint, id uuid.UUID) (*models.Property, error) {
	property, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.Status != models.PropertyStatusApproved && (viewerID == 0 || property.OwnerID != viewerID) {
		return nil, ErrPropertyNotFound
	}
	return property, nil
}

// List searches APPROVED properties
func (s *PropertyService) List(
	ctx context.Context,
	filter models.PropertyFilter,
	limit int,
	offset int,
) ([]*models.Property, int64, error) {
	limit, offset = ClampPage(limit, offset)
	filter.Status = models.PropertyStatusApproved

	properties, total, err := s.repo.ListProperties(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, total, nil
}

// ClampPage applies the default and maximum page size and a non-negative offset
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListMine retrieves every property of the user
func (s *PropertyService) ListMine(ctx context.Context, userID uint) ([]*models.Property, error) {
	properties, err := s.repo.ListPropertiesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// Delete removes an owned property
func (s *PropertyService) Delete(ctx context.Context, userID uint, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProperty(ctx, id); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func (s *PropertyService) find(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property, err := s.repo.GetProperty(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) owned(ctx context.Context, userID uint, id uuid.UUID) (*models.Property, error) {
	property, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != userID {
		return nil, ErrForbidden
	}
	return property, nil
}
