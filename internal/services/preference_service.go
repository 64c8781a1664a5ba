package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"myground/internal/models"
	"myground/internal/repository"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	languagePattern = regexp.MustCompile(`^[a-zA-Z]{2}(-[a-zA-Z]{2})?$`)
)

type PreferenceService struct {
	repo *repository.Repository
}

func NewPreferenceService(repo *repository.Repository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

// Get returns the user's preference, or the defaults when none was saved
func (s *PreferenceService) Get(ctx context.Context, userID uint) (*models.UserPreference, error) {
	pref, err := s.repo.GetPreference(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		def := models.DefaultPreference(userID)
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return pref, nil
}

// Update applies the non-nil fields of req to the user's preference
func (s *PreferenceService) Update(
	ctx context.Context,
	userID uint,
	req models.UpdatePreferenceRequest,
) (*models.UserPreference, error) {
	pref, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Location != nil {
		pref.Location = *req.Location
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if !currencyPattern.MatchString(currency) {
			return nil, fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidPreference)
		}
		pref.Currency = currency
	}
	if req.Language != nil {
		language := strings.TrimSpace(*req.Language)
		if !languagePattern.MatchString(language) {
			return nil, fmt.Errorf("%w: unsupported language tag %q", ErrInvalidPreference, language)
		}
		pref.Language = language
	}

	if err := s.repo.SavePreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("failed to save preference: %w", err)
	}
	return pref, nil
}
