package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myground/internal/models"
)

func TestPreferenceDefaults(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewPreferenceService(repo)

	pref, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCurrency, pref.Currency)
	assert.Equal(t, models.DefaultLanguage, pref.Language)
	assert.Equal(t, uint(5), pref.UserID)
}

func TestPreferenceUpdate(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	svc := NewPreferenceService(repo)

	currency := "usd"
	_, err := svc.Update(ctx, 5, models.UpdatePreferenceRequest{
		Currency: &currency,
		Location: &models.PreferenceLocation{Country: "India", State: "Goa", City: "Panaji"},
	})
	require.NoError(t, err)

	language := "hi-IN"
	pref, err := svc.Update(ctx, 5, models.UpdatePreferenceRequest{Language: &language})
	require.NoError(t, err)
	assert.Equal(t, "USD", pref.Currency)
	assert.Equal(t, "hi-IN", pref.Language)
	assert.Equal(t, "Panaji", pref.Location.City)

	stored, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "USD", stored.Currency)
	assert.Equal(t, "Panaji", stored.Location.City)
}

func TestPreferenceRejectsBadValues(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	svc := NewPreferenceService(repo)

	bad := "RUPEES"
	_, err := svc.Update(ctx, 5, models.UpdatePreferenceRequest{Currency: &bad})
	assert.ErrorIs(t, err, ErrInvalidPreference)

	lang := "english"
	_, err = svc.Update(ctx, 5, models.UpdatePreferenceRequest{Language: &lang})
	assert.ErrorIs(t, err, ErrInvalidPreference)
}
