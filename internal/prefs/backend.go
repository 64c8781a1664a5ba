package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"myground/internal/models"
)

// RemoteAPI is the preference part of the listing API client
type RemoteAPI interface {
	GetPreferences(ctx context.Context) (*models.UserPreference, error)
	UpdatePreferences(ctx context.Context, req models.UpdatePreferenceRequest) (*models.UserPreference, error)
}

// RemoteBackend stores preferences through the listing API
type RemoteBackend struct {
	api RemoteAPI
}

func NewRemoteBackend(api RemoteAPI) *RemoteBackend {
	return &RemoteBackend{api: api}
}

func (b *RemoteBackend) Load(ctx context.Context) (*models.UserPreference, error) {
	return b.api.GetPreferences(ctx)
}

func (b *RemoteBackend) Save(ctx context.Context, pref models.UserPreference) (*models.UserPreference, error) {
	loc := pref.Location
	return b.api.UpdatePreferences(ctx, models.UpdatePreferenceRequest{
		Location: &loc,
		Currency: &pref.Currency,
		Language: &pref.Language,
	})
}

// FileBackend stores preferences in a yaml file. A missing file loads defaults.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load(_ context.Context) (*models.UserPreference, error) {
	pref := models.DefaultPreference(0)

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &pref, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &pref); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", b.path, err)
	}
	return &pref, nil
}

func (b *FileBackend) Save(_ context.Context, pref models.UserPreference) (*models.UserPreference, error) {
	data, err := yaml.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}

	// Write then rename so a crash never leaves half a file
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return nil, fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return nil, fmt.Errorf("replace preferences: %w", err)
	}
	return &pref, nil
}
