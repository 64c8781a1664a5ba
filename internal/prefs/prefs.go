// Package prefs keeps the location, currency and language a user browses with.
// State lives in a Container and crosses a Backend on load and on every change.
package prefs

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"myground/internal/models"
)

var ErrNotLoaded = errors.New("preferences not loaded")

// Backend persists preferences
type Backend interface {
	Load(ctx context.Context) (*models.UserPreference, error)
	Save(ctx context.Context, pref models.UserPreference) (*models.UserPreference, error)
}

// Container holds the current preferences. Changes are saved before they are
// applied, so a failed save leaves the previous value in place.
type Container struct {
	backend Backend
	log     *zap.Logger

	mu     sync.RWMutex
	pref   models.UserPreference
	loaded bool

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(models.UserPreference)
}

func NewContainer(backend Backend, log *zap.Logger) *Container {
	if log == nil {
		log = zap.NewNop()
	}
	return &Container{
		backend: backend,
		log:     log,
		pref:    models.DefaultPreference(0),
		subs:    map[int]func(models.UserPreference){},
	}
}

// Load replaces the current preferences with the stored ones
func (c *Container) Load(ctx context.Context) error {
	pref, err := c.backend.Load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.pref = *pref
	c.loaded = true
	c.mu.Unlock()

	c.notify(*pref)
	return nil
}

// Get returns the current preferences, defaults before Load
func (c *Container) Get() models.UserPreference {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pref
}

func (c *Container) SetLocation(ctx context.Context, loc models.PreferenceLocation) error {
	return c.set(ctx, func(p *models.UserPreference) { p.Location = loc })
}

func (c *Container) SetCurrency(ctx context.Context, currency string) error {
	return c.set(ctx, func(p *models.UserPreference) { p.Currency = strings.ToUpper(strings.TrimSpace(currency)) })
}

func (c *Container) SetLanguage(ctx context.Context, language string) error {
	return c.set(ctx, func(p *models.UserPreference) { p.Language = strings.TrimSpace(language) })
}

// Subscribe registers fn for every change and returns a func that removes it
func (c *Container) Subscribe(fn func(models.UserPreference)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Container) set(ctx context.Context, mutate func(*models.UserPreference)) error {
	c.mu.RLock()
	if !c.loaded {
		c.mu.RUnlock()
		return ErrNotLoaded
	}
	next := c.pref
	c.mu.RUnlock()

	mutate(&next)
	saved, err := c.backend.Save(ctx, next)
	if err != nil {
		c.log.Warn("failed to save preferences", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.pref = *saved
	c.mu.Unlock()

	c.notify(*saved)
	return nil
}

func (c *Container) notify(pref models.UserPreference) {
	c.subMu.Lock()
	subs := make([]func(models.UserPreference), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	for _, fn := range subs {
		fn(pref)
	}
}
