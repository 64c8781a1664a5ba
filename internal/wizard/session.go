// Package wizard drives one listing wizard: it restores drafts, saves them
// in the background, gates step changes on validation and publishes the
// finished form.
package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"myground/internal/client"
	"myground/internal/models"
	"myground/internal/validation"
)

const (
	DefaultDebounceDelay = 12 * time.Second
	DefaultUnloadTimeout = 3 * time.Second
)

type State string

const (
	StateEditing    State = "EDITING"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StatePublished  State = "PUBLISHED"
)

var (
	ErrBusy          = errors.New("wizard is validating or submitting")
	ErrPublished     = errors.New("listing is already published")
	ErrFinalStep     = errors.New("already on the final step, submit instead")
	ErrDraftNotFound = errors.New("draft not found")
)

// API is the part of the listing API a wizard session uses
type API interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	CreateDraft(ctx context.Context, req models.SaveDraftRequest) (*models.Draft, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, req models.SaveDraftRequest) (*models.Draft, error)
	CreateProperty(ctx context.Context, form models.PropertyForm) (*models.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, form models.PropertyForm) (*models.Property, error)
	SubmitProperty(ctx context.Context, id uuid.UUID, draftID *uuid.UUID) (*models.Property, error)
}

type Options struct {
	// DebounceDelay is the quiet period before a background save
	DebounceDelay time.Duration
	// UnloadTimeout bounds the save attempted by Close
	UnloadTimeout time.Duration
	// OnRestore is called once for every draft restored by Resume
	OnRestore func(models.Draft)
	Logger    *zap.Logger
}

// Result describes a finished submission. Pending means the property was
// stored but the publish transition failed, so it is still a DRAFT.
type Result struct {
	Property *models.Property
	Pending  bool
}

type Session struct {
	api       API
	opts      Options
	log       *zap.Logger
	debouncer *Debouncer

	mu            sync.Mutex
	form          models.PropertyForm
	step          int
	state         State
	draftID       *uuid.UUID
	propertyID    *uuid.UUID
	revision      uint64
	savedRevision uint64
	savedStep     int
	restored      map[uuid.UUID]bool

	// saveMu keeps at most one save in flight
	saveMu sync.Mutex
}

func NewSession(api API, opts Options) *Session {
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = DefaultDebounceDelay
	}
	if opts.UnloadTimeout <= 0 {
		opts.UnloadTimeout = DefaultUnloadTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Session{
		api:       api,
		opts:      opts,
		log:       log,
		debouncer: NewDebouncer(opts.DebounceDelay),
		state:     StateEditing,
		restored:  map[uuid.UUID]bool{},
	}
}

// Resume restores a saved draft into the session. A missing draft returns
// ErrDraftNotFound and leaves the session untouched.
func (s *Session) Resume(ctx context.Context, draftID uuid.UUID) error {
	draft, err := s.api.GetDraft(ctx, draftID)
	if errors.Is(err, client.ErrNotFound) {
		return ErrDraftNotFound
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.form = draft.Payload.Clone()
	s.step = clampStep(draft.CurrentStep)
	s.state = StateEditing
	id := draft.ID
	s.draftID = &id
	s.propertyID = copyID(draft.PropertyID)
	s.savedRevision = s.revision
	s.savedStep = s.step
	first := !s.restored[id]
	s.restored[id] = true
	s.mu.Unlock()

	if first && s.opts.OnRestore != nil {
		s.opts.OnRestore(*draft)
	}
	return nil
}

// Update applies a form change and schedules a background save
func (s *Session) Update(mutate func(*models.PropertyForm)) {
	s.mu.Lock()
	mutate(&s.form)
	s.revision++
	s.mu.Unlock()

	s.debouncer.Schedule(s.silentSave)
}

// Next validates the current step and moves to the following one. Leaving
// any step but the first saves immediately.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateEditing {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.step >= validation.FinalStep {
		s.mu.Unlock()
		return ErrFinalStep
	}
	s.state = StateValidating
	step := s.step
	form := s.form.Clone()
	s.mu.Unlock()

	if err := validation.ValidateStep(step, form); err != nil {
		s.setState(StateEditing)
		return err
	}

	s.mu.Lock()
	s.step = step + 1
	s.state = StateEditing
	s.mu.Unlock()

	if step != validation.StepBasics {
		s.debouncer.Stop()
		s.silentSave(ctx)
	}
	return nil
}

// Back moves to the previous step without validating
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEditing && s.step > 0 {
		s.step--
	}
}

// SaveNow saves immediately and reports failures
func (s *Session) SaveNow(ctx context.Context) error {
	s.debouncer.Stop()
	return s.save(ctx)
}

// Close makes a last save attempt bounded by the unload timeout. A pending
// debounced save runs in its place. Failures are only logged.
func (s *Session) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.UnloadTimeout)
	defer cancel()

	if s.debouncer.Flush(ctx) {
		return
	}
	s.silentSave(ctx)
}

// Submit validates the whole form, stores it as a property and publishes it.
// Validation failures return *validation.Errors before any request is made.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	switch s.state {
	case StatePublished:
		s.mu.Unlock()
		return nil, ErrPublished
	case StateSubmitting, StateValidating:
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	s.debouncer.Stop()

	// A save already in flight finishes first. No save starts until the
	// listing is published or submission falls back to editing.
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	form := s.form.Clone()
	step := s.step
	propertyID := copyID(s.propertyID)
	draftID := copyID(s.draftID)
	s.mu.Unlock()

	if err := validation.ValidateSubmission(form); err != nil {
		s.setState(StateEditing)
		return nil, err
	}

	var property *models.Property
	var err error
	if propertyID == nil {
		property, err = s.api.CreateProperty(ctx, form)
	} else {
		property, err = s.api.UpdateProperty(ctx, *propertyID, form)
	}
	if err != nil {
		s.setState(StateEditing)
		return nil, err
	}

	s.mu.Lock()
	id := property.ID
	s.propertyID = &id
	s.mu.Unlock()

	published, err := s.api.SubmitProperty(ctx, property.ID, draftID)
	if err != nil {
		fields := []zap.Field{zap.String("property_id", property.ID.String()), zap.Error(err)}
		if draftID != nil {
			fields = append(fields, zap.String("draft_id", draftID.String()))
		}
		s.log.Warn("property saved but publishing failed", fields...)

		s.linkDraft(ctx, draftID, models.SaveDraftRequest{Payload: form, CurrentStep: step, PropertyID: &id})
		s.setState(StatePublished)
		return &Result{Property: property, Pending: true}, nil
	}

	s.mu.Lock()
	s.state = StatePublished
	s.draftID = nil
	s.mu.Unlock()

	return &Result{Property: published}, nil
}

// linkDraft stores the property id on the kept draft so resuming it updates
// the stored property instead of creating another one
func (s *Session) linkDraft(ctx context.Context, draftID *uuid.UUID, req models.SaveDraftRequest) {
	var draft *models.Draft
	var err error
	if draftID != nil {
		draft, err = s.api.UpdateDraft(ctx, *draftID, req)
	}
	if draftID == nil || errors.Is(err, client.ErrNotFound) {
		draft, err = s.api.CreateDraft(ctx, req)
	}
	if err != nil {
		s.log.Warn("failed to link draft to stored property",
			zap.String("property_id", req.PropertyID.String()), zap.Error(err))
		return
	}

	s.mu.Lock()
	id := draft.ID
	s.draftID = &id
	s.mu.Unlock()
}

func (s *Session) silentSave(ctx context.Context) {
	if err := s.save(ctx); err != nil {
		s.log.Warn("draft save failed", zap.Error(err))
	}
}

// save sends the latest form. It skips forms without meaningful data,
// revisions already saved and sessions that are publishing or published.
func (s *Session) save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.publishingLocked() {
		s.mu.Unlock()
		return nil
	}
	form := s.form.Clone()
	step := s.step
	revision := s.revision
	draftID := copyID(s.draftID)
	req := models.SaveDraftRequest{Payload: form, CurrentStep: step, PropertyID: copyID(s.propertyID)}
	upToDate := draftID != nil && revision == s.savedRevision && step == s.savedStep
	s.mu.Unlock()

	if upToDate || !form.HasMeaningfulData() {
		return nil
	}

	var draft *models.Draft
	var err error
	if draftID != nil {
		draft, err = s.api.UpdateDraft(ctx, *draftID, req)
		if errors.Is(err, client.ErrNotFound) {
			if s.publishing() {
				return nil
			}
			// Discarded elsewhere, start a new one
			draft, err = s.api.CreateDraft(ctx, req)
		}
	} else {
		draft, err = s.api.CreateDraft(ctx, req)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.publishingLocked() {
		return nil
	}
	id := draft.ID
	s.draftID = &id
	s.savedRevision = revision
	s.savedStep = step
	return nil
}

func (s *Session) publishing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishingLocked()
}

func (s *Session) publishingLocked() bool {
	return s.state == StateSubmitting || s.state == StatePublished
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Form returns a copy of the current form. Change it through Update.
func (s *Session) Form() models.PropertyForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// DraftID returns the id of the saved draft, nil before the first save
func (s *Session) DraftID() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyID(s.draftID)
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
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
