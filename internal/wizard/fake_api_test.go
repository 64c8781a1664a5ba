package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"myground/internal/client"
	"myground/internal/models"
)

// fakeAPI is an in-memory listing API that records every call
type fakeAPI struct {
	mu         sync.Mutex
	drafts     map[uuid.UUID]models.Draft
	properties map[uuid.UUID]models.Property
	calls      map[string]int
	saves      []models.SaveDraftRequest

	submitErr error
	createErr error
	filters   *models.GroupedFilterOptions
	filterErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		drafts:     map[uuid.UUID]models.Draft{},
		properties: map[uuid.UUID]models.Property{},
		calls:      map[string]int{},
	}
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) lastSave() models.SaveDraftRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func (f *fakeAPI) GetDraft(_ context.Context, id uuid.UUID) (*models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetDraft"]++
	d, ok := f.drafts[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &d, nil
}

func (f *fakeAPI) CreateDraft(_ context.Context, req models.SaveDraftRequest) (*models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateDraft"]++
	f.saves = append(f.saves, req)
	d := models.Draft{ID: uuid.New(), Payload: req.Payload, CurrentStep: req.CurrentStep, PropertyID: req.PropertyID}
	f.drafts[d.ID] = d
	return &d, nil
}

func (f *fakeAPI) UpdateDraft(_ context.Context, id uuid.UUID, req models.SaveDraftRequest) (*models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateDraft"]++
	if _, ok := f.drafts[id]; !ok {
		return nil, client.ErrNotFound
	}
	f.saves = append(f.saves, req)
	d := models.Draft{ID: id, Payload: req.Payload, CurrentStep: req.CurrentStep, PropertyID: req.PropertyID}
	f.drafts[id] = d
	return &d, nil
}

func (f *fakeAPI) CreateProperty(_ context.Context, form models.PropertyForm) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateProperty"]++
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := models.Property{ID: uuid.New(), Status: models.PropertyStatusDraft}
	p.ApplyForm(form)
	f.properties[p.ID] = p
	return &p, nil
}

func (f *fakeAPI) UpdateProperty(_ context.Context, id uuid.UUID, form models.PropertyForm) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateProperty"]++
	p, ok := f.properties[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	p.ApplyForm(form)
	f.properties[id] = p
	return &p, nil
}

func (f *fakeAPI) SubmitProperty(_ context.Context, id uuid.UUID, draftID *uuid.UUID) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["SubmitProperty"]++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	p, ok := f.properties[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	if p.Status != models.PropertyStatusDraft {
		return nil, errors.New("not a draft")
	}
	p.Status = models.PropertyStatusApproved
	f.properties[id] = p
	if draftID != nil {
		delete(f.drafts, *draftID)
	}
	return &p, nil
}

func (f *fakeAPI) GetFilterOptions(_ context.Context) (*models.GroupedFilterOptions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetFilterOptions"]++
	return f.filters, f.filterErr
}
