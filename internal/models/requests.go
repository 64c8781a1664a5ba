package models

import "github.com/google/uuid"

// SaveDraftRequest is the body of POST /api/drafts and PUT /api/drafts/:id
type SaveDraftRequest struct {
	Payload     PropertyForm `json:"payload"`
	CurrentStep int          `json:"currentStep" binding:"min=0"`
	PropertyID  *uuid.UUID   `json:"propertyId,omitempty"`
}

// SubmitPropertyRequest is the body of POST /api/properties/:id/submit
type SubmitPropertyRequest struct {
	DraftID *uuid.UUID `json:"draftId"`
}

// UpdatePreferenceRequest patches a user's preferences. Nil fields are left unchanged.
type UpdatePreferenceRequest struct {
	Location *PreferenceLocation `json:"location"`
	Currency *string             `json:"currency"`
	Language *string             `json:"language"`
}
