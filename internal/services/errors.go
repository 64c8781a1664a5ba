package services

import "errors"

var (
	ErrDraftNotFound     = errors.New("draft not found")
	ErrEmptyDraft        = errors.New("draft has no meaningful data to save")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrForbidden         = errors.New("property belongs to another user")
	ErrInvalidStatus     = errors.New("property is not in DRAFT status")
	ErrInvalidPreference = errors.New("invalid preference")
)
