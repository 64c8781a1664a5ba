package models

import (
	"time"

	"github.com/google/uuid"
)

// Draft is an owner-private, in-progress listing saved by the wizard
type Draft struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uint         `gorm:"not null;index" json:"ownerId"`
	Payload     PropertyForm `gorm:"serializer:json;type:text" json:"payload"`
	CurrentStep int          `gorm:"not null;default:0" json:"currentStep"`
	PropertyID  *uuid.UUID   `gorm:"type:uuid" json:"propertyId,omitempty"`
	LastSaved   time.Time    `gorm:"not null;index" json:"lastSaved"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (Draft) TableName() string {
	return "drafts"
}

// HasMeaningfulData reports whether a form is worth persisting as a draft:
// at least one of title, city, a price or description is filled in.
func (f PropertyForm) HasMeaningfulData() bool {
	return f.Title != "" ||
		f.Location.City != "" ||
		f.Pricing.HasAnyPrice() ||
		f.Description != ""
}

// Clone returns a deep copy of the form. Detail blocks and slices are not
// shared with the original.
func (f PropertyForm) Clone() PropertyForm {
	out := f
	if f.Residential != nil {
		r := *f.Residential
		out.Residential = &r
	}
	if f.Commercial != nil {
		c := *f.Commercial
		out.Commercial = &c
	}
	if f.Land != nil {
		l := *f.Land
		out.Land = &l
	}
	out.Media.Images = cloneStrings(f.Media.Images)
	out.Media.Videos = cloneStrings(f.Media.Videos)
	out.Media.FloorPlans = cloneStrings(f.Media.FloorPlans)
	out.Amenities = cloneStrings(f.Amenities)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
