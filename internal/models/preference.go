package models

import "time"

// PreferenceLocation is the user's chosen browsing location
type PreferenceLocation struct {
	Country     string   `json:"country" yaml:"country"`
	State       string   `json:"state" yaml:"state"`
	City        string   `json:"city" yaml:"city"`
	Coordinates GeoPoint `json:"coordinates" yaml:"coordinates"`
}

// UserPreference holds per-user location, currency and language settings
type UserPreference struct {
	UserID    uint               `gorm:"primaryKey;autoIncrement:false" json:"userId" yaml:"-"`
	Location  PreferenceLocation `gorm:"serializer:json" json:"location" yaml:"location"`
	Currency  string             `gorm:"size:3;not null;default:INR" json:"currency" yaml:"currency"`
	Language  string             `gorm:"size:5;not null;default:en" json:"language" yaml:"language"`
	UpdatedAt time.Time          `json:"updatedAt" yaml:"-"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

const (
	DefaultCurrency = "INR"
	DefaultLanguage = "en"
)

// DefaultPreference returns the preference used when a user has not saved one
func DefaultPreference(userID uint) UserPreference {
	return UserPreference{
		UserID:   userID,
		Location: PreferenceLocation{Country: "India"},
		Currency: DefaultCurrency,
		Language: DefaultLanguage,
	}
}
