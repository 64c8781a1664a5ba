package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionSell       TransactionType = "SELL"
	TransactionRent       TransactionType = "RENT"
	TransactionLease      TransactionType = "LEASE"
	TransactionSubLease   TransactionType = "SUB_LEASE"
	TransactionFractional TransactionType = "FRACTIONAL"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionSell, TransactionRent, TransactionLease, TransactionSubLease, TransactionFractional:
		return true
	}
	return false
}

type PropertyCategory string

const (
	CategoryResidential PropertyCategory = "RESIDENTIAL"
	CategoryCommercial  PropertyCategory = "COMMERCIAL"
	CategoryIndustrial  PropertyCategory = "INDUSTRIAL"
	CategoryLand        PropertyCategory = "LAND"
	CategorySpecial     PropertyCategory = "SPECIAL"
	CategoryIsland      PropertyCategory = "ISLAND"
)

// Valid reports whether c is one of the known property categories
func (c PropertyCategory) Valid() bool {
	switch c {
	case CategoryResidential, CategoryCommercial, CategoryIndustrial, CategoryLand, CategorySpecial, CategoryIsland:
		return true
	}
	return false
}

type LitigationStatus string

const (
	LitigationNone     LitigationStatus = "NONE"
	LitigationPending  LitigationStatus = "PENDING"
	LitigationResolved LitigationStatus = "RESOLVED"
)

type PropertyStatus string

const (
	PropertyStatusDraft    PropertyStatus = "DRAFT"
	PropertyStatusApproved PropertyStatus = "APPROVED"
	PropertyStatusArchived PropertyStatus = "ARCHIVED"
)

type LegalRisk string

const (
	LegalRiskLow    LegalRisk = "LOW"
	LegalRiskMedium LegalRisk = "MEDIUM"
	LegalRiskHigh   LegalRisk = "HIGH"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds a point from longitude and latitude
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// IsSet reports whether the point holds a real location. (0,0) means unset.
func (p GeoPoint) IsSet() bool {
	return p.Coordinates[0] != 0 || p.Coordinates[1] != 0
}

type Location struct {
	Country     string   `json:"country"`
	State       string   `json:"state"`
	City        string   `json:"city"`
	Area        string   `json:"area"`
	Locality    string   `json:"locality"`
	Pincode     string   `json:"pincode"`
	Address     string   `json:"address,omitempty"`
	Coordinates GeoPoint `json:"coordinates"`
}

type ResidentialDetails struct {
	BHK         int             `json:"bhk"`
	Bathrooms   int             `json:"bathrooms"`
	Balconies   int             `json:"balconies"`
	BuiltUpArea decimal.Decimal `json:"builtUpArea"`
	CarpetArea  decimal.Decimal `json:"carpetArea"`
	AreaUnit    string          `json:"areaUnit"`
	Furnishing  string          `json:"furnishing"`
	FloorNumber int             `json:"floorNumber"`
	TotalFloors int             `json:"totalFloors"`
	Parking     string          `json:"parking"`
}

type CommercialDetails struct {
	BuiltUpArea decimal.Decimal `json:"builtUpArea"`
	AreaUnit    string          `json:"areaUnit"`
	FloorNumber int             `json:"floorNumber"`
	TotalFloors int             `json:"totalFloors"`
	Washrooms   int             `json:"washrooms"`
	Parking     string          `json:"parking"`
	Furnishing  string          `json:"furnishing"`
}

type LandDetails struct {
	PlotArea     decimal.Decimal `json:"plotArea"`
	AreaUnit     string          `json:"areaUnit"`
	Length       decimal.Decimal `json:"length"`
	Width        decimal.Decimal `json:"width"`
	Facing       string          `json:"facing"`
	BoundaryWall bool            `json:"boundaryWall"`
}

type Pricing struct {
	ExpectedPrice   decimal.Decimal `json:"expectedPrice"`
	RentAmount      decimal.Decimal `json:"rentAmount"`
	LeaseValue      decimal.Decimal `json:"leaseValue"`
	SecurityDeposit decimal.Decimal `json:"securityDeposit"`
	Maintenance     decimal.Decimal `json:"maintenance"`
	Negotiable      bool            `json:"negotiable"`
	Currency        string          `json:"currency"`
}

// HasAnyPrice reports whether any of the transaction prices is filled in
func (p Pricing) HasAnyPrice() bool {
	return !p.ExpectedPrice.IsZero() || !p.RentAmount.IsZero() || !p.LeaseValue.IsZero()
}

type Media struct {
	Images     []string `json:"images"`
	Videos     []string `json:"videos,omitempty"`
	FloorPlans []string `json:"floorPlans,omitempty"`
}

type Legal struct {
	OwnershipType    string           `json:"ownershipType"`
	TitleClear       bool             `json:"titleClear"`
	EncumbranceFree  bool             `json:"encumbranceFree"`
	LitigationStatus LitigationStatus `json:"litigationStatus"`
	ReraNumber       string           `json:"reraNumber,omitempty"`
}

// AssetDNA is derived from the rest of the listing and never set by clients.
type AssetDNA struct {
	VerificationScore int       `json:"verificationScore"`
	LegalRisk         LegalRisk `json:"legalRisk"`
	TrustScore        int       `json:"trustScore"`
	ComputedAt        time.Time `json:"computedAt"`
}

// PropertyForm is the wizard document. Drafts store it partially filled,
// properties store it complete.
type PropertyForm struct {
	TransactionType  TransactionType     `json:"transactionType"`
	PropertyCategory PropertyCategory    `json:"propertyCategory"`
	PropertySubType  string              `json:"propertySubType"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Location         Location            `json:"location"`
	Residential      *ResidentialDetails `json:"residential,omitempty"`
	Commercial       *CommercialDetails  `json:"commercial,omitempty"`
	Land             *LandDetails        `json:"land,omitempty"`
	Pricing          Pricing             `json:"pricing"`
	Media            Media               `json:"media"`
	Legal            Legal               `json:"legal"`
	PossessionStatus string              `json:"possessionStatus,omitempty"`
	Amenities        []string            `json:"amenities,omitempty"`
}

// Property is a listing. The form blocks are stored as json columns, the
// fields used for search are real columns.
type Property struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uint                `gorm:"not null;index" json:"ownerId"`
	TransactionType  TransactionType     `gorm:"size:20;not null;index" json:"transactionType"`
	PropertyCategory PropertyCategory    `gorm:"size:20;not null;index" json:"propertyCategory"`
	PropertySubType  string              `gorm:"size:100" json:"propertySubType"`
	Title            string              `gorm:"size:300;not null" json:"title"`
	Description      string              `gorm:"type:text" json:"description"`
	City             string              `gorm:"size:120;index" json:"city"`
	State            string              `gorm:"size:120;index" json:"state"`
	Price            decimal.Decimal     `gorm:"type:decimal(18,2);index" json:"price"`
	Location         Location            `gorm:"serializer:json" json:"location"`
	Residential      *ResidentialDetails `gorm:"serializer:json" json:"residential,omitempty"`
	Commercial       *CommercialDetails  `gorm:"serializer:json" json:"commercial,omitempty"`
	Land             *LandDetails        `gorm:"serializer:json" json:"land,omitempty"`
	Pricing          Pricing             `gorm:"serializer:json" json:"pricing"`
	Media            Media               `gorm:"serializer:json" json:"media"`
	Legal            Legal               `gorm:"serializer:json" json:"legal"`
	PossessionStatus string              `gorm:"size:50" json:"possessionStatus,omitempty"`
	Amenities        []string            `gorm:"serializer:json" json:"amenities,omitempty"`
	AssetDNA         AssetDNA            `gorm:"serializer:json" json:"assetDna"`
	Status           PropertyStatus      `gorm:"size:20;not null;default:DRAFT;index" json:"status"`
	SubmittedAt      *time.Time          `json:"submittedAt,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

func (Property) TableName() string {
	return "properties"
}

// ApplyForm copies the form onto the property, including the search columns
func (p *Property) ApplyForm(form PropertyForm) {
	p.TransactionType = form.TransactionType
	p.PropertyCategory = form.PropertyCategory
	p.PropertySubType = form.PropertySubType
	p.Title = form.Title
	p.Description = form.Description
	p.City = form.Location.City
	p.State = form.Location.State
	p.Price = form.Pricing.Primary(form.TransactionType)
	p.Location = form.Location
	p.Residential = form.Residential
	p.Commercial = form.Commercial
	p.Land = form.Land
	p.Pricing = form.Pricing
	p.Media = form.Media
	p.Legal = form.Legal
	p.PossessionStatus = form.PossessionStatus
	p.Amenities = form.Amenities
}

// Form returns the wizard document held by the property
func (p *Property) Form() PropertyForm {
	return PropertyForm{
		TransactionType:  p.TransactionType,
		PropertyCategory: p.PropertyCategory,
		PropertySubType:  p.PropertySubType,
		Title:            p.Title,
		Description:      p.Description,
		Location:         p.Location,
		Residential:      p.Residential,
		Commercial:       p.Commercial,
		Land:             p.Land,
		Pricing:          p.Pricing,
		Media:            p.Media,
		Legal:            p.Legal,
		PossessionStatus: p.PossessionStatus,
		Amenities:        p.Amenities,
	}
}

// Primary returns the price that applies to the transaction type
func (p Pricing) Primary(t TransactionType) decimal.Decimal {
	switch t {
	case TransactionRent, TransactionSubLease:
		return p.RentAmount
	case TransactionLease:
		return p.LeaseValue
	default:
		return p.ExpectedPrice
	}
}

// PropertyFilter narrows public listing searches
type PropertyFilter struct {
	TransactionType  TransactionType
	PropertyCategory PropertyCategory
	PropertySubType  string
	City             string
	State            string
	MinPrice         *decimal.Decimal
	MaxPrice         *decimal.Decimal
	Status           PropertyStatus
}
