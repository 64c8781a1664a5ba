package models

type FilterOptionType string

const (
	OptionTransactionType  FilterOptionType = "TRANSACTION_TYPE"
	OptionPropertyCategory FilterOptionType = "PROPERTY_CATEGORY"
	OptionPropertySubType  FilterOptionType = "PROPERTY_SUBTYPE"
	OptionOwnershipType    FilterOptionType = "OWNERSHIP_TYPE"
	OptionPossessionStatus FilterOptionType = "POSSESSION_STATUS"
	OptionFurnishingType   FilterOptionType = "FURNISHING_TYPE"
	OptionParkingType      FilterOptionType = "PARKING_TYPE"
	OptionAreaUnit         FilterOptionType = "AREA_UNIT"
	OptionBHK              FilterOptionType = "BHK_OPTION"
)

// FilterOption is one flat taxonomy row. Category is only used by PROPERTY_SUBTYPE rows.
type FilterOption struct {
	ID         uint                   `gorm:"primaryKey" json:"-"`
	OptionType FilterOptionType       `gorm:"size:40;not null;uniqueIndex:idx_filter_option_key" json:"optionType" yaml:"optionType"`
	Value      string                 `gorm:"size:120;not null;uniqueIndex:idx_filter_option_key" json:"value" yaml:"value"`
	Label      string                 `gorm:"size:200;not null" json:"label" yaml:"label"`
	Category   string                 `gorm:"size:40;not null;default:'';uniqueIndex:idx_filter_option_key" json:"category,omitempty" yaml:"category,omitempty"`
	SortOrder  int                    `gorm:"not null;default:0" json:"order" yaml:"order"`
	IsActive   bool                   `gorm:"not null;index" json:"isActive" yaml:"isActive"`
	Metadata   map[string]interface{} `gorm:"serializer:json" json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func (FilterOption) TableName() string {
	return "filter_options"
}

// OptionItem is a {value,label} pair for flat filter lists
type OptionItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionProjection is the single-type listing shape
type OptionProjection struct {
	Value    string                 `json:"value"`
	Label    string                 `json:"label"`
	Category string                 `json:"category,omitempty"`
	Order    int                    `json:"order"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GroupedFilterOptions is the aggregated shape the filter panels consume
type GroupedFilterOptions struct {
	TransactionTypes   []OptionItem        `json:"transactionTypes"`
	PropertyCategories []OptionItem        `json:"propertyCategories"`
	PropertySubTypes   map[string][]string `json:"propertySubTypes"`
	OwnershipTypes     []OptionItem        `json:"ownershipTypes"`
	PossessionStatuses []OptionItem        `json:"possessionStatuses"`
	FurnishingTypes    []OptionItem        `json:"furnishingTypes"`
	ParkingTypes       []OptionItem        `json:"parkingTypes"`
	AreaUnits          []OptionItem        `json:"areaUnits"`
	BHKOptions         []int               `json:"bhkOptions"`
	Source             string              `json:"source"` // "store" or "defaults"
}
