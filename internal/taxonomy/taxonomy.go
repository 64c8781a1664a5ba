// Package taxonomy holds the default filter taxonomy. It is the only copy:
// the seed command writes it to the store and degraded reads on both the
// server and the wizard fall back to it.
package taxonomy

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"myground/internal/models"
)

//go:embed taxonomy.yaml
var rawTaxonomy []byte

// document mirrors taxonomy.yaml. Sub-types are keyed by parent category.
type document struct {
	TransactionTypes   []entry             `yaml:"TRANSACTION_TYPE"`
	PropertyCategories []entry             `yaml:"PROPERTY_CATEGORY"`
	PropertySubTypes   map[string][]string `yaml:"PROPERTY_SUBTYPE"`
	OwnershipTypes     []entry             `yaml:"OWNERSHIP_TYPE"`
	PossessionStatuses []entry             `yaml:"POSSESSION_STATUS"`
	FurnishingTypes    []entry             `yaml:"FURNISHING_TYPE"`
	ParkingTypes       []entry             `yaml:"PARKING_TYPE"`
	AreaUnits          []entry             `yaml:"AREA_UNIT"`
	BHKOptions         []entry             `yaml:"BHK_OPTION"`
}

type entry struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// categoryOrder fixes sub-type row order, since yaml maps are unordered once decoded
var categoryOrder = []models.PropertyCategory{
	models.CategoryResidential,
	models.CategoryCommercial,
	models.CategoryIndustrial,
	models.CategoryLand,
	models.CategorySpecial,
	models.CategoryIsland,
}

var (
	once    sync.Once
	rows    []models.FilterOption
	loadErr error
)

// Default returns the default taxonomy as flat filter option rows in file
// order. Callers get their own copy.
func Default() ([]models.FilterOption, error) {
	once.Do(func() {
		rows, loadErr = parse(rawTaxonomy)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]models.FilterOption, len(rows))
	copy(out, rows)
	return out, nil
}

// MustDefault is Default for callers that treat a broken embedded file as a programming error
func MustDefault() []models.FilterOption {
	out, err := Default()
	if err != nil {
		panic(err)
	}
	return out
}

func parse(data []byte) ([]models.FilterOption, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(doc.TransactionTypes) == 0 || len(doc.PropertyCategories) == 0 {
		return nil, fmt.Errorf("taxonomy is missing transaction types or property categories")
	}

	var out []models.FilterOption
	flat := func(t models.FilterOptionType, entries []entry) {
		for i, e := range entries {
			out = append(out, models.FilterOption{
				OptionType: t,
				Value:      e.Value,
				Label:      e.Label,
				SortOrder:  i + 1,
				IsActive:   true,
			})
		}
	}

	flat(models.OptionTransactionType, doc.TransactionTypes)
	flat(models.OptionPropertyCategory, doc.PropertyCategories)
	for _, category := range categoryOrder {
		for i, value := range doc.PropertySubTypes[string(category)] {
			out = append(out, models.FilterOption{
				OptionType: models.OptionPropertySubType,
				Value:      value,
				Label:      value,
				Category:   string(category),
				SortOrder:  i + 1,
				IsActive:   true,
			})
		}
	}
	flat(models.OptionOwnershipType, doc.OwnershipTypes)
	flat(models.OptionPossessionStatus, doc.PossessionStatuses)
	flat(models.OptionFurnishingType, doc.FurnishingTypes)
	flat(models.OptionParkingType, doc.ParkingTypes)
	flat(models.OptionAreaUnit, doc.AreaUnits)
	flat(models.OptionBHK, doc.BHKOptions)

	return out, nil
}
