package taxonomy

import (
	"sort"
	"strconv"

	"myground/internal/models"
)

const (
	SourceStore    = "store"
	SourceDefaults = "defaults"
)

// Group reshapes flat rows into the grouped filter structure. Rows are
// expected in (option type, order, category) order; list order follows it.
func Group(rows []models.FilterOption, source string) models.GroupedFilterOptions {
	out := models.GroupedFilterOptions{
		TransactionTypes:   []models.OptionItem{},
		PropertyCategories: []models.OptionItem{},
		PropertySubTypes:   map[string][]string{},
		OwnershipTypes:     []models.OptionItem{},
		PossessionStatuses: []models.OptionItem{},
		FurnishingTypes:    []models.OptionItem{},
		ParkingTypes:       []models.OptionItem{},
		AreaUnits:          []models.OptionItem{},
		BHKOptions:         []int{},
		Source:             source,
	}

	seenBHK := map[int]bool{}
	for _, row := range rows {
		item := models.OptionItem{Value: row.Value, Label: row.Label}
		switch row.OptionType {
		case models.OptionTransactionType:
			out.TransactionTypes = append(out.TransactionTypes, item)
		case models.OptionPropertyCategory:
			out.PropertyCategories = append(out.PropertyCategories, item)
		case models.OptionPropertySubType:
			// Sub-types only keep their value
			out.PropertySubTypes[row.Category] = append(out.PropertySubTypes[row.Category], row.Value)
		case models.OptionOwnershipType:
			out.OwnershipTypes = append(out.OwnershipTypes, item)
		case models.OptionPossessionStatus:
			out.PossessionStatuses = append(out.PossessionStatuses, item)
		case models.OptionFurnishingType:
			out.FurnishingTypes = append(out.FurnishingTypes, item)
		case models.OptionParkingType:
			out.ParkingTypes = append(out.ParkingTypes, item)
		case models.OptionAreaUnit:
			out.AreaUnits = append(out.AreaUnits, item)
		case models.OptionBHK:
			n, ok := ParseBHK(row.Value)
			if ok && !seenBHK[n] {
				seenBHK[n] = true
				out.BHKOptions = append(out.BHKOptions, n)
			}
		}
	}
	sort.Ints(out.BHKOptions)

	return out
}

// ParseBHK reads the leading integer of a BHK value, so "7+" is 7.
// Values without leading digits are rejected.
func ParseBHK(value string) (int, bool) {
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsSeeded reports whether grouped options carry the two lists every filter
// panel depends on
func IsSeeded(g models.GroupedFilterOptions) bool {
	return len(g.TransactionTypes) > 0 || len(g.PropertyCategories) > 0
}

// DefaultGrouped groups the embedded defaults
func DefaultGrouped() models.GroupedFilterOptions {
	return Group(MustDefault(), SourceDefaults)
}
