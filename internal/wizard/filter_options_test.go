package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"myground/internal/models"
	"myground/internal/taxonomy"
)

func TestFilterOptionsFromAPI(t *testing.T) {
	api := newFakeAPI()
	api.filters = &models.GroupedFilterOptions{
		TransactionTypes: []models.OptionItem{{Value: "SELL", Label: "Sell"}},
		PropertySubTypes: map[string][]string{"LAND": {"Farm Land"}},
		BHKOptions:       []int{1, 2},
		Source:           taxonomy.SourceStore,
	}

	got := FilterOptions(context.Background(), api, zaptest.NewLogger(t))
	assert.Equal(t, taxonomy.SourceStore, got.Source)
	assert.Equal(t, []int{1, 2}, got.BHKOptions)
}

func TestFilterOptionsFallBack(t *testing.T) {
	cases := map[string]func(*fakeAPI){
		"error":    func(a *fakeAPI) { a.filterErr = errors.New("connection refused") },
		"nil":      func(a *fakeAPI) {},
		"unseeded": func(a *fakeAPI) { a.filters = &models.GroupedFilterOptions{Source: taxonomy.SourceStore} },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			api := newFakeAPI()
			setup(api)

			got := FilterOptions(context.Background(), api, zaptest.NewLogger(t))
			assert.Equal(t, taxonomy.SourceDefaults, got.Source)
			assert.NotEmpty(t, got.TransactionTypes)
			assert.NotEmpty(t, got.PropertySubTypes)
			assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got.BHKOptions)
		})
	}
}
