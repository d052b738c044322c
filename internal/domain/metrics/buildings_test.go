package metrics

import (
	"testing"

	"pnw_targets/internal/app"
)

func TestTotalInfrastructure(t *testing.T) {
	testCases := []struct {
		name     string
		cities   []app.City
		expected float64
	}{
		{"NoCities", nil, 0},
		{"OneCity", []app.City{{Infrastructure: 1250.5}}, 1250.5},
		{"ManyCities", []app.City{{Infrastructure: 1000}, {Infrastructure: 2000.25}, {}}, 3000.25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalInfrastructure(&app.Nation{Cities: tc.cities})
			if got != tc.expected {
				t.Errorf("Expected %f, got %f", tc.expected, got)
			}
		})
	}
}

func TestCommerceTotals(t *testing.T) {
	nation := &app.Nation{Cities: []app.City{
		{Supermarket: 4, Bank: 5, ShoppingMall: 4, Stadium: 3, Subway: 1},
		{Supermarket: 1, Bank: 0, ShoppingMall: 2, Stadium: 0, Subway: 1},
		{},
	}}

	got := CommerceTotals(nation)
	expected := Commerce{Supermarket: 5, Bank: 5, ShoppingMall: 6, Stadium: 3, Subway: 2}

	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}

	if empty := CommerceTotals(&app.Nation{}); empty != (Commerce{}) {
		t.Errorf("Expected zero totals for a nation without cities, got %+v", empty)
	}
}
