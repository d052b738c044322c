package metrics

import (
	"pnw_targets/internal/app"

	"github.com/samber/lo"
)

// Commerce holds the summed commerce improvements across all of a nation's cities
type Commerce struct {
	Supermarket  int
	Bank         int
	ShoppingMall int
	Stadium      int
	Subway       int
}

// TotalInfrastructure sums infrastructure across all cities
// Pure function: Simple reduction operation
func TotalInfrastructure(n *app.Nation) float64 {
	return lo.SumBy(n.Cities, func(c app.City) float64 {
		return c.Infrastructure
	})
}

// CommerceTotals sums each commerce improvement independently across all cities
// Pure function: Simple reduction operation
func CommerceTotals(n *app.Nation) Commerce {
	var totals Commerce
	for _, c := range n.Cities {
		totals.Supermarket += c.Supermarket
		totals.Bank += c.Bank
		totals.ShoppingMall += c.ShoppingMall
		totals.Stadium += c.Stadium
		totals.Subway += c.Subway
	}
	return totals
}
