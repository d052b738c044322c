package processing

import (
	"fmt"

	"pnw_targets/internal/app"
	"pnw_targets/internal/domain/metrics"
)

const (
	// NationURLFormat builds the in-game profile link for a nation id
	NationURLFormat = "https://politicsandwar.com/nation/id=%d"

	// NoAlliance is shown for nations outside any alliance
	NoAlliance = "No Alliance"

	daysPerYear = 365.0
)

// summarize projects the fields shared by every target kind
// Pure function: Builds a new summary without modifying the nation
func summarize(n *app.Nation, stolen metrics.StolenMoney) app.TargetSummary {
	commerce := metrics.CommerceTotals(n)

	alliance := NoAlliance
	if n.Alliance != nil && n.Alliance.Name != "" {
		alliance = n.Alliance.Name
	}

	return app.TargetSummary{
		ID:                      n.ID,
		Name:                    n.Name,
		Score:                   n.Score,
		Alliance:                alliance,
		MoneyStolenRecentDefWar: stolen.MostRecentWar.Amount,
		SevenDaysStolen:         stolen.SevenDays,
		MostRecentDefWarDate:    stolen.MostRecentWar.Date,
		LastStolenTimeAgo:       stolen.MostRecentWar.TimeAgo,
		GNI:                     n.GrossNationalIncome,
		DailyIncome:             n.GrossNationalIncome / daysPerYear,
		NationURL:               fmt.Sprintf(NationURLFormat, n.ID),
		CityCount:               app.CityCount(len(n.Cities)),
		Soldiers:                n.Soldiers,
		Tanks:                   n.Tanks,
		Aircraft:                n.Aircraft,
		Ships:                   n.Ships,
		Missiles:                n.Missiles,
		Nukes:                   n.Nukes,
		Spies:                   n.Spies,
		Supermarket:             commerce.Supermarket,
		Bank:                    commerce.Bank,
		ShoppingMall:            commerce.ShoppingMall,
		Stadium:                 commerce.Stadium,
		Subway:                  commerce.Subway,
		DefensiveWarsCount:      n.DefensiveWarsCount,
	}
}

// descendingStolen orders by seven-day stolen money, largest first
func descendingStolen(a, b app.TargetSummary) int {
	switch {
	case a.SevenDaysStolen > b.SevenDaysStolen:
		return -1
	case a.SevenDaysStolen < b.SevenDaysStolen:
		return 1
	default:
		return 0
	}
}
