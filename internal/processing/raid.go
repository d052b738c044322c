package processing

import (
	"cmp"

	"pnw_targets/internal/app"
	"pnw_targets/internal/domain/eligibility"
	"pnw_targets/internal/domain/metrics"
)

// RaidStrategy finds active nations that were robbed recently and still have a free defensive slot
var RaidStrategy = Strategy[app.RaidTarget]{
	Name:     "Raid",
	Eligible: eligibility.IsValidRaidTarget,
	Build:    buildRaidTarget,
	Compare:  compareRaidTargets,
}

// NewRaidFinder creates a Finder for raid targets
func NewRaidFinder(source NationSource) *Finder[app.RaidTarget] {
	return NewFinder(source, RaidStrategy)
}

func buildRaidTarget(n *app.Nation, stolen metrics.StolenMoney) app.RaidTarget {
	return app.RaidTarget{
		TargetSummary: summarize(n, stolen),
		OneDayStolen:  stolen.OneDay,
	}
}

// compareRaidTargets sorts by fewest defensive wars, then most money stolen in 7 days
func compareRaidTargets(a, b app.RaidTarget) int {
	if c := cmp.Compare(a.DefensiveWarsCount, b.DefensiveWarsCount); c != 0 {
		return c
	}
	return descendingStolen(a.TargetSummary, b.TargetSummary)
}
