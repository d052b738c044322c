package processing

import (
	"cmp"

	"pnw_targets/internal/app"
	"pnw_targets/internal/domain/eligibility"
	"pnw_targets/internal/domain/metrics"
)

// BeigeStrategy finds beige nations whose protection runs out within 12 turns
var BeigeStrategy = Strategy[app.BeigeTarget]{
	Name:     "Beige",
	Eligible: eligibility.IsValidBeigeTarget,
	Build:    buildBeigeTarget,
	Compare:  compareBeigeTargets,
}

// NewBeigeFinder creates a Finder for beige targets
func NewBeigeFinder(source NationSource) *Finder[app.BeigeTarget] {
	return NewFinder(source, BeigeStrategy)
}

func buildBeigeTarget(n *app.Nation, stolen metrics.StolenMoney) app.BeigeTarget {
	return app.BeigeTarget{
		TargetSummary:  summarize(n, stolen),
		BeigeTurns:     n.BeigeTurns,
		Infrastructure: metrics.TotalInfrastructure(n),
	}
}

// compareBeigeTargets sorts by fewest beige turns left, then most money stolen in 7 days
func compareBeigeTargets(a, b app.BeigeTarget) int {
	if c := cmp.Compare(a.BeigeTurns, b.BeigeTurns); c != 0 {
		return c
	}
	return descendingStolen(a.TargetSummary, b.TargetSummary)
}
