package eligibility

import (
	"strings"

	"pnw_targets/internal/app"
	"pnw_targets/internal/config"
	"pnw_targets/internal/domain/treaty"
)

const (
	BeigeColor       = "beige"
	MinBeigeTurns    = 1
	MaxBeigeTurns    = 12
	MaxDefensiveWars = 3 // a nation with this many defensive wars has no free slot
)

// ScoreBand is the inclusive score range a nation may declare war on
type ScoreBand struct {
	Min float64
	Max float64
}

// NewScoreBand returns [0.75×score, 1.5×score]
func NewScoreBand(score float64) ScoreBand {
	return ScoreBand{
		Min: score * config.MinScoreRatio,
		Max: score * config.MaxScoreRatio,
	}
}

// Contains reports whether score lies inside the band, both ends inclusive
func (b ScoreBand) Contains(score float64) bool {
	return b.Min <= score && score <= b.Max
}

// IsValidRaidTarget checks an active, non-beige candidate against the requester
// Pure function: No I/O, simple boolean logic
func IsValidRaidTarget(candidate, me *app.Nation, band ScoreBand) bool {
	if IsBeige(candidate) {
		return false
	}
	return passesCommon(candidate, me, band)
}

// IsValidBeigeTarget checks a beige candidate with 1 to 12 beige turns left against the requester
// Pure function: No I/O, simple boolean logic
func IsValidBeigeTarget(candidate, me *app.Nation, band ScoreBand) bool {
	if !IsBeige(candidate) {
		return false
	}
	if candidate.BeigeTurns < MinBeigeTurns || candidate.BeigeTurns > MaxBeigeTurns {
		return false
	}
	return passesCommon(candidate, me, band)
}

// IsBeige reports whether a nation's color is beige, ignoring case
func IsBeige(n *app.Nation) bool {
	return strings.EqualFold(n.Color, BeigeColor)
}

// PassesActivityRules applies the checks made after metrics are known: the
// candidate must have been robbed in the last 7 days and still have a free
// defensive war slot.
func PassesActivityRules(candidate *app.Nation, sevenDaysStolen float64) bool {
	return sevenDaysStolen != 0 && candidate.DefensiveWarsCount < MaxDefensiveWars
}

func passesCommon(candidate, me *app.Nation, band ScoreBand) bool {
	if !band.Contains(candidate.Score) {
		return false
	}

	if candidate.VacationModeTurns != 0 {
		return false
	}

	if treaty.Protects(me.Alliance, candidate.Alliance) {
		return false
	}

	return !OutmatchesRequester(candidate, me)
}

// OutmatchesRequester reports whether the candidate has more ships, missiles,
// nukes or spies than the requester
func OutmatchesRequester(candidate, me *app.Nation) bool {
	return candidate.Ships > me.Ships ||
		candidate.Missiles > me.Missiles ||
		candidate.Nukes > me.Nukes ||
		candidate.Spies > me.Spies
}
