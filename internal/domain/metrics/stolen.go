package metrics

import (
	"fmt"
	"math"
	"time"

	"pnw_targets/internal/app"

	"github.com/samber/lo"
)

const (
	SevenDayWindow = 7 * 24 * time.Hour
	OneDayWindow   = 24 * time.Hour

	// NotAvailable is shown for the most recent war fields of a nation with no defensive wars
	NotAvailable = "N/A"

	// DateLayout renders war dates as UTC ISO-8601 with milliseconds
	DateLayout = "2006-01-02T15:04:05.000Z"
)

// RecentWar describes the latest defensive war of a nation
type RecentWar struct {
	Amount  float64
	Date    string
	TimeAgo string
}

// StolenMoney is the money stolen from a nation while defending
type StolenMoney struct {
	SevenDays     float64
	OneDay        float64
	MostRecentWar RecentWar
}

// CalculateStolenMoney aggregates money stolen from n in its defensive wars.
// The 7-day and 1-day windows are applied to attack dates, while the most
// recent war is picked by war date; the two are independent outputs.
// Pure function: Takes now as parameter to enable deterministic testing
func CalculateStolenMoney(n *app.Nation, now time.Time) StolenMoney {
	wars := DefensiveWars(n)

	return StolenMoney{
		SevenDays:     stolenWithin(n, wars, now, SevenDayWindow),
		OneDay:        stolenWithin(n, wars, now, OneDayWindow),
		MostRecentWar: mostRecentWar(n, wars, now),
	}
}

// DefensiveWars returns the wars in which n is the defender
// Pure function: Returns new slice without modifying input
func DefensiveWars(n *app.Nation) []app.War {
	return lo.Filter(n.Wars, func(w app.War, _ int) bool {
		return w.DefID == n.ID
	})
}

func defensiveAttacks(n *app.Nation, war app.War) []app.Attack {
	return lo.Filter(war.Attacks, func(a app.Attack, _ int) bool {
		return a.DefID == n.ID
	})
}

func stolenWithin(n *app.Nation, wars []app.War, now time.Time, window time.Duration) float64 {
	return lo.SumBy(wars, func(war app.War) float64 {
		return lo.SumBy(defensiveAttacks(n, war), func(a app.Attack) float64 {
			if now.Sub(a.Date) <= window {
				return a.MoneyStolen
			}
			return 0
		})
	})
}

func mostRecentWar(n *app.Nation, wars []app.War, now time.Time) RecentWar {
	if len(wars) == 0 {
		return RecentWar{Date: NotAvailable, TimeAgo: NotAvailable}
	}

	latest := lo.MaxBy(wars, func(a, b app.War) bool {
		return a.Date.After(b.Date)
	})

	recent := RecentWar{
		Amount: lo.SumBy(defensiveAttacks(n, latest), func(a app.Attack) float64 {
			return a.MoneyStolen
		}),
		Date:    NotAvailable,
		TimeAgo: NotAvailable,
	}
	if !latest.Date.IsZero() {
		recent.Date = latest.Date.UTC().Format(DateLayout)
		recent.TimeAgo = FormatTimeAgo(now.Sub(latest.Date))
	}

	return recent
}

// FormatTimeAgo renders an elapsed duration as "{d}d {h}h ago", or "{h}h ago"
// when less than a day has passed. Partial hours are dropped.
func FormatTimeAgo(elapsed time.Duration) string {
	hoursAgo := int(math.Floor(elapsed.Hours()))
	days := hoursAgo / 24
	hours := hoursAgo % 24

	if days > 0 {
		return fmt.Sprintf("%dd %dh ago", days, hours)
	}
	return fmt.Sprintf("%dh ago", hoursAgo)
}
