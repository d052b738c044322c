package processing

import (
	"fmt"
	"time"

	"pnw_targets/internal/app"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testClock() time.Time {
	return testNow
}

// requesterNation returns a requester strong enough to pass every strength check
func requesterNation() *app.Nation {
	return &app.Nation{
		ID:       1,
		Name:     "Home",
		Score:    1000,
		Ships:    100,
		Missiles: 100,
		Nukes:    100,
		Spies:    100,
		Alliance: &app.Alliance{ID: 10, Name: "Home Alliance", Treaties: []app.Treaty{}},
		Cities:   []app.City{},
		Wars:     []app.War{},
	}
}

// robbedNation returns an in-band, non-beige nation that lost stolen money in
// one defensive war two days before testNow
func robbedNation(id int, stolen float64) app.Nation {
	attacked := testNow.Add(-48 * time.Hour)
	return app.Nation{
		ID:                  id,
		Name:                fmt.Sprintf("Nation %d", id),
		Score:               900,
		Color:               "green",
		GrossNationalIncome: 365000,
		Soldiers:            1000,
		Ships:               5,
		Spies:               10,
		Cities: []app.City{
			{Infrastructure: 1000, Supermarket: 1, Bank: 2},
			{Infrastructure: 500.5, Supermarket: 1, Subway: 1},
		},
		Wars: []app.War{{
			ID:    id * 10,
			Date:  attacked,
			DefID: id,
			Attacks: []app.Attack{
				{DefID: id, MoneyStolen: stolen, Date: attacked},
			},
		}},
	}
}

func beigeNation(id, beigeTurns int, stolen float64) app.Nation {
	n := robbedNation(id, stolen)
	n.Color = "beige"
	n.BeigeTurns = beigeTurns
	return n
}

func raidIDs(targets []app.RaidTarget) []int {
	ids := make([]int, len(targets))
	for i, t := range targets {
		ids[i] = t.ID
	}
	return ids
}
