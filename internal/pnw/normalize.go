package pnw

import (
	"bytes"
	"strconv"
	"time"

	"pnw_targets/internal/app"
)

// The API returns ids as strings, may send numbers either quoted or bare,
// and leaves fields null or absent. The raw types below absorb all of that
// so the rest of the code only ever sees app types with zero defaults.

// flexInt decodes a JSON number, quoted number, or null into an int
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	v, err := parseFlexNumber(data)
	if err != nil {
		return err
	}
	*f = flexInt(v)
	return nil
}

// flexFloat decodes a JSON number, quoted number, or null into a float64
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	v, err := parseFlexNumber(data)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func parseFlexNumber(data []byte) (float64, error) {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		return 0, nil
	}
	return strconv.ParseFloat(string(data), 64)
}

type rawNationList struct {
	Data          []rawNation       `json:"data"`
	PaginatorInfo *rawPaginatorInfo `json:"paginatorInfo"`
}

type rawPaginatorInfo struct {
	HasMorePages bool    `json:"hasMorePages"`
	CurrentPage  flexInt `json:"currentPage"`
}

type rawNation struct {
	ID                  flexInt      `json:"id"`
	NationName          string       `json:"nation_name"`
	Score               flexFloat    `json:"score"`
	Soldiers            flexInt      `json:"soldiers"`
	Tanks               flexInt      `json:"tanks"`
	Aircraft            flexInt      `json:"aircraft"`
	Ships               flexInt      `json:"ships"`
	Missiles            flexInt      `json:"missiles"`
	Nukes               flexInt      `json:"nukes"`
	Spies               flexInt      `json:"spies"`
	Color               string       `json:"color"`
	VacationModeTurns   flexInt      `json:"vacation_mode_turns"`
	BeigeTurns          flexInt      `json:"beige_turns"`
	AllianceID          flexInt      `json:"alliance_id"`
	GrossNationalIncome flexFloat    `json:"gross_national_income"`
	Cities              []rawCity    `json:"cities"`
	Wars                []rawWar     `json:"wars"`
	DefensiveWarsCount  flexInt      `json:"defensive_wars_count"`
	Alliance            *rawAlliance `json:"alliance"`
}

type rawCity struct {
	Infrastructure flexFloat `json:"infrastructure"`
	Supermarket    flexInt   `json:"supermarket"`
	Bank           flexInt   `json:"bank"`
	ShoppingMall   flexInt   `json:"shopping_mall"`
	Stadium        flexInt   `json:"stadium"`
	Subway         flexInt   `json:"subway"`
}

type rawWar struct {
	ID        flexInt     `json:"id"`
	TurnsLeft flexInt     `json:"turns_left"`
	Date      string      `json:"date"`
	DefID     flexInt     `json:"def_id"`
	Attacks   []rawAttack `json:"attacks"`
}

type rawAttack struct {
	DefID       flexInt   `json:"def_id"`
	MoneyStolen flexFloat `json:"money_stolen"`
	Date        string    `json:"date"`
}

type rawAlliance struct {
	ID       flexInt     `json:"id"`
	Name     string      `json:"name"`
	Treaties []rawTreaty `json:"treaties"`
}

type rawTreaty struct {
	Alliance1ID flexInt `json:"alliance1_id"`
	Alliance2ID flexInt `json:"alliance2_id"`
	TreatyType  string  `json:"treaty_type"`
	TreatyURL   string  `json:"treaty_url"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
}

// parseDate parses an API timestamp. Unparseable or empty values become the
// zero time, which every window check treats as too old.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func normalizePage(raw rawNationList) app.NationsPage {
	page := app.NationsPage{
		Nations: make([]app.Nation, 0, len(raw.Data)),
	}
	for _, n := range raw.Data {
		page.Nations = append(page.Nations, normalizeNation(n))
	}
	if raw.PaginatorInfo != nil {
		page.HasMorePages = raw.PaginatorInfo.HasMorePages
		page.CurrentPage = int(raw.PaginatorInfo.CurrentPage)
	}
	return page
}

func normalizeNation(raw rawNation) app.Nation {
	nation := app.Nation{
		ID:                  int(raw.ID),
		Name:                raw.NationName,
		Score:               float64(raw.Score),
		Color:               raw.Color,
		VacationModeTurns:   int(raw.VacationModeTurns),
		BeigeTurns:          int(raw.BeigeTurns),
		GrossNationalIncome: float64(raw.GrossNationalIncome),
		Soldiers:            int(raw.Soldiers),
		Tanks:               int(raw.Tanks),
		Aircraft:            int(raw.Aircraft),
		Ships:               int(raw.Ships),
		Missiles:            int(raw.Missiles),
		Nukes:               int(raw.Nukes),
		Spies:               int(raw.Spies),
		AllianceID:          int(raw.AllianceID),
		Cities:              make([]app.City, 0, len(raw.Cities)),
		Wars:                make([]app.War, 0, len(raw.Wars)),
		DefensiveWarsCount:  int(raw.DefensiveWarsCount),
	}

	for _, c := range raw.Cities {
		nation.Cities = append(nation.Cities, app.City{
			Infrastructure: float64(c.Infrastructure),
			Supermarket:    int(c.Supermarket),
			Bank:           int(c.Bank),
			ShoppingMall:   int(c.ShoppingMall),
			Stadium:        int(c.Stadium),
			Subway:         int(c.Subway),
		})
	}

	for _, w := range raw.Wars {
		war := app.War{
			ID:        int(w.ID),
			Date:      parseDate(w.Date),
			DefID:     int(w.DefID),
			TurnsLeft: int(w.TurnsLeft),
			Attacks:   make([]app.Attack, 0, len(w.Attacks)),
		}
		for _, a := range w.Attacks {
			war.Attacks = append(war.Attacks, app.Attack{
				DefID:       int(a.DefID),
				MoneyStolen: float64(a.MoneyStolen),
				Date:        parseDate(a.Date),
			})
		}
		nation.Wars = append(nation.Wars, war)
	}

	if raw.Alliance != nil {
		alliance := &app.Alliance{
			ID:       int(raw.Alliance.ID),
			Name:     raw.Alliance.Name,
			Treaties: make([]app.Treaty, 0, len(raw.Alliance.Treaties)),
		}
		for _, t := range raw.Alliance.Treaties {
			alliance.Treaties = append(alliance.Treaties, app.Treaty{
				Alliance1ID: int(t.Alliance1ID),
				Alliance2ID: int(t.Alliance2ID),
				TreatyType:  t.TreatyType,
				TreatyURL:   t.TreatyURL,
			})
		}
		nation.Alliance = alliance
	}

	return nation
}
