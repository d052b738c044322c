package app

import (
	"encoding/json"
	"time"
)

// Nation is a normalized snapshot of a nation from the Politics & War API.
// Missing numbers are zero and missing lists are empty.
type Nation struct {
	ID                  int       `json:"id"`
	Name                string    `json:"nation_name"`
	Score               float64   `json:"score"`
	Color               string    `json:"color"`
	VacationModeTurns   int       `json:"vacation_mode_turns"`
	BeigeTurns          int       `json:"beige_turns"`
	GrossNationalIncome float64   `json:"gross_national_income"`
	Soldiers            int       `json:"soldiers"`
	Tanks               int       `json:"tanks"`
	Aircraft            int       `json:"aircraft"`
	Ships               int       `json:"ships"`
	Missiles            int       `json:"missiles"`
	Nukes               int       `json:"nukes"`
	Spies               int       `json:"spies"`
	AllianceID          int       `json:"alliance_id"`
	Alliance            *Alliance `json:"alliance,omitempty"`
	Cities              []City    `json:"cities"`
	Wars                []War     `json:"wars"`
	DefensiveWarsCount  int       `json:"defensive_wars_count"`
}

// City holds the per-city fields used for infrastructure and commerce totals
type City struct {
	Infrastructure float64 `json:"infrastructure"`
	Supermarket    int     `json:"supermarket"`
	Bank           int     `json:"bank"`
	ShoppingMall   int     `json:"shopping_mall"`
	Stadium        int     `json:"stadium"`
	Subway         int     `json:"subway"`
}

// War is one war a nation took part in
type War struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	DefID     int       `json:"def_id"`
	TurnsLeft int       `json:"turns_left"`
	Attacks   []Attack  `json:"attacks"`
}

// Attack is a single attack inside a war
type Attack struct {
	DefID       int       `json:"def_id"`
	MoneyStolen float64   `json:"money_stolen"`
	Date        time.Time `json:"date"`
}

// Alliance is the alliance a nation belongs to, with its treaties
type Alliance struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Treaties []Treaty `json:"treaties"`
}

// Treaty links two alliances
type Treaty struct {
	Alliance1ID int    `json:"alliance1_id"`
	Alliance2ID int    `json:"alliance2_id"`
	TreatyType  string `json:"treaty_type"`
	TreatyURL   string `json:"treaty_url,omitempty"`
}

// NationsPage is one page of the paginated nations query
type NationsPage struct {
	Nations      []Nation
	HasMorePages bool
	CurrentPage  int
}

// CityCount is a number of cities that renders as "?" when unknown (zero).
type CityCount int

// MarshalJSON writes the count, or "?" when no cities were reported.
func (c CityCount) MarshalJSON() ([]byte, error) {
	if c == 0 {
		return []byte(`"?"`), nil
	}
	return json.Marshal(int(c))
}

// TargetSummary holds the fields shared by raid and beige targets
type TargetSummary struct {
	ID                      int       `json:"id"`
	Name                    string    `json:"name"`
	Score                   float64   `json:"score"`
	Alliance                string    `json:"alliance"`
	MoneyStolenRecentDefWar float64   `json:"money_stolen_recent_def_war"`
	SevenDaysStolen         float64   `json:"seven_days_stolen"`
	MostRecentDefWarDate    string    `json:"most_recent_def_war_date"`
	LastStolenTimeAgo       string    `json:"last_stolen_time_ago_str"`
	GNI                     float64   `json:"gni"`
	DailyIncome             float64   `json:"daily_income"`
	NationURL               string    `json:"nation_url"`
	CityCount               CityCount `json:"city_count"`
	Soldiers                int       `json:"soldiers"`
	Tanks                   int       `json:"tanks"`
	Aircraft                int       `json:"aircraft"`
	Ships                   int       `json:"ships"`
	Missiles                int       `json:"missiles"`
	Nukes                   int       `json:"nukes"`
	Spies                   int       `json:"spies"`
	Supermarket             int       `json:"supermarket"`
	Bank                    int       `json:"bank"`
	ShoppingMall            int       `json:"shopping_mall"`
	Stadium                 int       `json:"stadium"`
	Subway                  int       `json:"subway"`
	DefensiveWarsCount      int       `json:"defensive_wars_count"`
}

// RaidTarget is an active, non-beige nation worth raiding
type RaidTarget struct {
	TargetSummary
	OneDayStolen float64 `json:"one_day_stolen"`
}

// BeigeTarget is a beige nation whose protection is about to run out
type BeigeTarget struct {
	TargetSummary
	BeigeTurns     int     `json:"beige_turns"`
	Infrastructure float64 `json:"infrastructure"`
}
