package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pnw_targets/internal/app"
	"pnw_targets/internal/domain/eligibility"
	"pnw_targets/internal/processing"

	"github.com/dustin/go-humanize"
)

// Table is a rendered search result, ready for a terminal or a spreadsheet
type Table struct {
	Title   string
	Summary string
	Headers []string
	Rows    [][]string
}

// commonHeaders cover every TargetSummary field but the id. Each table
// appends its own columns and the URL after them.
var commonHeaders = []string{
	"#", "Nation", "Alliance", "Score", "Cities",
	"7d Stolen", "Last War", "Last War Date", "Last War Stolen",
	"GNI", "Daily Income", "Def Wars",
	"Soldiers", "Tanks", "Aircraft", "Ships", "Missiles", "Nukes", "Spies",
	"Supermarkets", "Banks", "Malls", "Stadiums", "Subways",
}

// RaidTable lays out raid targets, most attractive first
func RaidTable(result *processing.SearchResult[app.RaidTarget]) Table {
	table := newTable("Raid", result.MyNation, append(append([]string{}, commonHeaders...), "1d Stolen", "URL"))
	for i, t := range result.Targets {
		row := commonRow(i+1, t.TargetSummary)
		row = append(row, Money(t.OneDayStolen), t.NationURL)
		table.Rows = append(table.Rows, row)
	}
	return table
}

// BeigeTable lays out beige targets, soonest out of beige first
func BeigeTable(result *processing.SearchResult[app.BeigeTarget]) Table {
	table := newTable("Beige", result.MyNation, append(append([]string{}, commonHeaders...), "Beige Turns", "Infra", "URL"))
	for i, t := range result.Targets {
		row := commonRow(i+1, t.TargetSummary)
		row = append(row, humanize.Comma(int64(t.BeigeTurns)), humanize.CommafWithDigits(t.Infrastructure, 2), t.NationURL)
		table.Rows = append(table.Rows, row)
	}
	return table
}

func newTable(kind string, me *app.Nation, headers []string) Table {
	band := eligibility.NewScoreBand(me.Score)
	return Table{
		Title: fmt.Sprintf("%s Targets for %s (Nation ID %d)", kind, me.Name, me.ID),
		Summary: fmt.Sprintf("Score %s, war range %s - %s",
			humanize.CommafWithDigits(me.Score, 2),
			humanize.CommafWithDigits(band.Min, 2),
			humanize.CommafWithDigits(band.Max, 2)),
		Headers: headers,
		Rows:    [][]string{},
	}
}

func commonRow(rank int, t app.TargetSummary) []string {
	cities := "?"
	if t.CityCount > 0 {
		cities = humanize.Comma(int64(t.CityCount))
	}
	return []string{
		humanize.Comma(int64(rank)),
		t.Name,
		t.Alliance,
		humanize.CommafWithDigits(t.Score, 2),
		cities,
		Money(t.SevenDaysStolen),
		t.LastStolenTimeAgo,
		t.MostRecentDefWarDate,
		Money(t.MoneyStolenRecentDefWar),
		Money(t.GNI),
		Money(t.DailyIncome),
		humanize.Comma(int64(t.DefensiveWarsCount)),
		humanize.Comma(int64(t.Soldiers)),
		humanize.Comma(int64(t.Tanks)),
		humanize.Comma(int64(t.Aircraft)),
		humanize.Comma(int64(t.Ships)),
		humanize.Comma(int64(t.Missiles)),
		humanize.Comma(int64(t.Nukes)),
		humanize.Comma(int64(t.Spies)),
		humanize.Comma(int64(t.Supermarket)),
		humanize.Comma(int64(t.Bank)),
		humanize.Comma(int64(t.ShoppingMall)),
		humanize.Comma(int64(t.Stadium)),
		humanize.Comma(int64(t.Subway)),
	}
}

// Money formats an amount as whole dollars with thousands separators
func Money(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.CommafWithDigits(-amount, 0)
	}
	return "$" + humanize.CommafWithDigits(amount, 0)
}

// Render writes the table as aligned text columns
func Render(w io.Writer, table Table) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", table.Title, table.Summary); err != nil {
		return err
	}
	if len(table.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No targets found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Headers, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// SheetValues returns the table as spreadsheet rows: title, summary, a blank
// row, the header row and then one row per target.
func (t Table) SheetValues() [][]interface{} {
	values := make([][]interface{}, 0, len(t.Rows)+4)
	values = append(values, []interface{}{t.Title}, []interface{}{t.Summary}, []interface{}{})
	values = append(values, toCells(t.Headers))
	for _, row := range t.Rows {
		values = append(values, toCells(row))
	}
	return values
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
