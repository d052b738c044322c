package sheets

import (
	"context"
	"fmt"

	"pnw_targets/internal/report"

	"github.com/rs/zerolog/log"
)

// Exporter writes search result tables to one tab per search kind and requester
type Exporter struct {
	api           SheetsAPI
	spreadsheetID string
}

// NewExporter creates an Exporter for the given spreadsheet
func NewExporter(api SheetsAPI, spreadsheetID string) *Exporter {
	return &Exporter{api: api, spreadsheetID: spreadsheetID}
}

// SheetName returns the tab used for a search kind and requester, e.g. "Raid - 1234"
func SheetName(kind string, nationID int) string {
	return fmt.Sprintf("%s - %d", kind, nationID)
}

// Export replaces the contents of sheetName with table, creating the tab if needed
func (e *Exporter) Export(ctx context.Context, sheetName string, table report.Table) error {
	exists, err := e.api.SheetExists(ctx, e.spreadsheetID, sheetName)
	if err != nil {
		return fmt.Errorf("failed to check if sheet exists: %w", err)
	}

	if !exists {
		log.Info().
			Str("sheet_name", sheetName).
			Msg("Creating results sheet")

		if err := e.api.CreateSheet(ctx, e.spreadsheetID, sheetName); err != nil {
			return err
		}
	}

	values := table.SheetValues()
	if err := e.api.EnsureSheetCapacity(ctx, e.spreadsheetID, sheetName, len(values), len(table.Headers)); err != nil {
		return fmt.Errorf("failed to ensure sheet capacity: %w", err)
	}

	if err := e.api.ClearRange(ctx, e.spreadsheetID, quoteSheet(sheetName)); err != nil {
		return fmt.Errorf("failed to clear previous results: %w", err)
	}

	writeRange := fmt.Sprintf("%s!A1:%s%d", quoteSheet(sheetName), columnLetter(len(table.Headers)), len(values))
	if err := e.api.UpdateRange(ctx, e.spreadsheetID, writeRange, values); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("targets", len(table.Rows)).
		Msg("Exported search results")

	return nil
}

// quoteSheet quotes a tab name for A1 notation
func quoteSheet(name string) string {
	return "'" + name + "'"
}

// columnLetter converts a 1-based column index to its A1 letters: 1 → A, 27 → AA
func columnLetter(n int) string {
	if n < 1 {
		n = 1
	}
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}
