package sheets

import (
	"context"
)

// SheetsAPI is the subset of Google Sheets operations the exporter needs.
//
// Values cross this boundary as [][]interface{} because that is what
// google.golang.org/api/sheets/v4 takes; nothing above the exporter sees them.
type SheetsAPI interface {
	// UpdateRange writes values into a sheet range
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error

	// ClearRange clears all values in a sheet range
	ClearRange(ctx context.Context, spreadsheetID, range_ string) error

	// CreateSheet adds a new tab to the spreadsheet
	CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error

	// SheetExists checks if a tab with the given name exists
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)

	// EnsureSheetCapacity grows a tab to at least the given number of rows and columns
	EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error
}

var _ SheetsAPI = (*Client)(nil)
