package sheets

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	rowBuffer    = 50
	columnBuffer = 5
)

// Client implements SheetsAPI on top of the Google Sheets v4 service
type Client struct {
	service *sheets.Service
}

// NewClient creates a new Google Sheets client with the provided credentials
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// UpdateRange writes values into the range. Values are entered as if typed,
// so "$1,000" stays text while plain numbers become numbers.
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update range %s: %w", range_, err)
	}

	return nil
}

// ClearRange clears all values in the specified range
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, range_, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear range %s: %w", range_, err)
	}

	return nil
}

// CreateSheet adds a tab named sheetName
func (c *Client) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: sheetName,
			},
		},
	}

	if err := c.batchUpdate(ctx, spreadsheetID, req); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}

	return nil
}

// SheetExists checks if a tab with the given name exists in the spreadsheet
func (c *Client) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	sheet, err := c.findSheet(ctx, spreadsheetID, sheetName)
	if err != nil {
		return false, err
	}
	return sheet != nil, nil
}

// EnsureSheetCapacity grows the tab when it is smaller than required,
// leaving some spare rows and columns so repeated exports rarely resize.
func (c *Client) EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error {
	sheet, err := c.findSheet(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	if sheet == nil {
		return fmt.Errorf("sheet %s not found", sheetName)
	}

	grid := sheet.Properties.GridProperties
	newRows, newCols, resize := grownGrid(int(grid.RowCount), int(grid.ColumnCount), requiredRows, requiredCols)
	if !resize {
		return nil
	}

	log.Debug().
		Str("sheet_name", sheetName).
		Int64("current_rows", grid.RowCount).
		Int64("current_cols", grid.ColumnCount).
		Int("new_rows", newRows).
		Int("new_cols", newCols).
		Msg("Expanding sheet capacity")

	req := &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: sheet.Properties.SheetId,
				GridProperties: &sheets.GridProperties{
					RowCount:    int64(newRows),
					ColumnCount: int64(newCols),
				},
			},
			Fields: "gridProperties.rowCount,gridProperties.columnCount",
		},
	}

	if err := c.batchUpdate(ctx, spreadsheetID, req); err != nil {
		return fmt.Errorf("failed to resize sheet %s: %w", sheetName, err)
	}

	return nil
}

func (c *Client) findSheet(ctx context.Context, spreadsheetID, sheetName string) (*sheets.Sheet, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == sheetName {
			return sheet, nil
		}
	}
	return nil, nil
}

func (c *Client) batchUpdate(ctx context.Context, spreadsheetID string, req *sheets.Request) error {
	batch := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{req},
	}
	_, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batch).
		Context(ctx).
		Do()
	return err
}

// grownGrid returns the new grid size and whether a resize is needed
// Pure function: No I/O, simple arithmetic
func grownGrid(currentRows, currentCols, requiredRows, requiredCols int) (int, int, bool) {
	rows, cols := currentRows, currentCols
	resize := false

	if requiredRows > currentRows {
		rows = requiredRows + rowBuffer
		resize = true
	}
	if requiredCols > currentCols {
		cols = requiredCols + columnBuffer
		resize = true
	}

	return rows, cols, resize
}
