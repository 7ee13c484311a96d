// Package sheets implements the ledger store on a Google Sheets spreadsheet:
// row appends through values.append and the alignment patch through a
// repeatCell batch update.
package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tx0095/moneyflow-bot/internal/ledger"
)

// Store talks to one sheet of one spreadsheet.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64 // numeric grid id, needed for formatting requests
	width         int64 // column span of the configured schema
}

// New creates a Store with its own Sheets service. Credentials come in through
// opts, typically option.WithCredentialsJSON.
func New(ctx context.Context, spreadsheetID, sheetName string, sheetID, width int64, opts ...option.ClientOption) (*Store, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("New: creating sheets service: %w", err)
	}
	return NewWithService(svc, spreadsheetID, sheetName, sheetID, width), nil
}

// NewWithService creates a Store around an existing Sheets service.
func NewWithService(svc *sheetsapi.Service, spreadsheetID, sheetName string, sheetID, width int64) *Store {
	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		sheetID:       sheetID,
		width:         width,
	}
}

// AppendRow appends one row to the sheet's full column range. USER_ENTERED
// lets the store coerce values natively (numeric strings become numbers,
// dates become date cells); INSERT_ROWS guarantees a new row rather than an
// overwrite. The 0-based index of the written row is derived from the
// response's updated range.
func (s *Store) AppendRow(ctx context.Context, row []interface{}) (ledger.RowHandle, error) {
	vr := &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}

	resp, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.appendRange(), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return ledger.RowHandle{}, fmt.Errorf("AppendRow: values append: %w", err)
	}

	if resp.Updates == nil || resp.Updates.UpdatedRange == "" {
		return ledger.RowHandle{RowIndex: -1}, nil
	}

	idx, err := rowIndexFromRange(resp.Updates.UpdatedRange)
	if err != nil {
		return ledger.RowHandle{UpdatedRange: resp.Updates.UpdatedRange, RowIndex: -1}, nil
	}

	return ledger.RowHandle{
		UpdatedRange: resp.Updates.UpdatedRange,
		RowIndex:     idx,
	}, nil
}

// CenterRow sets horizontal-center and vertical-middle alignment on exactly
// one row across the schema's column span.
func (s *Store) CenterRow(ctx context.Context, rowIndex, width int64) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{
			{
				RepeatCell: &sheetsapi.RepeatCellRequest{
					Range: &sheetsapi.GridRange{
						SheetId:          s.sheetID,
						StartRowIndex:    rowIndex,
						EndRowIndex:      rowIndex + 1,
						StartColumnIndex: 0,
						EndColumnIndex:   width,
					},
					Cell: &sheetsapi.CellData{
						UserEnteredFormat: &sheetsapi.CellFormat{
							HorizontalAlignment: "CENTER",
							VerticalAlignment:   "MIDDLE",
						},
					},
					Fields: "userEnteredFormat(horizontalAlignment,verticalAlignment)",
				},
			},
		},
	}

	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("CenterRow: batch update row %d: %w", rowIndex, err)
	}
	return nil
}

// appendRange targets the sheet's full column span, e.g. "Ledger!A:D".
func (s *Store) appendRange() string {
	return fmt.Sprintf("%s!A:%s", s.sheetName, columnLetter(s.width))
}

// columnLetter converts a 1-based column count to its A1 letter. The widest
// supported schema is well inside a single letter.
func columnLetter(width int64) string {
	if width < 1 || width > 26 {
		width = 26
	}
	return string(rune('A' + width - 1))
}

var trailingRowNumber = regexp.MustCompile(`(\d+)$`)

// rowIndexFromRange extracts the trailing row number from an A1 range like
// "Ledger!A5:D5" and converts it to a 0-based index.
func rowIndexFromRange(updatedRange string) (int64, error) {
	m := trailingRowNumber.FindString(updatedRange)
	if m == "" {
		return 0, fmt.Errorf("rowIndexFromRange: no row number in range %q", updatedRange)
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rowIndexFromRange: parsing row number %q: %w", m, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("rowIndexFromRange: row number %d out of range", n)
	}
	return n - 1, nil
}
