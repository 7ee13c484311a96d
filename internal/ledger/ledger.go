// Package ledger composes ledger rows from transaction records and drives the
// append-then-format protocol against a store backend.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tx0095/moneyflow-bot/internal/domain"
)

// Schema selects the column layout of the destination table. It is a
// deployment-time choice, never inferred at runtime.
type Schema string

const (
	// SchemaBasic is date, type, amount, description.
	SchemaBasic Schema = "basic"
	// SchemaExtended prepends chat identity: timestamp, chat id, username,
	// type, amount, description.
	SchemaExtended Schema = "extended"
)

// UnknownUserPlaceholder fills the username column when the transport did not
// supply a sender name.
const UnknownUserPlaceholder = "unknown"

// Width returns the number of columns the schema occupies.
func (s Schema) Width() int64 {
	if s == SchemaExtended {
		return 6
	}
	return 4
}

// Valid reports whether s names a known layout.
func (s Schema) Valid() bool {
	return s == SchemaBasic || s == SchemaExtended
}

// RowHandle acknowledges one appended row. Callers use it only to confirm the
// write upstream, never to re-read the row.
type RowHandle struct {
	// UpdatedRange is the range the store reports it wrote, e.g. "Ledger!A5:D5".
	// Empty when the backend does not report ranges.
	UpdatedRange string
	// RowIndex is the 0-based index of the appended row, or -1 when the
	// backend cannot tell.
	RowIndex int64
}

// Appender is the single-row append operation a ledger store must provide.
type Appender interface {
	AppendRow(ctx context.Context, row []interface{}) (RowHandle, error)
}

// RowFormatter applies the cosmetic alignment patch to one appended row.
// Stores that cannot format rows simply do not implement it.
type RowFormatter interface {
	CenterRow(ctx context.Context, rowIndex, width int64) error
}

// WriterConfig carries the collaborators and layout choices for a Writer.
type WriterConfig struct {
	Store      Appender
	Formatter  RowFormatter // nil disables the format patch
	Schema     Schema
	DateLayout string           // layout for the stamped date cell
	Now        func() time.Time // nil means time.Now
	Logger     zerolog.Logger
}

// Writer appends transaction records to the ledger store. The append and the
// follow-up format patch are two separate remote calls: a crash between them
// leaves a written, unformatted row, which is an accepted visible state.
type Writer struct {
	store      Appender
	formatter  RowFormatter
	schema     Schema
	dateLayout string
	now        func() time.Time
	log        zerolog.Logger
}

// NewWriter creates a Writer from cfg. cfg.Store must be non-nil.
func NewWriter(cfg WriterConfig) *Writer {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	layout := cfg.DateLayout
	if layout == "" {
		layout = "02/01/2006"
	}
	schema := cfg.Schema
	if schema == "" {
		schema = SchemaBasic
	}
	return &Writer{
		store:      cfg.Store,
		formatter:  cfg.Formatter,
		schema:     schema,
		dateLayout: layout,
		now:        now,
		log:        cfg.Logger,
	}
}

// Write appends rec as one ledger row, stamping the recording date at call
// time, then best-effort centers the new row. A formatting failure is logged
// and swallowed so the caller never reports a false negative for a row that
// was durably written.
func (w *Writer) Write(ctx context.Context, rec domain.TransactionRecord) (RowHandle, error) {
	row := w.ComposeRow(rec)

	handle, err := w.store.AppendRow(ctx, row)
	if err != nil {
		return RowHandle{}, fmt.Errorf("Write: appending ledger row: %w", err)
	}

	if w.formatter != nil && handle.RowIndex >= 0 {
		if err := w.formatter.CenterRow(ctx, handle.RowIndex, w.schema.Width()); err != nil {
			w.log.Warn().
				Err(err).
				Int64("row_index", handle.RowIndex).
				Msg("Row format patch failed, row left unformatted")
		}
	}

	return handle, nil
}

// ComposeRow lays out rec in the configured column order.
func (w *Writer) ComposeRow(rec domain.TransactionRecord) []interface{} {
	date := w.now().Format(w.dateLayout)

	if w.schema == SchemaExtended {
		username := rec.Username
		if username == "" {
			username = UnknownUserPlaceholder
		}
		return []interface{}{date, rec.ChatID, username, string(rec.Type), rec.Amount, rec.Description}
	}
	return []interface{}{date, string(rec.Type), rec.Amount, rec.Description}
}
