// Package bigquery implements the ledger store on a single flat BigQuery
// table. It only supports appends: BigQuery has no notion of a cosmetic row
// format, so the writer skips the format patch for this backend.
package bigquery

import (
	"context"
	"fmt"

	bq "cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/tx0095/moneyflow-bot/internal/ledger"
)

// Store streams ledger rows into one table.
type Store struct {
	client  *bq.Client
	dataset string
	table   string
	schema  ledger.Schema
}

// New creates a Store with its own BigQuery client.
func New(ctx context.Context, projectID, dataset, table string, schema ledger.Schema, opts ...option.ClientOption) (*Store, error) {
	client, err := bq.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("New: bigquery client: %w", err)
	}
	return NewWithClient(client, dataset, table, schema), nil
}

// NewWithClient creates a Store around an existing BigQuery client.
func NewWithClient(client *bq.Client, dataset, table string, schema ledger.Schema) *Store {
	return &Store{
		client:  client,
		dataset: dataset,
		table:   table,
		schema:  schema,
	}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// AppendRow streams one composed row into the table. The insert API reports
// no row position, so the returned handle carries an unknown index and the
// caller skips the format patch.
func (s *Store) AppendRow(ctx context.Context, row []interface{}) (ledger.RowHandle, error) {
	saver, err := newRowSaver(row, s.schema)
	if err != nil {
		return ledger.RowHandle{}, fmt.Errorf("AppendRow: %w", err)
	}

	inserter := s.client.Dataset(s.dataset).Table(s.table).Inserter()
	if err := inserter.Put(ctx, saver); err != nil {
		return ledger.RowHandle{}, fmt.Errorf("AppendRow: inserting row: %w", err)
	}

	return ledger.RowHandle{RowIndex: -1}, nil
}

// rowSaver maps the positional cells the writer composes onto named columns.
type rowSaver struct {
	cells  []interface{}
	schema ledger.Schema
}

func newRowSaver(cells []interface{}, schema ledger.Schema) (*rowSaver, error) {
	if int64(len(cells)) != schema.Width() {
		return nil, fmt.Errorf("newRowSaver: got %d cells, schema %q needs %d", len(cells), schema, schema.Width())
	}
	return &rowSaver{cells: cells, schema: schema}, nil
}

// Save implements bigquery.ValueSaver. A random insert ID is fine: the system
// never retries an append, so duplicate suppression buys nothing.
func (r *rowSaver) Save() (map[string]bq.Value, string, error) {
	if r.schema == ledger.SchemaExtended {
		return map[string]bq.Value{
			"recorded_date": r.cells[0],
			"chat_id":       r.cells[1],
			"username":      r.cells[2],
			"tx_type":       r.cells[3],
			"amount":        r.cells[4],
			"description":   r.cells[5],
		}, "", nil
	}
	return map[string]bq.Value{
		"recorded_date": r.cells[0],
		"tx_type":       r.cells[1],
		"amount":        r.cells[2],
		"description":   r.cells[3],
	}, "", nil
}
