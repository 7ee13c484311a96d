// Package notionmirror copies each recorded transaction into a Notion
// database as a secondary, best-effort sink. The Sheets (or BigQuery) ledger
// stays the source of truth; a mirror failure is logged and never surfaced to
// the sender.
package notionmirror

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/tx0095/moneyflow-bot/internal/domain"
)

// Mirror writes transaction pages into one Notion database.
type Mirror struct {
	client     *notionapi.Client
	databaseID string
}

// New creates a Mirror for the given integration token and database.
func New(token, databaseID string) *Mirror {
	return &Mirror{
		client:     notionapi.NewClient(notionapi.Token(token)),
		databaseID: databaseID,
	}
}

// Record creates one page for the transaction.
func (m *Mirror) Record(ctx context.Context, rec domain.TransactionRecord, recordedAt time.Time) error {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(m.databaseID),
		},
		Properties: recordToProperties(rec, recordedAt),
	}

	if _, err := m.client.Page.Create(ctx, req); err != nil {
		return fmt.Errorf("Record: creating page: %w", err)
	}
	return nil
}

// recordToProperties maps a transaction onto the mirror database's columns:
// Description (title), Type (select), Amount (number), Recorded (date).
func recordToProperties(rec domain.TransactionRecord, recordedAt time.Time) notionapi.Properties {
	title := rec.Description
	if title == "" {
		title = string(rec.Type)
	}

	date := notionapi.Date(recordedAt)

	return notionapi.Properties{
		"Description": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{Content: title},
				},
			},
		},
		"Type": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(rec.Type)},
		},
		"Amount": notionapi.NumberProperty{
			Number: rec.Amount,
		},
		"Recorded": notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &date},
		},
	}
}
