package notionmirror

import (
	"testing"
	"time"

	"github.com/jomei/notionapi"

	"github.com/tx0095/moneyflow-bot/internal/domain"
)

func TestRecordToProperties(t *testing.T) {
	rec := domain.TransactionRecord{
		Type:        domain.TypeExpense,
		Amount:      1200,
		Description: "beli beras",
	}
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	props := recordToProperties(rec, at)

	title, ok := props["Description"].(notionapi.TitleProperty)
	if !ok {
		t.Fatal("Description is not a title property")
	}
	if got := title.Title[0].Text.Content; got != "beli beras" {
		t.Errorf("title = %q, want %q", got, "beli beras")
	}

	sel, ok := props["Type"].(notionapi.SelectProperty)
	if !ok {
		t.Fatal("Type is not a select property")
	}
	if sel.Select.Name != "Expense" {
		t.Errorf("type = %q, want %q", sel.Select.Name, "Expense")
	}

	num, ok := props["Amount"].(notionapi.NumberProperty)
	if !ok {
		t.Fatal("Amount is not a number property")
	}
	if num.Number != 1200 {
		t.Errorf("amount = %v, want 1200", num.Number)
	}

	if _, ok := props["Recorded"].(notionapi.DateProperty); !ok {
		t.Fatal("Recorded is not a date property")
	}
}

func TestRecordToProperties_EmptyDescription(t *testing.T) {
	rec := domain.TransactionRecord{
		Type:   domain.TypeIncome,
		Amount: 30000,
	}

	props := recordToProperties(rec, time.Now())

	title := props["Description"].(notionapi.TitleProperty)
	if got := title.Title[0].Text.Content; got != "Income" {
		t.Errorf("title fallback = %q, want %q", got, "Income")
	}
}
