package reply

import (
	"strings"
	"testing"

	"github.com/tx0095/moneyflow-bot/internal/domain"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1200, "1,200"},
		{30000, "30,000"},
		{250000, "250,000"},
		{500, "500"},
		{2.5, "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatAmount(tt.amount)
			if got != tt.want {
				t.Errorf("FormatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestConfirmation(t *testing.T) {
	rec := domain.TransactionRecord{
		Type:        domain.TypeExpense,
		Amount:      1200,
		Description: "beli beras",
	}

	msg := Confirmation(rec, "Rp")

	if !strings.Contains(msg, "Expense") {
		t.Errorf("Confirmation missing type: %q", msg)
	}
	if !strings.Contains(msg, "Rp1,200") {
		t.Errorf("Confirmation missing formatted amount: %q", msg)
	}
	if !strings.Contains(msg, "beli beras") {
		t.Errorf("Confirmation missing description: %q", msg)
	}
}

func TestConfirmation_EmptyDescription(t *testing.T) {
	rec := domain.TransactionRecord{
		Type:   domain.TypeIncome,
		Amount: 30000,
	}

	msg := Confirmation(rec, "Rp")

	if !strings.Contains(msg, "Income") {
		t.Errorf("Confirmation missing type: %q", msg)
	}
	if strings.HasSuffix(msg, ":") || strings.HasSuffix(msg, ": ") {
		t.Errorf("Confirmation has dangling separator: %q", msg)
	}
}
