// Package reply builds the user-facing messages sent back over the chat
// transport. Every inbound text message gets exactly one of these.
package reply

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tx0095/moneyflow-bot/internal/domain"
)

const (
	// Usage is sent when the message carries no numeric token.
	Usage = "❌ Wrong format.\nExample: beli beras 1200"

	// WriteFailed is sent when the ledger store rejected the append. The
	// underlying error is logged, never shown to the user.
	WriteFailed = "❌ Failed to record the transaction, please try again later."
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with grouped digits, e.g. 1200 -> "1,200".
func FormatAmount(amount float64) string {
	return printer.Sprintf("%v", number.Decimal(amount))
}

// Confirmation echoes the recorded transaction back to the sender.
func Confirmation(rec domain.TransactionRecord, currencyPrefix string) string {
	msg := fmt.Sprintf("✅ Recorded %s %s%s", rec.Type, currencyPrefix, FormatAmount(rec.Amount))
	if rec.Description != "" {
		msg += ": " + rec.Description
	}
	return msg
}
