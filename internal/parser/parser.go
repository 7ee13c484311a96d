// Package parser turns a free-form transaction message into a structured
// TransactionRecord. It is a pure function over the message text: no clock,
// no I/O, no state.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tx0095/moneyflow-bot/internal/domain"
)

// ErrNoAmount is returned when the message contains no numeric token at all.
// Callers should answer with a usage example rather than log this as a fault.
var ErrNoAmount = errors.New("no numeric token in message")

// incomeKeywords mark a message as income when any of them occurs anywhere in
// the text, case-insensitively. Everything else is an expense.
var incomeKeywords = []string{"gaji", "jual", "terima"}

// amountPattern matches a run of digits with an optional fractional part.
// Currency symbols never match, so no stripping is needed afterwards.
var amountPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Parse classifies text and extracts the transaction amount.
//
// When a message carries several numbers (a quantity and a price, say) the
// last one wins: trailing numbers in natural phrasing are more often the
// monetary value than leading counts. This is a known heuristic, not a
// guarantee.
func Parse(text string) (domain.TransactionRecord, error) {
	matches := amountPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return domain.TransactionRecord{}, ErrNoAmount
	}
	token := matches[len(matches)-1]

	amount, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("Parse: parsing amount %q: %w", token, err)
	}

	txType := domain.TypeExpense
	lower := strings.ToLower(text)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			txType = domain.TypeIncome
			break
		}
	}

	// Drop the first occurrence of the selected token and collapse the
	// whitespace the removal leaves behind. An empty description is valid.
	description := strings.Join(strings.Fields(strings.Replace(text, token, "", 1)), " ")

	return domain.TransactionRecord{
		Type:        txType,
		Amount:      amount,
		Description: description,
	}, nil
}
