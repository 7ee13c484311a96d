package domain

// TxType classifies a transaction as money in or money out.
type TxType string

const (
	TypeIncome  TxType = "Income"
	TypeExpense TxType = "Expense"
)

// TransactionRecord is one classified chat message, ready to be written as a
// ledger row. It is ephemeral: only its fields are persisted, never the struct
// itself. The recording date is stamped by the ledger writer at append time,
// not carried here.
type TransactionRecord struct {
	Type        TxType
	Amount      float64 // non-negative magnitude extracted from the message
	Description string  // message text with the amount token removed; may be empty

	// Contextual fields, populated by the transport layer when the extended
	// ledger schema is in use.
	ChatID   int64
	Username string
}
