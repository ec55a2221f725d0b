package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Label is the capitalised form used in replies.
func (k TransactionKind) Label() string {
	if k == KindIncome {
		return "Income"
	}
	return "Expense"
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentWallet PaymentMethod = "wallet"
)

// ExtractedTransaction is one record recovered from a chat message.
// Amount is always finite and positive.
type ExtractedTransaction struct {
	Kind          TransactionKind `json:"kind"`
	Description   string          `json:"description"`
	Amount        float64         `json:"amount"`
	Date          string          `json:"date"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// ExtractionResult keeps transactions in the order they were mentioned.
// Multiple is set when the oracle answered with the list shape.
type ExtractionResult struct {
	Transactions []ExtractedTransaction
	Multiple     bool
}

func (r ExtractionResult) Empty() bool {
	return len(r.Transactions) == 0
}

// Transaction is an entry of the history a client submits for analysis.
// Decoding is lenient: fields the analysis does not read are ignored, and
// amounts may arrive as numbers or numeric strings.
type Transaction struct {
	Date        string          `json:"date"`
	Type        TransactionKind `json:"type"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date        any `json:"date"`
		Type        any `json:"type"`
		Amount      any `json:"amount"`
		Category    any `json:"category"`
		Description any `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Transaction{
		Date:        textOf(raw.Date),
		Type:        TransactionKind(textOf(raw.Type)),
		Amount:      amountOf(raw.Amount),
		Category:    textOf(raw.Category),
		Description: textOf(raw.Description),
	}
	return nil
}

func textOf(v any) string {
	s, _ := v.(string)
	return s
}

// amountOf yields 0 for anything that is not a finite number.
func amountOf(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

func (t Transaction) IsIncome() bool {
	return strings.EqualFold(string(t.Type), string(KindIncome))
}

func (t Transaction) IsExpense() bool {
	return strings.EqualFold(string(t.Type), string(KindExpense))
}

// ParsedDate accepts plain dates and RFC 3339 timestamps.
func (t Transaction) ParsedDate() (time.Time, bool) {
	if d, err := time.Parse(DateLayout, t.Date); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, t.Date); err == nil {
		return d, true
	}
	return time.Time{}, false
}

type UserProfile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
