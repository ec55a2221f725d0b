package service

import (
	"math"
	"regexp"
	"strings"
	"time"

	"wealthease-ai/internal/models"

	"github.com/shopspring/decimal"
)

var (
	nonNumericPattern = regexp.MustCompile(`[^0-9.\-]+`)
	leadingNumber     = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// Field aliases: the English names the prompt asks for first, then the
// Indonesian names older prompts produced.
var (
	kindFields        = []string{"kind", "tipe", "type"}
	descriptionFields = []string{"description", "deskripsi"}
	amountFields      = []string{"amount", "jumlah"}
	dateFields        = []string{"date", "tanggal"}
	paymentFields     = []string{"paymentMethod", "payment_method"}
)

// NormalizeExtraction turns a recovered payload into transactions. A
// "transactions" list wins when at least one element survives; otherwise the
// payload itself is tried as a single record.
func NormalizeExtraction(payload map[string]any, today time.Time) models.ExtractionResult {
	day := today.Format(models.DateLayout)

	if items, ok := payload["transactions"].([]any); ok {
		var valid []models.ExtractedTransaction
		for _, item := range items {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if tx, ok := normalizeRecord(record, day); ok {
				valid = append(valid, tx)
			}
		}
		if len(valid) > 0 {
			return models.ExtractionResult{Transactions: valid, Multiple: true}
		}
	}

	if tx, ok := normalizeRecord(payload, day); ok {
		return models.ExtractionResult{Transactions: []models.ExtractedTransaction{tx}}
	}

	return models.ExtractionResult{}
}

func normalizeRecord(record map[string]any, day string) (models.ExtractedTransaction, bool) {
	kind, ok := coerceKind(lookup(record, kindFields))
	if !ok {
		return models.ExtractedTransaction{}, false
	}

	amount, ok := CoerceAmount(lookup(record, amountFields))
	if !ok {
		return models.ExtractedTransaction{}, false
	}

	description, _ := lookup(record, descriptionFields).(string)

	return models.ExtractedTransaction{
		Kind:          kind,
		Description:   strings.TrimSpace(sanitizeUTF8(description)),
		Amount:        amount,
		Date:          coerceDate(lookup(record, dateFields), day),
		PaymentMethod: coercePaymentMethod(lookup(record, paymentFields)),
	}, true
}

func lookup(record map[string]any, names []string) any {
	for _, name := range names {
		if v, ok := record[name]; ok && v != nil {
			return v
		}
	}
	return nil
}

// CoerceAmount accepts JSON numbers and loosely formatted strings. Strings
// are stripped of everything except digits, '.' and '-' and the leading
// number is parsed. Only finite values above zero are accepted.
func CoerceAmount(v any) (float64, bool) {
	var amount float64

	switch val := v.(type) {
	case float64:
		amount = val
	case string:
		cleaned := nonNumericPattern.ReplaceAllString(val, "")
		match := leadingNumber.FindString(cleaned)
		if match == "" {
			return 0, false
		}
		d, err := decimal.NewFromString(match)
		if err != nil {
			return 0, false
		}
		amount = d.InexactFloat64()
	default:
		return 0, false
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// coerceKind treats anything that is not an income word as an expense,
// matching the "default to expense" rule given to the oracle.
func coerceKind(v any) (models.TransactionKind, bool) {
	s, _ := v.(string)
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}

	switch s {
	case "income", "pemasukan":
		return models.KindIncome, true
	default:
		return models.KindExpense, true
	}
}

func coerceDate(v any, day string) string {
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return day
	}
	if d, err := time.Parse(models.DateLayout, s); err == nil {
		return d.Format(models.DateLayout)
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d.Format(models.DateLayout)
	}
	return day
}

func coercePaymentMethod(v any) models.PaymentMethod {
	s, _ := v.(string)
	s = strings.ToLower(s)
	if strings.Contains(s, "cash") || strings.Contains(s, "tunai") {
		return models.PaymentCash
	}
	return models.PaymentWallet
}
