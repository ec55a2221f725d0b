package service

import (
	"fmt"
	"strings"

	"wealthease-ai/internal/models"
	"wealthease-ai/pkg/config"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
}

// ChatReply is the display text together with the records it describes.
type ChatReply struct {
	Reply        string
	Transactions []models.ExtractedTransaction
	Multiple     bool
}

// Data is the single record, or the list when the oracle used the list shape.
func (r *ChatReply) Data() any {
	if r.Multiple {
		return r.Transactions
	}
	return r.Transactions[0]
}

type ReplyFormatter struct {
	printer *message.Printer
	symbol  string
	scale   int
}

func NewReplyFormatter(cfg config.ReplyConfig) (*ReplyFormatter, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid reply locale %q: %w", cfg.Locale, err)
	}

	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid reply currency %q: %w", cfg.Currency, err)
	}

	symbol, ok := currencySymbols[unit.String()]
	if !ok {
		symbol = unit.String() + " "
	}
	scale, _ := currency.Standard.Rounding(unit)

	return &ReplyFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
		scale:   scale,
	}, nil
}

// FormatAmount renders a currency amount with locale digit grouping.
func (f *ReplyFormatter) FormatAmount(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(int32(f.scale)).InexactFloat64()
	return f.symbol + f.printer.Sprintf("%v", number.Decimal(rounded,
		number.MinFractionDigits(f.scale),
		number.MaxFractionDigits(f.scale),
	))
}

// Format builds the confirmation text. The result must not be empty.
func (f *ReplyFormatter) Format(result models.ExtractionResult) *ChatReply {
	if !result.Multiple {
		tx := result.Transactions[0]
		return &ChatReply{
			Reply: fmt.Sprintf(`✅ %s recorded: "%s" for %s on %s.`,
				tx.Kind.Label(), tx.Description, f.FormatAmount(tx.Amount), tx.Date),
			Transactions: result.Transactions,
		}
	}

	lines := make([]string, 0, len(result.Transactions)+1)
	lines = append(lines, fmt.Sprintf("Recorded %d transactions:", len(result.Transactions)))
	for _, tx := range result.Transactions {
		lines = append(lines, fmt.Sprintf(`✅ %s: "%s" %s`, tx.Kind.Label(), tx.Description, f.FormatAmount(tx.Amount)))
	}

	return &ChatReply{
		Reply:        strings.Join(lines, "\n"),
		Transactions: result.Transactions,
		Multiple:     true,
	}
}
