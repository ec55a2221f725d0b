package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"wealthease-ai/internal/models"

	"github.com/shopspring/decimal"
)

var requiredReportFields = []string{"analysis", "recommendations", "predictions", "warnings", "score"}

// ParseAnalysisReport validates the oracle's verdict. On any failure it
// returns the fallback report together with the reason; a report is never
// patched field by field.
func ParseAnalysisReport(raw string) (*models.AnalysisReport, error) {
	payload, err := RecoverJSON(raw)
	if err != nil {
		return models.FallbackReport(), err
	}

	for _, field := range requiredReportFields {
		if !present(payload[field]) {
			return models.FallbackReport(), fmt.Errorf("%w: missing required field %q", ErrMalformedResponse, field)
		}
	}

	predictions, ok := payload["predictions"].(map[string]any)
	if !ok {
		return models.FallbackReport(), fmt.Errorf("%w: predictions is not an object", ErrMalformedResponse)
	}
	score, ok := payload["score"].(map[string]any)
	if !ok {
		return models.FallbackReport(), fmt.Errorf("%w: score is not an object", ErrMalformedResponse)
	}

	return &models.AnalysisReport{
		Analysis:        asText(payload["analysis"]),
		Recommendations: asText(payload["recommendations"]),
		Warnings:        asText(payload["warnings"]),
		Predictions: models.Predictions{
			NextWeekBalance:  coerceNumber(predictions["nextWeekBalance"]),
			NextMonthBalance: coerceNumber(predictions["nextMonthBalance"]),
			Trend:            coerceTrend(predictions["trend"]),
			Summary:          asText(predictions["summary"]),
		},
		Score: models.Score{
			FinancialHealth:    percentScore(score["financialHealth"]),
			SpendingDiscipline: percentScore(score["spendingDiscipline"]),
			SavingsRate:        percentScore(score["savingsRate"]),
			Volatility:         clampPercent(coerceNumber(score["volatility"])),
			Confidence:         clampPercent(coerceNumber(score["confidence"])),
		},
	}, nil
}

// present treats empty strings, zero, false and null as absent.
func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	case float64:
		return val != 0
	default:
		return true
	}
}

func asText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, asText(item))
		}
		return strings.Join(parts, "\n")
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// coerceNumber is CoerceAmount without the positivity rule: balances may be
// negative and unparseable values become zero.
func coerceNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return val
	case string:
		match := leadingNumber.FindString(nonNumericPattern.ReplaceAllString(val, ""))
		if match == "" {
			return 0
		}
		d, err := decimal.NewFromString(match)
		if err != nil {
			return 0
		}
		return d.InexactFloat64()
	default:
		return 0
	}
}

func coerceTrend(v any) models.Trend {
	s, _ := v.(string)
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "bull"):
		return models.TrendBullish
	case strings.Contains(s, "bear"):
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

func clampPercent(f float64) float64 {
	return math.Max(0, math.Min(100, f))
}

func percentScore(v any) int {
	return int(math.Round(clampPercent(coerceNumber(v))))
}
