package models

type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

type Predictions struct {
	NextWeekBalance  float64 `json:"nextWeekBalance"`
	NextMonthBalance float64 `json:"nextMonthBalance"`
	Trend            Trend   `json:"trend"`
	Summary          string  `json:"summary"`
}

// Score values are 0-100.
type Score struct {
	FinancialHealth    int     `json:"financialHealth"`
	SpendingDiscipline int     `json:"spendingDiscipline"`
	SavingsRate        int     `json:"savingsRate"`
	Volatility         float64 `json:"volatility"`
	Confidence         float64 `json:"confidence"`
}

type AnalysisReport struct {
	Analysis        string      `json:"analysis"`
	Recommendations string      `json:"recommendations"`
	Predictions     Predictions `json:"predictions"`
	Warnings        string      `json:"warnings"`
	Score           Score       `json:"score"`
}

// FallbackReport is substituted whenever the oracle's verdict fails validation.
func FallbackReport() *AnalysisReport {
	return &AnalysisReport{
		Analysis:        "Unable to parse AI response. Please try again.",
		Recommendations: "Check your transaction data and try the analysis again.",
		Predictions: Predictions{
			NextWeekBalance:  0,
			NextMonthBalance: 0,
			Trend:            TrendNeutral,
			Summary:          "Unable to generate predictions",
		},
		Warnings: "AI analysis failed. Please verify your data.",
		Score: Score{
			FinancialHealth:    50,
			SpendingDiscipline: 50,
			SavingsRate:        50,
			Volatility:         0,
			Confidence:         0,
		},
	}
}
