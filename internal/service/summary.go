package service

import (
	"sort"
	"time"

	"wealthease-ai/internal/models"
)

const (
	recentTransactionsShown = 30
	trendWindow             = 10
	trendThresholdPercent   = 10.0

	PatternIncreasing   = "Increasing spending"
	PatternDecreasing   = "Decreasing spending"
	PatternStable       = "Stable spending"
	PatternInsufficient = "Insufficient data"
)

type CategoryTotal struct {
	Category string
	Total    float64
}

// FinancialSummary is computed from the request payload alone.
type FinancialSummary struct {
	Name            string
	TotalBalance    float64
	MonthlyIncome   float64
	MonthlyExpenses float64
	SavingsRate     float64

	Recent               []models.Transaction
	TotalTransactions    int
	AverageTransaction   float64
	IncomeVsExpense      float64
	LargestExpense       float64
	MostFrequentCategory string
	SpendingPattern      string

	// Categories is ordered by total, largest first.
	Categories []CategoryTotal
}

// Summarize aggregates a history. Entries are ordered by date first (stable,
// undated entries sort earliest) so "recent" means recent in time rather than
// in payload order.
func Summarize(history []models.Transaction, profile models.UserProfile, now time.Time) *FinancialSummary {
	txs := sortByDate(history)

	s := &FinancialSummary{
		Name:                 profile.Name,
		TotalTransactions:    len(txs),
		MostFrequentCategory: "No data",
	}
	if s.Name == "" {
		s.Name = "User"
	}

	var (
		sum         float64
		expenses    []models.Transaction
		totals      = map[string]float64{}
		counts      = map[string]int{}
		firstSeenAt []string
	)

	for _, t := range txs {
		sum += t.Amount

		if t.IsIncome() {
			s.TotalBalance += t.Amount
		} else {
			s.TotalBalance -= t.Amount
		}

		if sameMonth(t, now) {
			switch {
			case t.IsIncome():
				s.MonthlyIncome += t.Amount
			case t.IsExpense():
				s.MonthlyExpenses += t.Amount
			}
		}

		if !t.IsExpense() {
			continue
		}
		expenses = append(expenses, t)
		if t.Amount > s.LargestExpense {
			s.LargestExpense = t.Amount
		}
		if _, seen := counts[t.Category]; !seen {
			firstSeenAt = append(firstSeenAt, t.Category)
		}
		counts[t.Category]++
		totals[t.Category] += t.Amount
	}

	if len(txs) > 0 {
		s.AverageTransaction = sum / float64(len(txs))
	}
	if s.MonthlyIncome > 0 {
		s.SavingsRate = (s.MonthlyIncome - s.MonthlyExpenses) * 100 / s.MonthlyIncome
		s.IncomeVsExpense = s.MonthlyExpenses * 100 / s.MonthlyIncome
	}

	best := 0
	for _, c := range firstSeenAt {
		if counts[c] > best {
			best = counts[c]
			s.MostFrequentCategory = c
		}
	}

	for _, c := range firstSeenAt {
		s.Categories = append(s.Categories, CategoryTotal{Category: c, Total: totals[c]})
	}
	sort.SliceStable(s.Categories, func(i, j int) bool {
		return s.Categories[i].Total > s.Categories[j].Total
	})

	s.SpendingPattern = SpendingPattern(expenses)

	if len(txs) > recentTransactionsShown {
		s.Recent = txs[len(txs)-recentTransactionsShown:]
	} else {
		s.Recent = txs
	}

	return s
}

// SpendingPattern compares the mean of the last ten expenses with the mean of
// the ten before them. Fewer than twenty expenses is not enough to judge.
func SpendingPattern(expenses []models.Transaction) string {
	if len(expenses) < 2*trendWindow {
		return PatternInsufficient
	}

	recent := mean(expenses[len(expenses)-trendWindow:])
	prior := mean(expenses[len(expenses)-2*trendWindow : len(expenses)-trendWindow])

	if prior == 0 {
		if recent > 0 {
			return PatternIncreasing
		}
		return PatternStable
	}

	change := (recent - prior) / prior * 100
	switch {
	case change > trendThresholdPercent:
		return PatternIncreasing
	case change < -trendThresholdPercent:
		return PatternDecreasing
	default:
		return PatternStable
	}
}

func mean(txs []models.Transaction) float64 {
	var total float64
	for _, t := range txs {
		total += t.Amount
	}
	return total / float64(len(txs))
}

func sameMonth(t models.Transaction, now time.Time) bool {
	d, ok := t.ParsedDate()
	if !ok {
		return false
	}
	return d.Year() == now.Year() && d.Month() == now.Month()
}

func sortByDate(history []models.Transaction) []models.Transaction {
	txs := make([]models.Transaction, len(history))
	copy(txs, history)

	sort.SliceStable(txs, func(i, j int) bool {
		di, _ := txs[i].ParsedDate()
		dj, _ := txs[j].ParsedDate()
		return di.Before(dj)
	})
	return txs
}
