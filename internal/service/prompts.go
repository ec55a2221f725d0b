package service

import (
	"fmt"
	"strings"
	"time"

	"wealthease-ai/internal/models"
)

// AnalysisSystemPrompt frames the oracle for the financial-health report.
const AnalysisSystemPrompt = "You are a professional financial advisor AI. Analyze transaction data and provide detailed, actionable insights. Always respond with valid JSON format as requested."

// ConnectivityProbePrompt asks for a fixed sentence; used by the test endpoint.
const ConnectivityProbePrompt = "Respond with: 'OpenAI integration is working correctly'"

// MultiTransactionSeparators split one chat message into several records.
var MultiTransactionSeparators = []string{"and", "dan", "also", "juga", ",", "terus", "lalu", "then"}

// BuildExtractionPrompt renders the extraction instruction for the given day.
// The date is recomputed by the caller on every request.
func BuildExtractionPrompt(today time.Time) string {
	d := today.Format(models.DateLayout)

	quoted := make([]string, len(MultiTransactionSeparators))
	for i, sep := range MultiTransactionSeparators {
		quoted[i] = `"` + sep + `"`
	}

	return fmt.Sprintf(`You are a financial assistant helping to extract transaction data from user messages.
You MUST understand BOTH Indonesian (Bahasa Indonesia) and English.

Extract the following information from user messages:
1. Transaction kind (income/expense) - detect from context
2. Transaction description
3. Amount in USD (extract numbers, handle formats like: $50, 50, 50 dollars, $1,234.56)
4. Transaction date (use TODAY'S DATE: %[1]s if not mentioned)
5. Payment method (cash/wallet) - detect from keywords

BILINGUAL SUPPORT - INDONESIAN & ENGLISH:

INCOME keywords (pemasukan):
- English: salary, bonus, income, received, earned, paid to me, gift received, got, receive, earnings
- Indonesian: gaji, bonus, pemasukan, terima, dapat, diterima, hadiah, dibayar, pendapatan, dapet, nerima, masuk

EXPENSE keywords (pengeluaran):
- English: bought, buy, paid, pay, paying, spent, spend, spending, bill, purchase, cost, expense, give, gave
- Indonesian: beli, bayar, belanja, buat, untuk, keluar, pengeluaran, tagihan, biaya, kasih, ngasih, buat beli

PAYMENT METHOD detection:
- CASH: cash, tunai, uang tunai, uang cash, ke cash ku, pakai tunai, bayar tunai
- WALLET: wallet, dompet digital, gopay, ovo, dana, shopeepay, card, kartu, debit, credit, online, transfer, bank, ke wallet ku, digital wallet
- Default to "wallet" when no cash keyword is present

MULTIPLE TRANSACTIONS:
- The user can send MULTIPLE transactions in one message
- Separators: %[2]s
- Extract EACH transaction separately, in the order they are mentioned
- Use the "transactions" list shape when more than one transaction is detected
- Use the single object shape when only one transaction is detected

Important rules:
- Remove all currency symbols and formatting ($ , commas)
- Convert amount to a plain number (e.g., "$1,234.56" becomes 1234.56)
- "bayar" or "paid" without "ke aku/to me" = expense (the user is paying someone)
- "dibayar ke aku" or "paid to me" = income (someone is paying the user)
- Default to "expense" if unclear
- ALWAYS use TODAY'S DATE (%[1]s) unless a date is explicitly mentioned
- Translate Indonesian descriptions to English in the output

Return data in JSON format:

FOR A SINGLE TRANSACTION:
{
    "kind": "income" or "expense",
    "description": "transaction description in English (translate if Indonesian)",
    "amount": number_without_currency,
    "date": "YYYY-MM-DD",
    "paymentMethod": "cash" or "wallet"
}

FOR MULTIPLE TRANSACTIONS:
{
    "transactions": [
        {
            "kind": "income" or "expense",
            "description": "transaction description in English",
            "amount": number_without_currency,
            "date": "YYYY-MM-DD",
            "paymentMethod": "cash" or "wallet"
        }
    ]
}

Examples (English):
- "Bought coffee $5 with cash" → {"kind": "expense", "description": "Bought coffee", "amount": 5, "date": "%[1]s", "paymentMethod": "cash"}
- "i paid bill $100 and got salary $150" → {"transactions": [{"kind": "expense", "description": "paid bill", "amount": 100, "date": "%[1]s", "paymentMethod": "wallet"}, {"kind": "income", "description": "got salary", "amount": 150, "date": "%[1]s", "paymentMethod": "wallet"}]}

Examples (Indonesian):
- "beli kopi 5 dolar pakai tunai" → {"kind": "expense", "description": "bought coffee", "amount": 5, "date": "%[1]s", "paymentMethod": "cash"}
- "aku bayar tagihan 100 dan dapat gaji 150" → {"transactions": [{"kind": "expense", "description": "paid bill", "amount": 100, "date": "%[1]s", "paymentMethod": "wallet"}, {"kind": "income", "description": "received salary", "amount": 150, "date": "%[1]s", "paymentMethod": "wallet"}]}
- "belanja groceries 50 pake cash, terus dapet bonus 200 ke wallet" → {"transactions": [{"kind": "expense", "description": "bought groceries", "amount": 50, "date": "%[1]s", "paymentMethod": "cash"}, {"kind": "income", "description": "received bonus", "amount": 200, "date": "%[1]s", "paymentMethod": "wallet"}]}
- "bayar mobil 15000 ke digital wallet" → {"kind": "expense", "description": "paid for car", "amount": 15000, "date": "%[1]s", "paymentMethod": "wallet"}
- "nerima gaji 3000 tunai" → {"kind": "income", "description": "received salary", "amount": 3000, "date": "%[1]s", "paymentMethod": "cash"}

If you cannot extract transaction data, return empty JSON: {}`, d, strings.Join(quoted, ", "))
}

// BuildAnalysisPrompt serializes the summary as readable lines. The oracle
// reads prose better than nested JSON, so only the answer shape is JSON.
func BuildAnalysisPrompt(s *FinancialSummary) string {
	var b strings.Builder

	b.WriteString("Analyze this financial data and provide comprehensive insights:\n\n")

	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", s.Name)
	fmt.Fprintf(&b, "- Current Balance: $%.2f\n", s.TotalBalance)
	fmt.Fprintf(&b, "- Monthly Income: $%.2f\n", s.MonthlyIncome)
	fmt.Fprintf(&b, "- Monthly Expenses: $%.2f\n", s.MonthlyExpenses)
	fmt.Fprintf(&b, "- Savings Rate: %.1f%%\n\n", s.SavingsRate)

	fmt.Fprintf(&b, "RECENT TRANSACTIONS (Last %d):\n", len(s.Recent))
	for _, t := range s.Recent {
		desc := t.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(&b, "- %s: %s $%.2f (%s) - %s\n", t.Date, strings.ToUpper(string(t.Type)), t.Amount, t.Category, desc)
	}

	b.WriteString("\nFINANCIAL ANALYSIS:\n")
	fmt.Fprintf(&b, "- Total Transactions: %d\n", s.TotalTransactions)
	fmt.Fprintf(&b, "- Average Transaction: $%.2f\n", s.AverageTransaction)
	fmt.Fprintf(&b, "- Income vs Expense Ratio: %.1f%%\n", s.IncomeVsExpense)
	fmt.Fprintf(&b, "- Largest Single Expense: $%.2f\n", s.LargestExpense)
	fmt.Fprintf(&b, "- Most Frequent Category: %s\n", s.MostFrequentCategory)
	fmt.Fprintf(&b, "- Spending Pattern: %s\n", s.SpendingPattern)

	b.WriteString("\nSPENDING CATEGORIES BREAKDOWN:\n")
	for _, c := range s.Categories {
		fmt.Fprintf(&b, "- %s: $%.2f\n", c.Category, c.Total)
	}

	b.WriteString(`
Please provide a comprehensive analysis in JSON format with these exact keys:
{
    "analysis": "Detailed analysis of spending patterns, financial health, and trends",
    "recommendations": "Specific actionable recommendations for improving financial health",
    "predictions": {
        "nextWeekBalance": estimated_balance_next_week,
        "nextMonthBalance": estimated_balance_next_month,
        "trend": "bullish/bearish/neutral",
        "summary": "Brief summary of future financial outlook"
    },
    "warnings": "Any financial warnings or red flags",
    "score": {
        "financialHealth": score_out_of_100,
        "spendingDiscipline": score_out_of_100,
        "savingsRate": score_out_of_100,
        "volatility": volatility_percentage,
        "confidence": confidence_percentage
    }
}

Focus on:
1. Spending pattern analysis and trends
2. Budget optimization recommendations
3. Financial health assessment
4. Future balance predictions based on current trends
5. Specific actionable advice for improvement
6. Risk assessment and warnings

Be specific, actionable, and provide concrete numbers for predictions.`)

	return b.String()
}
