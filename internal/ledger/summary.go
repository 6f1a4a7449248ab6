package ledger

import (
	"fmt"

	"github.com/w-yuning/bookeeper/internal/models"

	"github.com/shopspring/decimal"
)

// CategorySummary is one category's running income and expense totals.
type CategorySummary struct {
	CategoryID string
	Name       string
	Income     float64
	Expense    float64
}

// SummarizeByCategory produces one summary per existing category and
// folds every bill's amount into its category total. Bills referencing a
// category that no longer exists are skipped.
//
// Amounts are accumulated as decimals so that sums over cent values stay
// exact, and converted back to float64 at the boundary.
func (s *Service) SummarizeByCategory(userID string) ([]CategorySummary, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	summaries := make([]CategorySummary, len(data.Categories))
	index := make(map[string]int, len(data.Categories))
	for i, category := range data.Categories {
		summaries[i] = CategorySummary{CategoryID: category.ID, Name: category.Name}
		if _, seen := index[category.ID]; !seen {
			index[category.ID] = i
		}
	}

	incomes := make([]decimal.Decimal, len(summaries))
	expenses := make([]decimal.Decimal, len(summaries))
	for _, bill := range data.Bills {
		i, ok := index[bill.CategoryID]
		if !ok {
			continue
		}
		amount := decimal.NewFromFloat(bill.Amount)
		if bill.Kind == models.KindIncome {
			incomes[i] = incomes[i].Add(amount)
		} else {
			expenses[i] = expenses[i].Add(amount)
		}
	}

	for i := range summaries {
		summaries[i].Income = incomes[i].InexactFloat64()
		summaries[i].Expense = expenses[i].InexactFloat64()
	}
	return summaries, nil
}

// TotalIncome sums the amounts of all income bills.
func (s *Service) TotalIncome(userID string) (float64, error) {
	return s.totalByKind(userID, models.KindIncome)
}

// TotalExpense sums the amounts of all expense bills.
func (s *Service) TotalExpense(userID string) (float64, error) {
	return s.totalByKind(userID, models.KindExpense)
}

func (s *Service) totalByKind(userID string, kind models.BillKind) (float64, error) {
	data, err := s.store.LoadUser(userID)
	if err != nil {
		return 0, fmt.Errorf("load user: %w", err)
	}

	total := decimal.Zero
	for _, bill := range data.Bills {
		if bill.Kind == kind {
			total = total.Add(decimal.NewFromFloat(bill.Amount))
		}
	}
	return total.InexactFloat64(), nil
}
