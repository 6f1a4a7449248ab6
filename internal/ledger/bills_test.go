package ledger

import (
	"time"

	"github.com/w-yuning/bookeeper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// categoryByKind returns the first seeded category of the given kind.
func (suite *LedgerTestSuite) categoryByKind(userID string, kind models.BillKind) models.Category {
	categories, err := suite.service.Categories(userID)
	require.NoError(suite.T(), err)
	for _, category := range categories {
		if category.Kind == kind {
			return category
		}
	}
	suite.T().Fatalf("no seeded category of kind %s", kind)
	return models.Category{}
}

func (suite *LedgerTestSuite) TestUpsertCategory() {
	id := suite.register("alice")

	created, err := suite.service.UpsertCategory(id, models.Category{Name: "books", Kind: models.KindExpense})
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), created.ID, "an id is assigned when absent")

	created.Name = "books & media"
	updated, err := suite.service.UpsertCategory(id, created)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), created.ID, updated.ID)

	categories, err := suite.service.Categories(id)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), categories, 6, "update replaces in place instead of appending")

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	assert.Contains(suite.T(), names, "books & media")
	assert.NotContains(suite.T(), names, "books")
}

func (suite *LedgerTestSuite) TestRemoveCategory() {
	id := suite.register("alice")
	category := suite.categoryByKind(id, models.KindExpense)

	_, err := suite.service.UpsertBill(id, models.Bill{
		Amount: 10, CategoryID: category.ID, Kind: models.KindExpense,
	})
	require.NoError(suite.T(), err)

	err = suite.service.RemoveCategory(id, category.ID)
	assert.ErrorIs(suite.T(), err, ErrCategoryInUse, "a referenced category cannot be removed")

	unused, err := suite.service.UpsertCategory(id, models.Category{Name: "fleeting", Kind: models.KindExpense})
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.service.RemoveCategory(id, unused.ID))

	// Removing an id that never existed is a silent no-op.
	require.NoError(suite.T(), suite.service.RemoveCategory(id, "no-such-category"))

	categories, err := suite.service.Categories(id)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), categories, 5)
}

func (suite *LedgerTestSuite) TestUpsertBillFillsIDAndTimestamp() {
	id := suite.register("alice")
	category := suite.categoryByKind(id, models.KindExpense)

	before := time.Now().Add(-time.Second)
	bill, err := suite.service.UpsertBill(id, models.Bill{
		Amount: 20, CategoryID: category.ID, Note: "lunch", Kind: models.KindExpense,
	})
	require.NoError(suite.T(), err)

	assert.NotEmpty(suite.T(), bill.ID)
	assert.False(suite.T(), bill.Timestamp.IsZero())
	assert.True(suite.T(), bill.Timestamp.After(before))
}

func (suite *LedgerTestSuite) TestUpsertBillRequiresExistingCategory() {
	id := suite.register("alice")

	_, err := suite.service.UpsertBill(id, models.Bill{
		Amount: 20, CategoryID: "no-such-category", Kind: models.KindExpense,
	})
	assert.ErrorIs(suite.T(), err, ErrCategoryNotFound)

	bills, err := suite.service.Bills(id)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), bills)
}

func (suite *LedgerTestSuite) TestUpsertBillReplacesByID() {
	id := suite.register("alice")
	category := suite.categoryByKind(id, models.KindExpense)

	bill, err := suite.service.UpsertBill(id, models.Bill{
		Amount: 20, CategoryID: category.ID, Note: "lunch", Kind: models.KindExpense,
	})
	require.NoError(suite.T(), err)

	bill.Amount = 25
	_, err = suite.service.UpsertBill(id, bill)
	require.NoError(suite.T(), err)

	bills, err := suite.service.Bills(id)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), bills, 1)
	assert.Equal(suite.T(), 25.0, bills[0].Amount)
}

func (suite *LedgerTestSuite) TestRemoveBillNotFound() {
	id := suite.register("alice")
	category := suite.categoryByKind(id, models.KindExpense)

	_, err := suite.service.UpsertBill(id, models.Bill{
		Amount: 20, CategoryID: category.ID, Kind: models.KindExpense,
	})
	require.NoError(suite.T(), err)

	err = suite.service.RemoveBill(id, "no-such-bill")
	assert.ErrorIs(suite.T(), err, ErrBillNotFound)

	bills, err := suite.service.Bills(id)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), bills, 1, "a failed removal leaves the collection unchanged")
}

func (suite *LedgerTestSuite) TestRemoveBill() {
	id := suite.register("alice")
	category := suite.categoryByKind(id, models.KindExpense)

	bill, err := suite.service.UpsertBill(id, models.Bill{
		Amount: 20, CategoryID: category.ID, Kind: models.KindExpense,
	})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.RemoveBill(id, bill.ID))

	bills, err := suite.service.Bills(id)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), bills)
}

func (suite *LedgerTestSuite) TestTotals() {
	id := suite.register("alice")
	expense := suite.categoryByKind(id, models.KindExpense)
	income := suite.categoryByKind(id, models.KindIncome)

	_, err := suite.service.UpsertBill(id, models.Bill{
		Amount: 20, CategoryID: expense.ID, Kind: models.KindExpense,
	})
	require.NoError(suite.T(), err)
	_, err = suite.service.UpsertBill(id, models.Bill{
		Amount: 50, CategoryID: income.ID, Kind: models.KindIncome,
	})
	require.NoError(suite.T(), err)

	totalExpense, err := suite.service.TotalExpense(id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 20.0, totalExpense)

	totalIncome, err := suite.service.TotalIncome(id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 50.0, totalIncome)
}

func (suite *LedgerTestSuite) TestTotalsStayExactOverCents() {
	id := suite.register("alice")
	expense := suite.categoryByKind(id, models.KindExpense)

	// 0.1+0.2+0.3 drifts under naive float64 accumulation.
	for _, amount := range []float64{0.1, 0.2, 0.3} {
		_, err := suite.service.UpsertBill(id, models.Bill{
			Amount: amount, CategoryID: expense.ID, Kind: models.KindExpense,
		})
		require.NoError(suite.T(), err)
	}

	total, err := suite.service.TotalExpense(id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.6, total)
}

func (suite *LedgerTestSuite) TestSummarizeByCategory() {
	id := suite.register("alice")
	expense := suite.categoryByKind(id, models.KindExpense)
	income := suite.categoryByKind(id, models.KindIncome)

	_, err := suite.service.UpsertBill(id, models.Bill{
		Amount: 12.5, CategoryID: expense.ID, Kind: models.KindExpense,
	})
	require.NoError(suite.T(), err)
	_, err = suite.service.UpsertBill(id, models.Bill{
		Amount: 7.5, CategoryID: expense.ID, Kind: models.KindExpense,
	})
	require.NoError(suite.T(), err)
	_, err = suite.service.UpsertBill(id, models.Bill{
		Amount: 100, CategoryID: income.ID, Kind: models.KindIncome,
	})
	require.NoError(suite.T(), err)

	summaries, err := suite.service.SummarizeByCategory(id)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), summaries, 5, "one summary per category, bills or not")

	byID := make(map[string]CategorySummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.CategoryID] = summary
	}

	assert.Equal(suite.T(), 20.0, byID[expense.ID].Expense)
	assert.Equal(suite.T(), 0.0, byID[expense.ID].Income)
	assert.Equal(suite.T(), 100.0, byID[income.ID].Income)

	for _, summary := range summaries {
		if summary.CategoryID == expense.ID || summary.CategoryID == income.ID {
			continue
		}
		assert.Zero(suite.T(), summary.Income)
		assert.Zero(suite.T(), summary.Expense)
	}
}
