package service

import (
	"testing"

	"github.com/juriscab/comptahub/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPostingDeltaDebitNormalAccounts(t *testing.T) {
	debit := decimal.NewFromInt(100)
	credit := decimal.Zero

	assert.True(t, decimal.NewFromInt(100).Equal(postingDelta(common.AccountTypeAsset, debit, credit)))
	assert.True(t, decimal.NewFromInt(100).Equal(postingDelta(common.AccountTypeExpense, debit, credit)))

	// a credit decreases a debit-normal account
	assert.True(t, decimal.NewFromInt(-100).Equal(postingDelta(common.AccountTypeAsset, credit, debit)))
	assert.True(t, decimal.NewFromInt(-100).Equal(postingDelta(common.AccountTypeExpense, credit, debit)))
}

func TestPostingDeltaCreditNormalAccounts(t *testing.T) {
	debit := decimal.Zero
	credit := decimal.NewFromInt(100)

	assert.True(t, decimal.NewFromInt(100).Equal(postingDelta(common.AccountTypeLiability, debit, credit)))
	assert.True(t, decimal.NewFromInt(100).Equal(postingDelta(common.AccountTypeRevenue, debit, credit)))

	// a debit decreases a credit-normal account
	assert.True(t, decimal.NewFromInt(-100).Equal(postingDelta(common.AccountTypeLiability, credit, debit)))
	assert.True(t, decimal.NewFromInt(-100).Equal(postingDelta(common.AccountTypeRevenue, credit, debit)))
}

func TestCheckLinesAcceptsBalancedEntry(t *testing.T) {
	lines := []LineParams{
		{AccountID: 1, Debit: decimal.NewFromInt(100000)},
		{AccountID: 2, Credit: decimal.NewFromInt(100000)},
	}
	assert.NoError(t, checkLines(lines))
}

func TestCheckLinesAcceptsSplitEntry(t *testing.T) {
	lines := []LineParams{
		{AccountID: 1, Debit: decimal.NewFromInt(60000)},
		{AccountID: 2, Debit: decimal.NewFromInt(40000)},
		{AccountID: 3, Credit: decimal.NewFromInt(100000)},
	}
	assert.NoError(t, checkLines(lines))
}

func TestCheckLinesToleratesRoundingNoise(t *testing.T) {
	lines := []LineParams{
		{AccountID: 1, Debit: decimal.RequireFromString("33.33")},
		{AccountID: 2, Debit: decimal.RequireFromString("66.66")},
		{AccountID: 3, Credit: decimal.RequireFromString("100.00")},
	}
	// off by exactly 0.01, inside the tolerance
	assert.NoError(t, checkLines(lines))
}

func TestCheckLinesRejectsUnbalancedEntry(t *testing.T) {
	lines := []LineParams{
		{AccountID: 1, Debit: decimal.RequireFromString("100.00")},
		{AccountID: 2, Credit: decimal.RequireFromString("99.98")},
	}
	err := checkLines(lines)
	assert.ErrorIs(t, err, ErrUnbalancedEntry)
}

func TestCheckLinesRejectsEmptyEntry(t *testing.T) {
	assert.ErrorIs(t, checkLines(nil), ErrUnbalancedEntry)
}

func TestCheckLinesRejectsNegativeAmounts(t *testing.T) {
	lines := []LineParams{
		{AccountID: 1, Debit: decimal.NewFromInt(-100)},
		{AccountID: 2, Credit: decimal.NewFromInt(-100)},
	}
	assert.ErrorIs(t, checkLines(lines), ErrUnbalancedEntry)
}

func TestCheckLinesRejectsLineWithBothSides(t *testing.T) {
	lines := []LineParams{
		{AccountID: 1, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
		{AccountID: 2},
	}
	assert.ErrorIs(t, checkLines(lines), ErrUnbalancedEntry)
}

func TestCheckLinesRejectsLineWithNeitherSide(t *testing.T) {
	lines := []LineParams{
		{AccountID: 1, Debit: decimal.NewFromInt(100)},
		{AccountID: 2},
		{AccountID: 3, Credit: decimal.NewFromInt(100)},
	}
	assert.ErrorIs(t, checkLines(lines), ErrUnbalancedEntry)
}
