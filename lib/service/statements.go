package service

import (
	"context"
	"time"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
	"github.com/shopspring/decimal"
)

// The statement generator is a pure read projection over account balances.
// Since drafts never touch balances, everything here reflects validated
// postings only.

type StatementRow struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
}

type BalanceSheet struct {
	Assets           []StatementRow  `json:"assets"`
	Liabilities      []StatementRow  `json:"liabilities"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetResult        decimal.Decimal `json:"net_result"`
	Balanced         bool            `json:"balanced"`
}

type IncomeStatement struct {
	Revenue      []StatementRow  `json:"revenue"`
	Expenses     []StatementRow  `json:"expenses"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Result       decimal.Decimal `json:"result"`
}

type TrialBalanceRow struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

type LedgerLine struct {
	TransactionID int64           `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
}

func (svc *ComptaService) BalanceSheet(ctx context.Context) (*BalanceSheet, error) {
	accounts, err := svc.ListAccounts(ctx, "")
	if err != nil {
		return nil, err
	}

	sheet := &BalanceSheet{
		Assets:      []StatementRow{},
		Liabilities: []StatementRow{},
	}
	totalRevenue := decimal.Zero
	totalExpense := decimal.Zero
	for _, account := range accounts {
		row := StatementRow{AccountCode: account.Code, AccountName: account.Name, Balance: account.Balance}
		switch account.Type {
		case common.AccountTypeAsset:
			sheet.Assets = append(sheet.Assets, row)
			sheet.TotalAssets = sheet.TotalAssets.Add(account.Balance)
		case common.AccountTypeLiability:
			sheet.Liabilities = append(sheet.Liabilities, row)
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(account.Balance)
		case common.AccountTypeRevenue:
			totalRevenue = totalRevenue.Add(account.Balance)
		case common.AccountTypeExpense:
			totalExpense = totalExpense.Add(account.Balance)
		}
	}
	sheet.NetResult = totalRevenue.Sub(totalExpense)
	// holds exactly when every validated entry balanced and every posting
	// used the right sign convention
	sheet.Balanced = sheet.TotalAssets.Equal(sheet.TotalLiabilities.Add(sheet.NetResult))
	return sheet, nil
}

func (svc *ComptaService) IncomeStatement(ctx context.Context) (*IncomeStatement, error) {
	statement := &IncomeStatement{
		Revenue:  []StatementRow{},
		Expenses: []StatementRow{},
	}

	revenueAccounts, err := svc.ListAccounts(ctx, common.AccountTypeRevenue)
	if err != nil {
		return nil, err
	}
	for _, account := range revenueAccounts {
		statement.Revenue = append(statement.Revenue, StatementRow{AccountCode: account.Code, AccountName: account.Name, Balance: account.Balance})
		statement.TotalRevenue = statement.TotalRevenue.Add(account.Balance)
	}

	expenseAccounts, err := svc.ListAccounts(ctx, common.AccountTypeExpense)
	if err != nil {
		return nil, err
	}
	for _, account := range expenseAccounts {
		statement.Expenses = append(statement.Expenses, StatementRow{AccountCode: account.Code, AccountName: account.Name, Balance: account.Balance})
		statement.TotalExpense = statement.TotalExpense.Add(account.Balance)
	}

	statement.Result = statement.TotalRevenue.Sub(statement.TotalExpense)
	return statement, nil
}

func (svc *ComptaService) TrialBalance(ctx context.Context) (*TrialBalance, error) {
	accounts, err := svc.ListAccounts(ctx, "")
	if err != nil {
		return nil, err
	}

	trialBalance := &TrialBalance{Rows: []TrialBalanceRow{}}
	for _, account := range accounts {
		row := TrialBalanceRow{
			AccountCode: account.Code,
			AccountName: account.Name,
			AccountType: account.Type,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		// a debit-normal account with a positive balance sits in the debit
		// column, and symmetrically for credit-normal accounts
		debitNormal := account.Type == common.AccountTypeAsset || account.Type == common.AccountTypeExpense
		switch {
		case debitNormal && !account.Balance.IsNegative():
			row.Debit = account.Balance
		case debitNormal:
			row.Credit = account.Balance.Neg()
		case account.Balance.IsNegative():
			row.Debit = account.Balance.Neg()
		default:
			row.Credit = account.Balance
		}
		trialBalance.Rows = append(trialBalance.Rows, row)
		trialBalance.TotalDebit = trialBalance.TotalDebit.Add(row.Debit)
		trialBalance.TotalCredit = trialBalance.TotalCredit.Add(row.Credit)
	}
	return trialBalance, nil
}

// AccountLedger returns the grand livre of one account: its validated
// lines in chronological order with a running balance.
func (svc *ComptaService) AccountLedger(ctx context.Context, accountID int64) ([]LedgerLine, error) {
	account, err := svc.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	lines := []models.TransactionLine{}
	err = svc.DB.NewSelect().
		Model(&lines).
		Relation("Transaction").
		Where("transaction_line.account_id = ?", accountID).
		Where("transaction.status = ?", common.TransactionStatusValidated).
		OrderExpr("transaction.date ASC, transaction_line.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	ledger := make([]LedgerLine, len(lines))
	running := decimal.Zero
	for i, line := range lines {
		running = running.Add(postingDelta(account.Type, line.Debit, line.Credit))
		ledger[i] = LedgerLine{
			TransactionID: line.TransactionID,
			Date:          line.Transaction.Date,
			Description:   line.Transaction.Description,
			Debit:         line.Debit,
			Credit:        line.Credit,
			Balance:       running,
		}
	}
	return ledger, nil
}
