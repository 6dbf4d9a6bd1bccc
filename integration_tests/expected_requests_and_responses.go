package integration_tests

import "github.com/shopspring/decimal"

type ExpectedCreateAccountRequestBody struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ExpectedAccountResponseBody struct {
	ID      int64           `json:"id"`
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

type ExpectedCreateJournalRequestBody struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ExpectedJournalResponseBody struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ExpectedTransactionLineRequestBody struct {
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

type ExpectedCreateTransactionRequestBody struct {
	Description  string                               `json:"description"`
	Date         string                               `json:"date"`
	JournalID    int64                                `json:"journal_id"`
	FiscalYearID int64                                `json:"fiscal_year_id,omitempty"`
	Validate     bool                                 `json:"validate"`
	Lines        []ExpectedTransactionLineRequestBody `json:"lines"`
}

type ExpectedTransactionLineResponseBody struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

type ExpectedTransactionResponseBody struct {
	ID           int64                                 `json:"id"`
	Description  string                                `json:"description"`
	Date         string                                `json:"date"`
	Status       string                                `json:"status"`
	JournalID    int64                                 `json:"journal_id"`
	FiscalYearID int64                                 `json:"fiscal_year_id"`
	Lines        []ExpectedTransactionLineResponseBody `json:"lines"`
}

type ExpectedValidateJournalResponseBody struct {
	JournalID int64 `json:"journal_id"`
	Validated int   `json:"validated"`
}

type ExpectedCreateTierRequestBody struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Code string `json:"code,omitempty"`
}

type ExpectedCreateFiscalYearRequestBody struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Current   bool   `json:"current"`
}

type ExpectedFiscalYearResponseBody struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsCurrent bool   `json:"is_current"`
	Status    string `json:"status"`
}

type ExpectedBalanceSheetResponseBody struct {
	Assets           []ExpectedStatementRow `json:"assets"`
	Liabilities      []ExpectedStatementRow `json:"liabilities"`
	TotalAssets      decimal.Decimal        `json:"total_assets"`
	TotalLiabilities decimal.Decimal        `json:"total_liabilities"`
	NetResult        decimal.Decimal        `json:"net_result"`
	Balanced         bool                   `json:"balanced"`
}

type ExpectedStatementRow struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
}

type ExpectedIncomeStatementResponseBody struct {
	Revenue      []ExpectedStatementRow `json:"revenue"`
	Expenses     []ExpectedStatementRow `json:"expenses"`
	TotalRevenue decimal.Decimal        `json:"total_revenue"`
	TotalExpense decimal.Decimal        `json:"total_expense"`
	Result       decimal.Decimal        `json:"result"`
}

type ExpectedTrialBalanceResponseBody struct {
	Rows        []ExpectedTrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
}

type ExpectedTrialBalanceRow struct {
	AccountCode string          `json:"account_code"`
	AccountType string          `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
