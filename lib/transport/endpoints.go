package transport

import (
	"github.com/juriscab/comptahub/controllers"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.ComptaService, e *echo.Echo, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	accountCtrl := controllers.NewAccountController(svc)
	journalCtrl := controllers.NewJournalController(svc)
	transactionCtrl := controllers.NewTransactionController(svc)
	tierCtrl := controllers.NewTierController(svc)
	statementCtrl := controllers.NewStatementController(svc)
	fiscalYearCtrl := controllers.NewFiscalYearController(svc)

	e.GET("/health", controllers.NewHealthController().Check)

	e.POST("/v1/accounts", accountCtrl.CreateAccount, logMw)
	e.GET("/v1/accounts", accountCtrl.ListAccounts, logMw)
	e.GET("/v1/accounts/:id", accountCtrl.GetAccount, logMw)
	e.GET("/v1/accounts/:id/ledger", accountCtrl.GetAccountLedger, logMw)

	e.POST("/v1/journals", journalCtrl.CreateJournal, logMw)
	e.GET("/v1/journals", journalCtrl.ListJournals, logMw)
	e.GET("/v1/journals/:id/drafts", transactionCtrl.ListJournalDrafts, logMw)
	// posting mutates balances, keep it behind the tighter limit
	e.POST("/v1/journals/:id/validate", transactionCtrl.ValidateJournal, strictRateLimitMiddleware, logMw)

	e.POST("/v1/transactions", transactionCtrl.CreateTransaction, strictRateLimitMiddleware, logMw)
	e.GET("/v1/transactions", transactionCtrl.ListTransactions, logMw)

	e.POST("/v1/tiers", tierCtrl.CreateTier, logMw)
	e.GET("/v1/tiers", tierCtrl.ListTiers, logMw)

	e.GET("/v1/statements/balance-sheet", statementCtrl.GetBalanceSheet, logMw)
	e.GET("/v1/statements/income", statementCtrl.GetIncomeStatement, logMw)
	e.GET("/v1/statements/trial-balance", statementCtrl.GetTrialBalance, logMw)

	e.GET("/v1/fiscal-years", fiscalYearCtrl.ListFiscalYears, logMw)
	e.GET("/v1/fiscal-years/current", fiscalYearCtrl.GetCurrentFiscalYear, logMw)

	// period and seed management is an operator concern
	e.POST("/v1/admin/fiscal-years", fiscalYearCtrl.CreateFiscalYear, adminMw, logMw)
	e.POST("/v1/admin/fiscal-years/:id/close", fiscalYearCtrl.CloseFiscalYear, adminMw, logMw)
	e.POST("/v1/admin/bootstrap", controllers.NewBootstrapController(svc).Bootstrap, adminMw, logMw)
}
