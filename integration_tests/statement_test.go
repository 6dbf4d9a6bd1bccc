package integration_tests

import (
	"encoding/json"
	"log"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/controllers"
	"github.com/juriscab/comptahub/lib"
	"github.com/juriscab/comptahub/lib/responses"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StatementTestSuite struct {
	TestSuite
	service *service.ComptaService
}

func (suite *StatementTestSuite) SetupSuite() {
	svc, err := ComptaTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e

	statementCtrl := controllers.NewStatementController(svc)
	suite.echo.POST("/v1/accounts", controllers.NewAccountController(svc).CreateAccount)
	suite.echo.POST("/v1/journals", controllers.NewJournalController(svc).CreateJournal)
	suite.echo.POST("/v1/transactions", controllers.NewTransactionController(svc).CreateTransaction)
	suite.echo.GET("/v1/statements/balance-sheet", statementCtrl.GetBalanceSheet)
	suite.echo.GET("/v1/statements/income", statementCtrl.GetIncomeStatement)
	suite.echo.GET("/v1/statements/trial-balance", statementCtrl.GetTrialBalance)

	assert.NoError(suite.T(), clearLedger(svc))
	_, err = openFiscalYear(svc, "FY statements")
	assert.NoError(suite.T(), err)

	bank := suite.createAccountReq("5121", "Banque", common.AccountTypeAsset)
	capital := suite.createAccountReq("101", "Capital", common.AccountTypeLiability)
	fees := suite.createAccountReq("7061", "Honoraires", common.AccountTypeRevenue)
	rent := suite.createAccountReq("622", "Locations", common.AccountTypeExpense)
	journal := suite.createJournalReq("OD", "Opérations diverses", common.JournalTypeGeneral)

	// opening capital, one fee invoice cashed, one rent payment
	for _, posting := range []struct {
		debitID, creditID int64
		amount            string
	}{
		{bank.ID, capital.ID, "500000"},
		{bank.ID, fees.ID, "150000"},
		{rent.ID, bank.ID, "40000"},
	} {
		suite.createTransactionReq(&ExpectedCreateTransactionRequestBody{
			Description: "Ecriture de test états",
			Date:        "2026-02-01",
			JournalID:   journal.ID,
			Validate:    true,
			Lines:       simpleLines(posting.debitID, posting.creditID, posting.amount),
		})
	}
}

func (suite *StatementTestSuite) TearDownSuite() {
	assert.NoError(suite.T(), clearLedger(suite.service))
}

func (suite *StatementTestSuite) TestBalanceSheetBalances() {
	rec := suite.getJSON("/v1/statements/balance-sheet")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	sheet := &ExpectedBalanceSheetResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(sheet))

	// 500000 + 150000 - 40000 in the bank
	assert.True(suite.T(), sheet.TotalAssets.Equal(decimal.RequireFromString("610000")))
	assert.True(suite.T(), sheet.TotalLiabilities.Equal(decimal.RequireFromString("500000")))
	assert.True(suite.T(), sheet.NetResult.Equal(decimal.RequireFromString("110000")))
	assert.True(suite.T(), sheet.Balanced)
}

func (suite *StatementTestSuite) TestIncomeStatementResult() {
	rec := suite.getJSON("/v1/statements/income")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	statement := &ExpectedIncomeStatementResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(statement))

	assert.True(suite.T(), statement.TotalRevenue.Equal(decimal.RequireFromString("150000")))
	assert.True(suite.T(), statement.TotalExpense.Equal(decimal.RequireFromString("40000")))
	assert.True(suite.T(), statement.Result.Equal(decimal.RequireFromString("110000")))
}

func (suite *StatementTestSuite) TestTrialBalanceTotalsMatch() {
	rec := suite.getJSON("/v1/statements/trial-balance")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	trialBalance := &ExpectedTrialBalanceResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(trialBalance))

	assert.Equal(suite.T(), 4, len(trialBalance.Rows))
	assert.True(suite.T(), trialBalance.TotalDebit.Equal(trialBalance.TotalCredit))
	assert.True(suite.T(), trialBalance.TotalDebit.Equal(decimal.RequireFromString("650000")))
}

func TestStatementTestSuite(t *testing.T) {
	suite.Run(t, new(StatementTestSuite))
}
