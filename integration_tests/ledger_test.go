package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"testing"
	"time"

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

type LedgerTestSuite struct {
	TestSuite
	service *service.ComptaService

	bankID    int64
	feesID    int64
	journalID int64
}

func (suite *LedgerTestSuite) SetupSuite() {
	svc, err := ComptaTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e

	accountCtrl := controllers.NewAccountController(svc)
	transactionCtrl := controllers.NewTransactionController(svc)
	suite.echo.POST("/v1/accounts", accountCtrl.CreateAccount)
	suite.echo.GET("/v1/accounts/:id", accountCtrl.GetAccount)
	suite.echo.GET("/v1/accounts/:id/ledger", accountCtrl.GetAccountLedger)
	suite.echo.POST("/v1/journals", controllers.NewJournalController(svc).CreateJournal)
	suite.echo.POST("/v1/transactions", transactionCtrl.CreateTransaction)
	suite.echo.GET("/v1/journals/:id/drafts", transactionCtrl.ListJournalDrafts)
	suite.echo.POST("/v1/journals/:id/validate", transactionCtrl.ValidateJournal)

	assert.NoError(suite.T(), clearLedger(svc))
	_, err = openFiscalYear(svc, "FY 2026")
	assert.NoError(suite.T(), err)

	bank := suite.createAccountReq("5121", "Banque", common.AccountTypeAsset)
	fees := suite.createAccountReq("7061", "Honoraires", common.AccountTypeRevenue)
	journal := suite.createJournalReq("VE", "Ventes", common.JournalTypeSale)
	suite.bankID = bank.ID
	suite.feesID = fees.ID
	suite.journalID = journal.ID
}

func (suite *LedgerTestSuite) TearDownSuite() {
	assert.NoError(suite.T(), clearLedger(suite.service))
}

func (suite *LedgerTestSuite) TestDraftDoesNotTouchBalances() {
	transaction := suite.createTransactionReq(&ExpectedCreateTransactionRequestBody{
		Description: "Facture honoraires dossier X",
		Date:        "2026-03-15",
		JournalID:   suite.journalID,
		Lines:       simpleLines(suite.bankID, suite.feesID, "50000"),
	})
	assert.Equal(suite.T(), common.TransactionStatusDraft, transaction.Status)

	assert.True(suite.T(), suite.getAccountBalance(suite.bankID).IsZero())
	assert.True(suite.T(), suite.getAccountBalance(suite.feesID).IsZero())

	rec := suite.getJSON(fmt.Sprintf("/v1/journals/%d/drafts", suite.journalID))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	drafts := []ExpectedTransactionResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&drafts))
	assert.Equal(suite.T(), 1, len(drafts))
	assert.Equal(suite.T(), transaction.ID, drafts[0].ID)

	suite.validateJournal(1)
}

func (suite *LedgerTestSuite) TestValidationPostsAndIsIdempotent() {
	suite.createTransactionReq(&ExpectedCreateTransactionRequestBody{
		Description: "Encaissement honoraires",
		Date:        "2026-04-01",
		JournalID:   suite.journalID,
		Lines:       simpleLines(suite.bankID, suite.feesID, "100000"),
	})

	bankBefore := suite.getAccountBalance(suite.bankID)
	feesBefore := suite.getAccountBalance(suite.feesID)

	suite.validateJournal(1)

	expected := decimal.RequireFromString("100000")
	assert.True(suite.T(), suite.getAccountBalance(suite.bankID).Sub(bankBefore).Equal(expected))
	assert.True(suite.T(), suite.getAccountBalance(suite.feesID).Sub(feesBefore).Equal(expected))

	// a second run has nothing left to post and must not move balances
	suite.validateJournal(0)
	assert.True(suite.T(), suite.getAccountBalance(suite.bankID).Sub(bankBefore).Equal(expected))
	assert.True(suite.T(), suite.getAccountBalance(suite.feesID).Sub(feesBefore).Equal(expected))
}

func (suite *LedgerTestSuite) TestUnbalancedEntryIsRejected() {
	countBefore := suite.countTransactions()

	rec := suite.postJSON("/v1/transactions", &ExpectedCreateTransactionRequestBody{
		Description: "Ecriture déséquilibrée",
		Date:        "2026-04-02",
		JournalID:   suite.journalID,
		Lines: []ExpectedTransactionLineRequestBody{
			{AccountID: suite.bankID, Debit: decimal.RequireFromString("100.00")},
			{AccountID: suite.feesID, Credit: decimal.RequireFromString("99.00")},
		},
	})
	errorResponse := checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.UnbalancedEntryError.Code, errorResponse.Code)

	// nothing may be persisted, not even a draft
	assert.Equal(suite.T(), countBefore, suite.countTransactions())
}

func (suite *LedgerTestSuite) TestImmediateValidationPostsAtomically() {
	bankBefore := suite.getAccountBalance(suite.bankID)

	transaction := suite.createTransactionReq(&ExpectedCreateTransactionRequestBody{
		Description: "Encaissement direct",
		Date:        "2026-05-01",
		JournalID:   suite.journalID,
		Validate:    true,
		Lines:       simpleLines(suite.bankID, suite.feesID, "25000"),
	})
	assert.Equal(suite.T(), common.TransactionStatusValidated, transaction.Status)
	assert.True(suite.T(), suite.getAccountBalance(suite.bankID).Sub(bankBefore).Equal(decimal.RequireFromString("25000")))
}

func (suite *LedgerTestSuite) TestAccountLedgerRunningBalance() {
	account := suite.createAccountReq("5720", "Caisse test ledger", common.AccountTypeAsset)
	counterpart := suite.createAccountReq("7062", "Produits test ledger", common.AccountTypeRevenue)

	for _, amount := range []string{"100", "50"} {
		suite.createTransactionReq(&ExpectedCreateTransactionRequestBody{
			Description: "Mouvement caisse",
			Date:        "2026-06-01",
			JournalID:   suite.journalID,
			Validate:    true,
			Lines:       simpleLines(account.ID, counterpart.ID, amount),
		})
	}

	rec := suite.getJSON(fmt.Sprintf("/v1/accounts/%d/ledger", account.ID))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	ledger := []struct {
		Debit   decimal.Decimal `json:"debit"`
		Balance decimal.Decimal `json:"balance"`
	}{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&ledger))
	assert.Equal(suite.T(), 2, len(ledger))
	assert.True(suite.T(), ledger[0].Balance.Equal(decimal.RequireFromString("100")))
	assert.True(suite.T(), ledger[1].Balance.Equal(decimal.RequireFromString("150")))
}

func (suite *LedgerTestSuite) TestClosedFiscalYearRejectsEntries() {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	previous, err := suite.service.CreateFiscalYear(ctx, "Exercice 2025", start, end, false)
	assert.NoError(suite.T(), err)
	_, err = suite.service.CloseFiscalYear(ctx, previous.ID)
	assert.NoError(suite.T(), err)

	countBefore := suite.countTransactions()

	rec := suite.postJSON("/v1/transactions", &ExpectedCreateTransactionRequestBody{
		Description:  "Ecriture sur exercice clos",
		Date:         "2025-06-01",
		JournalID:    suite.journalID,
		FiscalYearID: previous.ID,
		Lines:        simpleLines(suite.bankID, suite.feesID, "1000"),
	})
	errorResponse := checkErrResponse(&suite.TestSuite, rec, http.StatusConflict)
	assert.Equal(suite.T(), responses.NoOpenFiscalYearError.Code, errorResponse.Code)
	assert.Equal(suite.T(), countBefore, suite.countTransactions())
}

func (suite *LedgerTestSuite) validateJournal(expectedCount int) {
	rec := suite.postJSON(fmt.Sprintf("/v1/journals/%d/validate", suite.journalID), nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	validateResponse := &ExpectedValidateJournalResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(validateResponse))
	assert.Equal(suite.T(), expectedCount, validateResponse.Validated)
}

func (suite *LedgerTestSuite) countTransactions() int {
	count, err := suite.service.DB.NewSelect().Table("transactions").Count(context.Background())
	assert.NoError(suite.T(), err)
	return count
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
