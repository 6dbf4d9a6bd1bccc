package integration_tests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type WebHookTestSuite struct {
	suite.Suite
	service       *service.ComptaService
	webHookServer *httptest.Server
	eventChan     chan service.TransactionEvent
	cancelFn      context.CancelFunc
}

func (suite *WebHookTestSuite) SetupSuite() {
	suite.eventChan = make(chan service.TransactionEvent)
	webhookServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event := service.TransactionEvent{}
		err := json.NewDecoder(r.Body).Decode(&event)
		if err != nil {
			close(suite.eventChan)
			return
		}
		suite.eventChan <- event
	}))
	suite.webHookServer = webhookServer

	svc, err := ComptaTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	svc.Config.WebhookUrl = suite.webHookServer.URL
	suite.service = svc

	assert.NoError(suite.T(), clearLedger(svc))
	_, err = openFiscalYear(svc, "FY webhook")
	assert.NoError(suite.T(), err)

	ctx, cancel := context.WithCancel(context.Background())
	suite.cancelFn = cancel
	go svc.StartWebhookSubscription(ctx, svc.Config.WebhookUrl)
	// give the subscription loop a moment to register before publishing
	time.Sleep(100 * time.Millisecond)
}

func (suite *WebHookTestSuite) TestWebHookReceivesValidatedTransaction() {
	ctx := context.Background()

	bank, err := suite.service.CreateAccount(ctx, "5121", "Banque", common.AccountTypeAsset)
	assert.NoError(suite.T(), err)
	fees, err := suite.service.CreateAccount(ctx, "7061", "Honoraires", common.AccountTypeRevenue)
	assert.NoError(suite.T(), err)
	journal, err := suite.service.CreateJournal(ctx, "VE", "Ventes", common.JournalTypeSale)
	assert.NoError(suite.T(), err)
	fiscalYear, err := suite.service.CurrentFiscalYear(ctx)
	assert.NoError(suite.T(), err)

	amount := decimal.NewFromInt(75000)
	transaction, err := suite.service.CreateTransaction(ctx, "integration test webhook", time.Now(), journal.ID, fiscalYear.ID, []service.LineParams{
		{AccountID: bank.ID, Debit: amount},
		{AccountID: fees.ID, Credit: amount},
	}, true)
	assert.NoError(suite.T(), err)

	event := <-suite.eventChan
	assert.Equal(suite.T(), transaction.ID, event.ID)
	assert.Equal(suite.T(), "integration test webhook", event.Description)
	assert.Equal(suite.T(), common.TransactionStatusValidated, event.Status)
	assert.Equal(suite.T(), "VE", event.JournalCode)
	assert.Equal(suite.T(), 2, len(event.Lines))
}

func (suite *WebHookTestSuite) TearDownSuite() {
	suite.cancelFn()
	suite.webHookServer.Close()
	assert.NoError(suite.T(), clearLedger(suite.service))
}

func TestWebHookSuite(t *testing.T) {
	suite.Run(t, new(WebHookTestSuite))
}
