package integration_tests

import (
	"encoding/json"
	"log"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/juriscab/comptahub/controllers"
	"github.com/juriscab/comptahub/lib"
	"github.com/juriscab/comptahub/lib/responses"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BootstrapTestSuite struct {
	TestSuite
	service *service.ComptaService
}

func (suite *BootstrapTestSuite) SetupSuite() {
	svc, err := ComptaTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e

	suite.echo.POST("/v1/admin/bootstrap", controllers.NewBootstrapController(svc).Bootstrap)
	suite.echo.GET("/v1/accounts", controllers.NewAccountController(svc).ListAccounts)

	assert.NoError(suite.T(), clearLedger(svc))
}

func (suite *BootstrapTestSuite) TearDownSuite() {
	assert.NoError(suite.T(), clearLedger(suite.service))
}

type expectedBootstrapResponseBody struct {
	AccountsCreated int `json:"accounts_created"`
	JournalsCreated int `json:"journals_created"`
}

func (suite *BootstrapTestSuite) TestBootstrapSeedsAndIsIdempotent() {
	rec := suite.postJSON("/v1/admin/bootstrap", nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	first := &expectedBootstrapResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(first))
	assert.Greater(suite.T(), first.AccountsCreated, 0)
	assert.Greater(suite.T(), first.JournalsCreated, 0)

	accountsRec := suite.getJSON("/v1/accounts")
	assert.Equal(suite.T(), http.StatusOK, accountsRec.Code)
	accounts := []ExpectedAccountResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(accountsRec.Body).Decode(&accounts))
	assert.Equal(suite.T(), first.AccountsCreated, len(accounts))

	codes := map[string]bool{}
	for _, account := range accounts {
		codes[account.Code] = true
	}
	// a few SYSCOHADA anchors that must always be seeded
	assert.True(suite.T(), codes["521"])
	assert.True(suite.T(), codes["706"])
	assert.True(suite.T(), codes["4671"])

	// a second run must not duplicate anything
	rec = suite.postJSON("/v1/admin/bootstrap", nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	second := &expectedBootstrapResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(second))
	assert.Equal(suite.T(), 0, second.AccountsCreated)
	assert.Equal(suite.T(), 0, second.JournalsCreated)
}

func TestBootstrapTestSuite(t *testing.T) {
	suite.Run(t, new(BootstrapTestSuite))
}
