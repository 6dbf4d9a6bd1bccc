package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/juriscab/comptahub/db/models"
	"github.com/juriscab/comptahub/lib/responses"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountController : Chart of accounts controller struct
type AccountController struct {
	svc *service.ComptaService
}

func NewAccountController(svc *service.ComptaService) *AccountController {
	return &AccountController{svc: svc}
}

type CreateAccountRequestBody struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=asset liability expense revenue"`
}

type AccountResponseBody struct {
	ID      int64           `json:"id"`
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

func newAccountResponse(account *models.Account) *AccountResponseBody {
	return &AccountResponseBody{
		ID:      account.ID,
		Code:    account.Code,
		Name:    account.Name,
		Type:    account.Type,
		Balance: account.Balance,
	}
}

func (controller *AccountController) CreateAccount(c echo.Context) error {
	var body CreateAccountRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.CreateAccount(c.Request().Context(), body.Code, body.Name, body.Type)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			c.Logger().Errorf("Account code taken: %s", body.Code)
			return c.JSON(http.StatusConflict, responses.DuplicateCodeError)
		}
		c.Logger().Errorf("Failed to create account: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, newAccountResponse(account))
}

func (controller *AccountController) ListAccounts(c echo.Context) error {
	accounts, err := controller.svc.ListAccounts(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		c.Logger().Errorf("Failed to list accounts: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]AccountResponseBody, len(accounts))
	for i := range accounts {
		response[i] = *newAccountResponse(&accounts[i])
	}
	return c.JSON(http.StatusOK, &response)
}

func (controller *AccountController) GetAccount(c echo.Context) error {
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to get account %d: %v", accountID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, newAccountResponse(account))
}

// GetAccountLedger returns the validated movements of one account with a
// running balance, oldest first.
func (controller *AccountController) GetAccountLedger(c echo.Context) error {
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	lines, err := controller.svc.AccountLedger(c.Request().Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to get ledger for account %d: %v", accountID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &lines)
}
