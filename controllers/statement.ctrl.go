package controllers

import (
	"net/http"

	"github.com/juriscab/comptahub/lib/responses"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
)

// StatementController : Financial statements controller struct
type StatementController struct {
	svc *service.ComptaService
}

func NewStatementController(svc *service.ComptaService) *StatementController {
	return &StatementController{svc: svc}
}

func (controller *StatementController) GetBalanceSheet(c echo.Context) error {
	balanceSheet, err := controller.svc.BalanceSheet(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to build balance sheet: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, balanceSheet)
}

func (controller *StatementController) GetIncomeStatement(c echo.Context) error {
	incomeStatement, err := controller.svc.IncomeStatement(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to build income statement: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, incomeStatement)
}

func (controller *StatementController) GetTrialBalance(c echo.Context) error {
	trialBalance, err := controller.svc.TrialBalance(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to build trial balance: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, trialBalance)
}
