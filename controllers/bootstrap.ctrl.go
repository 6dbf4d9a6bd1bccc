package controllers

import (
	"net/http"

	"github.com/juriscab/comptahub/lib/responses"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
)

// BootstrapController : SYSCOHADA seed controller struct
type BootstrapController struct {
	svc *service.ComptaService
}

func NewBootstrapController(svc *service.ComptaService) *BootstrapController {
	return &BootstrapController{svc: svc}
}

type BootstrapResponseBody struct {
	AccountsCreated int `json:"accounts_created"`
	JournalsCreated int `json:"journals_created"`
}

// Bootstrap seeds the default chart of accounts and journals. Idempotent,
// existing codes are left untouched.
func (controller *BootstrapController) Bootstrap(c echo.Context) error {
	accountsCreated, journalsCreated, err := controller.svc.Bootstrap(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to bootstrap chart of accounts: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	c.Logger().Infof("Bootstrap created %d accounts and %d journals", accountsCreated, journalsCreated)
	return c.JSON(http.StatusOK, &BootstrapResponseBody{
		AccountsCreated: accountsCreated,
		JournalsCreated: journalsCreated,
	})
}
