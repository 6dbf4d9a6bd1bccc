package controllers

import (
	"errors"
	"net/http"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/lib/responses"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
)

// TierController : Tier (client/supplier sub-account) controller struct
type TierController struct {
	svc *service.ComptaService
}

func NewTierController(svc *service.ComptaService) *TierController {
	return &TierController{svc: svc}
}

type CreateTierRequestBody struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=client supplier"`
	// Code is optional. When present it must carry the reserved prefix of
	// the tier type, when absent the next free code is allocated.
	Code string `json:"code"`
}

func (controller *TierController) CreateTier(c echo.Context) error {
	var body CreateTierRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create tier request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create tier request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	tier, err := controller.svc.CreateTier(c.Request().Context(), body.Name, body.Type, body.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrefix):
			c.Logger().Errorf("Tier code %s does not match the %s prefix", body.Code, body.Type)
			return c.JSON(http.StatusBadRequest, responses.InvalidPrefixError)
		case errors.Is(err, service.ErrDuplicateCode):
			c.Logger().Errorf("Tier code taken: %s", body.Code)
			return c.JSON(http.StatusConflict, responses.DuplicateCodeError)
		default:
			c.Logger().Errorf("Failed to create tier: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusOK, newAccountResponse(tier))
}

func (controller *TierController) ListTiers(c echo.Context) error {
	tierType := c.QueryParam("type")
	if tierType != "" && tierType != common.TierTypeClient && tierType != common.TierTypeSupplier {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	tiers, err := controller.svc.ListTiers(c.Request().Context(), tierType)
	if err != nil {
		c.Logger().Errorf("Failed to list tiers: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]AccountResponseBody, len(tiers))
	for i := range tiers {
		response[i] = *newAccountResponse(&tiers[i])
	}
	return c.JSON(http.StatusOK, &response)
}
