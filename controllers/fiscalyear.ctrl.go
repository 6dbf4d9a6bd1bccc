package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/juriscab/comptahub/db/models"
	"github.com/juriscab/comptahub/lib/responses"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
)

// FiscalYearController : Fiscal year controller struct
type FiscalYearController struct {
	svc *service.ComptaService
}

func NewFiscalYearController(svc *service.ComptaService) *FiscalYearController {
	return &FiscalYearController{svc: svc}
}

type CreateFiscalYearRequestBody struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Current   bool   `json:"current"`
}

type FiscalYearResponseBody struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsCurrent bool   `json:"is_current"`
	Status    string `json:"status"`
}

func newFiscalYearResponse(fiscalYear *models.FiscalYear) *FiscalYearResponseBody {
	return &FiscalYearResponseBody{
		ID:        fiscalYear.ID,
		Name:      fiscalYear.Name,
		StartDate: fiscalYear.StartDate.Format("2006-01-02"),
		EndDate:   fiscalYear.EndDate.Format("2006-01-02"),
		IsCurrent: fiscalYear.IsCurrent,
		Status:    fiscalYear.Status,
	}
}

func (controller *FiscalYearController) CreateFiscalYear(c echo.Context) error {
	var body CreateFiscalYearRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create fiscal year request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create fiscal year request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	endDate, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if !endDate.After(startDate) {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	fiscalYear, err := controller.svc.CreateFiscalYear(c.Request().Context(), body.Name, startDate, endDate, body.Current)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			c.Logger().Errorf("Fiscal year name taken: %s", body.Name)
			return c.JSON(http.StatusConflict, responses.DuplicateCodeError)
		}
		c.Logger().Errorf("Failed to create fiscal year: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, newFiscalYearResponse(fiscalYear))
}

func (controller *FiscalYearController) ListFiscalYears(c echo.Context) error {
	fiscalYears, err := controller.svc.ListFiscalYears(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list fiscal years: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]FiscalYearResponseBody, len(fiscalYears))
	for i := range fiscalYears {
		response[i] = *newFiscalYearResponse(&fiscalYears[i])
	}
	return c.JSON(http.StatusOK, &response)
}

func (controller *FiscalYearController) GetCurrentFiscalYear(c echo.Context) error {
	fiscalYear, err := controller.svc.CurrentFiscalYear(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoOpenFiscalYear) {
			return c.JSON(http.StatusConflict, responses.NoOpenFiscalYearError)
		}
		c.Logger().Errorf("Failed to get current fiscal year: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, newFiscalYearResponse(fiscalYear))
}

// CloseFiscalYear marks a period closed. Closed periods reject postings,
// the operation does not reverse.
func (controller *FiscalYearController) CloseFiscalYear(c echo.Context) error {
	fiscalYearID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	fiscalYear, err := controller.svc.CloseFiscalYear(c.Request().Context(), fiscalYearID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to close fiscal year %d: %v", fiscalYearID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, newFiscalYearResponse(fiscalYear))
}
