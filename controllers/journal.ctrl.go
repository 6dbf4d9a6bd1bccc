package controllers

import (
	"errors"
	"net/http"

	"github.com/juriscab/comptahub/lib/responses"
	"github.com/juriscab/comptahub/lib/service"
	"github.com/labstack/echo/v4"
)

// JournalController : Journal registry controller struct
type JournalController struct {
	svc *service.ComptaService
}

func NewJournalController(svc *service.ComptaService) *JournalController {
	return &JournalController{svc: svc}
}

type CreateJournalRequestBody struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=purchase sale treasury general"`
}

type JournalResponseBody struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (controller *JournalController) CreateJournal(c echo.Context) error {
	var body CreateJournalRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create journal request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create journal request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	journal, err := controller.svc.CreateJournal(c.Request().Context(), body.Code, body.Name, body.Type)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			c.Logger().Errorf("Journal code taken: %s", body.Code)
			return c.JSON(http.StatusConflict, responses.DuplicateCodeError)
		}
		c.Logger().Errorf("Failed to create journal: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &JournalResponseBody{
		ID:   journal.ID,
		Code: journal.Code,
		Name: journal.Name,
		Type: journal.Type,
	})
}

func (controller *JournalController) ListJournals(c echo.Context) error {
	journals, err := controller.svc.ListJournals(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list journals: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]JournalResponseBody, len(journals))
	for i, journal := range journals {
		response[i] = JournalResponseBody{
			ID:   journal.ID,
			Code: journal.Code,
			Name: journal.Name,
			Type: journal.Type,
		}
	}
	return c.JSON(http.StatusOK, &response)
}
