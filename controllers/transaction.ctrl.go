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
	"github.com/shopspring/decimal"
)

// TransactionController : Ledger entry controller struct
type TransactionController struct {
	svc *service.ComptaService
}

func NewTransactionController(svc *service.ComptaService) *TransactionController {
	return &TransactionController{svc: svc}
}

type TransactionLineRequestBody struct {
	AccountID int64           `json:"account_id" validate:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

type CreateTransactionRequestBody struct {
	Description  string                       `json:"description" validate:"required"`
	Date         string                       `json:"date" validate:"required,datetime=2006-01-02"`
	JournalID    int64                        `json:"journal_id" validate:"required"`
	FiscalYearID int64                        `json:"fiscal_year_id"`
	Validate     bool                         `json:"validate"`
	Lines        []TransactionLineRequestBody `json:"lines" validate:"required,min=2,dive"`
}

type TransactionLineResponseBody struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

type TransactionResponseBody struct {
	ID           int64                         `json:"id"`
	Description  string                        `json:"description"`
	Date         string                        `json:"date"`
	Status       string                        `json:"status"`
	JournalID    int64                         `json:"journal_id"`
	FiscalYearID int64                         `json:"fiscal_year_id"`
	Lines        []TransactionLineResponseBody `json:"lines"`
	CreatedAt    int64                         `json:"created_at"`
	ValidatedAt  int64                         `json:"validated_at,omitempty"`
}

func newTransactionResponse(transaction *models.Transaction) *TransactionResponseBody {
	response := &TransactionResponseBody{
		ID:           transaction.ID,
		Description:  transaction.Description,
		Date:         transaction.Date.Format("2006-01-02"),
		Status:       transaction.Status,
		JournalID:    transaction.JournalID,
		FiscalYearID: transaction.FiscalYearID,
		Lines:        make([]TransactionLineResponseBody, len(transaction.Lines)),
		CreatedAt:    transaction.CreatedAt.Unix(),
	}
	if !transaction.ValidatedAt.IsZero() {
		response.ValidatedAt = transaction.ValidatedAt.Unix()
	}
	for i, line := range transaction.Lines {
		response.Lines[i] = TransactionLineResponseBody{
			ID:        line.ID,
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		}
	}
	return response
}

func (controller *TransactionController) CreateTransaction(c echo.Context) error {
	var body CreateTransactionRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	ctx := c.Request().Context()

	// An explicit fiscal year pins the entry to that period, otherwise
	// the entry lands in the current open one.
	fiscalYearID := body.FiscalYearID
	if fiscalYearID == 0 {
		fiscalYear, err := controller.svc.CurrentFiscalYear(ctx)
		if err != nil {
			if errors.Is(err, service.ErrNoOpenFiscalYear) {
				return c.JSON(http.StatusConflict, responses.NoOpenFiscalYearError)
			}
			c.Logger().Errorf("Failed to resolve current fiscal year: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
		fiscalYearID = fiscalYear.ID
	}

	lines := make([]service.LineParams, len(body.Lines))
	for i, line := range body.Lines {
		lines[i] = service.LineParams{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		}
	}

	transaction, err := controller.svc.CreateTransaction(ctx, body.Description, date, body.JournalID, fiscalYearID, lines, body.Validate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnbalancedEntry):
			c.Logger().Errorf("Rejected unbalanced entry: %v", err)
			return c.JSON(http.StatusBadRequest, responses.UnbalancedEntryError)
		case errors.Is(err, service.ErrNoOpenFiscalYear):
			c.Logger().Errorf("Rejected entry into a closed fiscal year %d: %v", fiscalYearID, err)
			return c.JSON(http.StatusConflict, responses.NoOpenFiscalYearError)
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		default:
			c.Logger().Errorf("Failed to create transaction: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

func (controller *TransactionController) ListTransactions(c echo.Context) error {
	var journalID int64
	if raw := c.QueryParam("journal_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		journalID = parsed
	}

	transactions, err := controller.svc.ListTransactions(c.Request().Context(), journalID, c.QueryParam("status"))
	if err != nil {
		c.Logger().Errorf("Failed to list transactions: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]TransactionResponseBody, len(transactions))
	for i := range transactions {
		response[i] = *newTransactionResponse(&transactions[i])
	}
	return c.JSON(http.StatusOK, &response)
}

func (controller *TransactionController) ListJournalDrafts(c echo.Context) error {
	journalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	drafts, err := controller.svc.ListDraftTransactions(c.Request().Context(), journalID)
	if err != nil {
		c.Logger().Errorf("Failed to list drafts for journal %d: %v", journalID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]TransactionResponseBody, len(drafts))
	for i := range drafts {
		response[i] = *newTransactionResponse(&drafts[i])
	}
	return c.JSON(http.StatusOK, &response)
}

type ValidateJournalResponseBody struct {
	JournalID int64 `json:"journal_id"`
	Validated int   `json:"validated"`
}

// ValidateJournal posts every draft of a journal in one atomic batch.
// Re-running it on an already validated journal is a no-op.
func (controller *TransactionController) ValidateJournal(c echo.Context) error {
	journalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	count, err := controller.svc.ValidateJournalDrafts(c.Request().Context(), journalID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConcurrentPostingConflict):
			c.Logger().Errorf("Concurrent validation on journal %d", journalID)
			return c.JSON(http.StatusConflict, responses.ConcurrentPostingConflictError)
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		case errors.Is(err, service.ErrUnbalancedEntry):
			c.Logger().Errorf("Unbalanced draft in journal %d: %v", journalID, err)
			return c.JSON(http.StatusBadRequest, responses.UnbalancedEntryError)
		default:
			c.Logger().Errorf("Failed to validate journal %d: %v", journalID, err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusOK, &ValidateJournalResponseBody{
		JournalID: journalID,
		Validated: count,
	})
}
