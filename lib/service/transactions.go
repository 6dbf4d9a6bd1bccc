package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// balanceTolerance absorbs rounding noise from callers that computed
// amounts in floating point: 0.01 currency units.
var balanceTolerance = decimal.New(1, -2)

// journalLockKey namespaces the per-journal advisory lock so it cannot
// collide with other advisory lock users on the same database.
const journalLockKey = 4671

type LineParams struct {
	AccountID int64
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

func checkLines(lines []LineParams) error {
	if len(lines) == 0 {
		return fmt.Errorf("entry has no lines: %w", ErrUnbalancedEntry)
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d: amounts must not be negative: %w", i+1, ErrUnbalancedEntry)
		}
		if line.Debit.IsZero() == line.Credit.IsZero() {
			return fmt.Errorf("line %d: exactly one of debit and credit must be set: %w", i+1, ErrUnbalancedEntry)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return fmt.Errorf("total debit %s != total credit %s: %w", totalDebit, totalCredit, ErrUnbalancedEntry)
	}
	return nil
}

// CreateTransaction writes a pièce and its lines as one atomic unit. With
// validate set, the entry is posted immediately: status validated and the
// account deltas applied in the same DB transaction.
func (svc *ComptaService) CreateTransaction(ctx context.Context, description string, date time.Time, journalID, fiscalYearID int64, lines []LineParams, validate bool) (*models.Transaction, error) {
	if err := checkLines(lines); err != nil {
		return nil, err
	}
	journal, err := svc.GetJournal(ctx, journalID)
	if err != nil {
		return nil, err
	}
	fiscalYear, err := svc.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fiscalYear.Status != common.FiscalYearStatusOpen {
		return nil, ErrNoOpenFiscalYear
	}

	transaction := &models.Transaction{
		Description:  description,
		Date:         date,
		Status:       common.TransactionStatusDraft,
		JournalID:    journalID,
		Journal:      journal,
		FiscalYearID: fiscalYearID,
	}
	if validate {
		transaction.Status = common.TransactionStatusValidated
		transaction.ValidatedAt = time.Now()
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(transaction).Exec(ctx); err != nil {
			return err
		}
		transactionLines := make([]*models.TransactionLine, len(lines))
		for i, line := range lines {
			transactionLines[i] = &models.TransactionLine{
				TransactionID: transaction.ID,
				AccountID:     line.AccountID,
				Debit:         line.Debit,
				Credit:        line.Credit,
			}
		}
		if _, err := tx.NewInsert().Model(&transactionLines).Exec(ctx); err != nil {
			return err
		}
		transaction.Lines = transactionLines

		if validate {
			accounts, err := accountsForLines(ctx, tx, transactionLines)
			if err != nil {
				return err
			}
			for _, line := range transactionLines {
				if err := applyDelta(ctx, tx, accounts[line.AccountID], line.Debit, line.Credit); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if validate {
		svc.publishValidated(transaction)
	}
	return transaction, nil
}

// ListDraftTransactions returns the journal's brouillard: drafts awaiting
// validation, newest first, with lines and account references.
func (svc *ComptaService) ListDraftTransactions(ctx context.Context, journalID int64) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := svc.DB.NewSelect().
		Model(&transactions).
		Relation("Lines").
		Relation("Lines.Account").
		Where("transaction.journal_id = ? AND transaction.status = ?", journalID, common.TransactionStatusDraft).
		OrderExpr("transaction.date DESC, transaction.id DESC").
		Scan(ctx)
	return transactions, err
}

func (svc *ComptaService) ListTransactions(ctx context.Context, journalID int64, status string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	query := svc.DB.NewSelect().
		Model(&transactions).
		Relation("Lines").
		Relation("Lines.Account")
	if journalID != 0 {
		query.Where("transaction.journal_id = ?", journalID)
	}
	if status != "" {
		query.Where("transaction.status = ?", status)
	}
	err := query.OrderExpr("transaction.date DESC, transaction.id DESC").Scan(ctx)
	return transactions, err
}

// ValidateJournalDrafts posts every draft of the journal and returns how
// many were validated. The whole batch runs in one DB transaction under a
// per-journal advisory lock; the status flip is conditional on the row
// still being a draft, so a transaction is never posted twice.
func (svc *ComptaService) ValidateJournalDrafts(ctx context.Context, journalID int64) (int, error) {
	if _, err := svc.GetJournal(ctx, journalID); err != nil {
		return 0, err
	}

	count := 0
	validated := []*models.Transaction{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var locked bool
		if err := tx.NewRaw("SELECT pg_try_advisory_xact_lock(?, ?)", journalLockKey, journalID).Scan(ctx, &locked); err != nil {
			return err
		}
		if !locked {
			return fmt.Errorf("journal %d: %w", journalID, ErrConcurrentPostingConflict)
		}

		drafts := []*models.Transaction{}
		err := tx.NewSelect().
			Model(&drafts).
			Relation("Lines").
			Relation("Journal").
			Where("transaction.journal_id = ? AND transaction.status = ?", journalID, common.TransactionStatusDraft).
			OrderExpr("transaction.date ASC, transaction.id ASC").
			Scan(ctx)
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			return nil
		}

		allLines := []*models.TransactionLine{}
		for _, draft := range drafts {
			allLines = append(allLines, draft.Lines...)
		}
		accounts, err := accountsForLines(ctx, tx, allLines)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, draft := range drafts {
			res, err := tx.NewUpdate().
				Model(draft).
				Set("status = ?", common.TransactionStatusValidated).
				Set("validated_at = ?", now).
				Where("id = ? AND status = ?", draft.ID, common.TransactionStatusDraft).
				Exec(ctx)
			if err != nil {
				return err
			}
			rows, err := res.RowsAffected()
			if err != nil {
				return err
			}
			// someone else flipped it first: deltas already applied
			if rows == 0 {
				continue
			}
			for _, line := range draft.Lines {
				if err := applyDelta(ctx, tx, accounts[line.AccountID], line.Debit, line.Credit); err != nil {
					return err
				}
			}
			draft.Status = common.TransactionStatusValidated
			draft.ValidatedAt = now
			validated = append(validated, draft)
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, transaction := range validated {
		svc.publishValidated(transaction)
	}
	svc.Logger.Infof("Validated %d transactions for journal_id:%v", count, journalID)
	return count, nil
}

// accountsForLines resolves every referenced account inside the posting
// transaction. A missing account aborts the whole batch.
func accountsForLines(ctx context.Context, tx bun.Tx, lines []*models.TransactionLine) (map[int64]*models.Account, error) {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			ids = append(ids, line.AccountID)
		}
	}
	accounts := []*models.Account{}
	err := tx.NewSelect().Model(&accounts).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Account, len(accounts))
	for _, account := range accounts {
		byID[account.ID] = account
	}
	for _, id := range ids {
		if byID[id] == nil {
			return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
		}
	}
	return byID, nil
}

func (svc *ComptaService) publishValidated(transaction *models.Transaction) {
	if svc.TransactionPubSub == nil {
		return
	}
	svc.TransactionPubSub.Publish(common.TransactionStatusValidated, *transaction)
}
