package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// postingDelta is the single place that knows the account-type sign
// convention: asset and expense accounts grow on the debit side, liability
// and revenue accounts grow on the credit side. Both posting paths
// (direct-create-validated and journal validation) go through here.
func postingDelta(accountType string, debit, credit decimal.Decimal) decimal.Decimal {
	switch accountType {
	case common.AccountTypeAsset, common.AccountTypeExpense:
		return debit.Sub(credit)
	case common.AccountTypeLiability, common.AccountTypeRevenue:
		return credit.Sub(debit)
	}
	return decimal.Zero
}

func isValidAccountType(accountType string) bool {
	switch accountType {
	case common.AccountTypeAsset, common.AccountTypeLiability,
		common.AccountTypeExpense, common.AccountTypeRevenue:
		return true
	}
	return false
}

// pgUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505). We rely on the DB constraint rather than a
// read-then-insert check so concurrent creates cannot race past it.
func pgUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

func (svc *ComptaService) CreateAccount(ctx context.Context, code, name, accountType string) (*models.Account, error) {
	if !isValidAccountType(accountType) {
		return nil, fmt.Errorf("invalid account type %q", accountType)
	}
	account := &models.Account{
		Code:    code,
		Name:    name,
		Type:    accountType,
		Balance: decimal.Zero,
	}
	_, err := svc.DB.NewInsert().Model(account).Exec(ctx)
	if err != nil {
		if pgUniqueViolation(err) {
			return nil, fmt.Errorf("account code %s: %w", code, ErrDuplicateCode)
		}
		return nil, err
	}
	return account, nil
}

func (svc *ComptaService) ListAccounts(ctx context.Context, accountType string) ([]models.Account, error) {
	accounts := []models.Account{}
	query := svc.DB.NewSelect().Model(&accounts)
	if accountType != "" {
		query.Where("type = ?", accountType)
	}
	err := query.Order("code ASC").Scan(ctx)
	return accounts, err
}

func (svc *ComptaService) GetAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	var account models.Account
	err := svc.DB.NewSelect().Model(&account).Where("id = ?", accountID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
		}
		return nil, err
	}
	return &account, nil
}

func (svc *ComptaService) GetAccountByCode(ctx context.Context, code string) (*models.Account, error) {
	var account models.Account
	err := svc.DB.NewSelect().Model(&account).Where("code = ?", code).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account code %s: %w", code, ErrNotFound)
		}
		return nil, err
	}
	return &account, nil
}

// applyDelta increments an account balance by the signed posting delta of
// one line. Internal to the posting path: it must only run inside the DB
// transaction that flips the owning entry to validated.
func applyDelta(ctx context.Context, tx bun.Tx, account *models.Account, debit, credit decimal.Decimal) error {
	delta := postingDelta(account.Type, debit, credit)
	_, err := tx.NewUpdate().
		Model((*models.Account)(nil)).
		Set("balance = balance + ?", delta).
		Where("id = ?", account.ID).
		Exec(ctx)
	return err
}
