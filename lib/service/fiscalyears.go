package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
	"github.com/uptrace/bun"
)

func (svc *ComptaService) CreateFiscalYear(ctx context.Context, name string, startDate, endDate time.Time, current bool) (*models.FiscalYear, error) {
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("fiscal year end date must be after start date")
	}
	fiscalYear := &models.FiscalYear{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		IsCurrent: current,
		Status:    common.FiscalYearStatusOpen,
	}
	// Making the new year current demotes the previous one in the same
	// transaction, otherwise the partial unique index rejects the insert.
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if current {
			if _, err := tx.NewUpdate().
				Model((*models.FiscalYear)(nil)).
				Set("is_current = false").
				Where("is_current").
				Exec(ctx); err != nil {
				return err
			}
		}
		_, err := tx.NewInsert().Model(fiscalYear).Exec(ctx)
		return err
	})
	if err != nil {
		if pgUniqueViolation(err) {
			return nil, fmt.Errorf("fiscal year %s: %w", name, ErrDuplicateCode)
		}
		return nil, err
	}
	return fiscalYear, nil
}

// CurrentFiscalYear returns the open period new entries are stamped with.
// Callers resolve it once per request and pass the id into
// CreateTransaction explicitly.
func (svc *ComptaService) CurrentFiscalYear(ctx context.Context) (*models.FiscalYear, error) {
	var fiscalYear models.FiscalYear
	err := svc.DB.NewSelect().
		Model(&fiscalYear).
		Where("is_current AND status = ?", common.FiscalYearStatusOpen).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoOpenFiscalYear
		}
		return nil, err
	}
	return &fiscalYear, nil
}

func (svc *ComptaService) GetFiscalYear(ctx context.Context, fiscalYearID int64) (*models.FiscalYear, error) {
	var fiscalYear models.FiscalYear
	err := svc.DB.NewSelect().Model(&fiscalYear).Where("id = ?", fiscalYearID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("fiscal year %d: %w", fiscalYearID, ErrNotFound)
		}
		return nil, err
	}
	return &fiscalYear, nil
}

func (svc *ComptaService) ListFiscalYears(ctx context.Context) ([]models.FiscalYear, error) {
	fiscalYears := []models.FiscalYear{}
	err := svc.DB.NewSelect().Model(&fiscalYears).Order("start_date ASC").Scan(ctx)
	return fiscalYears, err
}

func (svc *ComptaService) CloseFiscalYear(ctx context.Context, fiscalYearID int64) (*models.FiscalYear, error) {
	fiscalYear, err := svc.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fiscalYear.Status == common.FiscalYearStatusClosed {
		return fiscalYear, nil
	}
	fiscalYear.Status = common.FiscalYearStatusClosed
	fiscalYear.IsCurrent = false
	_, err = svc.DB.NewUpdate().
		Model(fiscalYear).
		Column("status", "is_current").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return fiscalYear, nil
}
