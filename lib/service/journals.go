package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
)

func isValidJournalType(journalType string) bool {
	switch journalType {
	case common.JournalTypePurchase, common.JournalTypeSale,
		common.JournalTypeTreasury, common.JournalTypeGeneral:
		return true
	}
	return false
}

func (svc *ComptaService) CreateJournal(ctx context.Context, code, name, journalType string) (*models.Journal, error) {
	if !isValidJournalType(journalType) {
		return nil, fmt.Errorf("invalid journal type %q", journalType)
	}
	journal := &models.Journal{
		Code: code,
		Name: name,
		Type: journalType,
	}
	_, err := svc.DB.NewInsert().Model(journal).Exec(ctx)
	if err != nil {
		if pgUniqueViolation(err) {
			return nil, fmt.Errorf("journal code %s: %w", code, ErrDuplicateCode)
		}
		return nil, err
	}
	return journal, nil
}

func (svc *ComptaService) ListJournals(ctx context.Context) ([]models.Journal, error) {
	journals := []models.Journal{}
	err := svc.DB.NewSelect().Model(&journals).Order("code ASC").Scan(ctx)
	return journals, err
}

func (svc *ComptaService) GetJournal(ctx context.Context, journalID int64) (*models.Journal, error) {
	var journal models.Journal
	err := svc.DB.NewSelect().Model(&journal).Where("id = ?", journalID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("journal %d: %w", journalID, ErrNotFound)
		}
		return nil, err
	}
	return &journal, nil
}

func (svc *ComptaService) GetJournalByCode(ctx context.Context, code string) (*models.Journal, error) {
	var journal models.Journal
	err := svc.DB.NewSelect().Model(&journal).Where("code = ?", code).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("journal code %s: %w", code, ErrNotFound)
		}
		return nil, err
	}
	return &journal, nil
}
