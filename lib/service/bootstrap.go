package service

import (
	"context"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
	"github.com/shopspring/decimal"
)

type ChartEntry struct {
	Code string
	Name string
	Type string
}

// DefaultChart is the minimal SYSCOHADA chart of accounts a law firm
// starts from. Tier sub-accounts (411xxxxx / 401xxxxx) are allocated on
// demand on top of it.
var DefaultChart = []ChartEntry{
	// class 1-2: capital and fixed assets
	{Code: "101", Name: "Capital social", Type: common.AccountTypeLiability},
	{Code: "162", Name: "Emprunts et dettes", Type: common.AccountTypeLiability},
	{Code: "244", Name: "Matériel et mobilier", Type: common.AccountTypeAsset},

	// class 4: third parties
	{Code: "401", Name: "Fournisseurs", Type: common.AccountTypeLiability},
	{Code: "411", Name: "Clients", Type: common.AccountTypeAsset},
	{Code: "421", Name: "Personnel", Type: common.AccountTypeLiability},
	{Code: "442", Name: "État, impôts et taxes", Type: common.AccountTypeLiability},
	{Code: "4671", Name: "CARPA - fonds clients", Type: common.AccountTypeLiability},

	// class 5: treasury
	{Code: "521", Name: "Banque", Type: common.AccountTypeAsset},
	{Code: "571", Name: "Caisse", Type: common.AccountTypeAsset},

	// class 6: charges
	{Code: "605", Name: "Autres achats", Type: common.AccountTypeExpense},
	{Code: "622", Name: "Locations et charges locatives", Type: common.AccountTypeExpense},
	{Code: "627", Name: "Services bancaires", Type: common.AccountTypeExpense},
	{Code: "641", Name: "Impôts et taxes", Type: common.AccountTypeExpense},
	{Code: "661", Name: "Charges de personnel", Type: common.AccountTypeExpense},

	// class 7: produits
	{Code: "706", Name: "Honoraires", Type: common.AccountTypeRevenue},
	{Code: "771", Name: "Revenus financiers", Type: common.AccountTypeRevenue},
}

type JournalEntry struct {
	Code string
	Name string
	Type string
}

var DefaultJournals = []JournalEntry{
	{Code: "AC", Name: "Achats", Type: common.JournalTypePurchase},
	{Code: "VE", Name: "Ventes", Type: common.JournalTypeSale},
	{Code: "BQ1", Name: "Banque", Type: common.JournalTypeTreasury},
	{Code: "CA", Name: "Caisse", Type: common.JournalTypeTreasury},
	{Code: "OD", Name: "Opérations diverses", Type: common.JournalTypeGeneral},
}

// Bootstrap seeds the standard chart and journal set. Idempotent: existing
// codes are left untouched, so it can run on every startup.
func (svc *ComptaService) Bootstrap(ctx context.Context) (accountsCreated, journalsCreated int, err error) {
	for _, entry := range DefaultChart {
		account := models.Account{
			Code:    entry.Code,
			Name:    entry.Name,
			Type:    entry.Type,
			Balance: decimal.Zero,
		}
		res, err := svc.DB.NewInsert().
			Model(&account).
			On("CONFLICT (code) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return accountsCreated, journalsCreated, err
		}
		if rows, err := res.RowsAffected(); err == nil && rows > 0 {
			accountsCreated++
		}
	}

	for _, entry := range DefaultJournals {
		journal := models.Journal{
			Code: entry.Code,
			Name: entry.Name,
			Type: entry.Type,
		}
		res, err := svc.DB.NewInsert().
			Model(&journal).
			On("CONFLICT (code) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return accountsCreated, journalsCreated, err
		}
		if rows, err := res.RowsAffected(); err == nil && rows > 0 {
			journalsCreated++
		}
	}

	svc.Logger.Infof("Bootstrap done: %d accounts and %d journals created", accountsCreated, journalsCreated)
	return accountsCreated, journalsCreated, nil
}
