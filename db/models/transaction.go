package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction : Accounting entry ("pièce") Model. Created as draft, flips
// once and irreversibly to validated; never deleted.
type Transaction struct {
	ID           int64              `bun:",pk,autoincrement"`
	Description  string             `bun:",notnull"`
	Date         time.Time          `bun:",notnull"`
	Status       string             `bun:",notnull"`
	JournalID    int64              `bun:",notnull"`
	Journal      *Journal           `bun:"rel:belongs-to,join:journal_id=id"`
	FiscalYearID int64              `bun:",notnull"`
	FiscalYear   *FiscalYear        `bun:"rel:belongs-to,join:fiscal_year_id=id"`
	Lines        []*TransactionLine `bun:"rel:has-many,join:id=transaction_id"`
	CreatedAt    time.Time          `bun:",nullzero,notnull,default:current_timestamp"`
	ValidatedAt  time.Time          `bun:",nullzero"`
}

// TransactionLine belongs to exactly one Transaction and references
// exactly one Account. Immutable once written.
type TransactionLine struct {
	ID            int64           `bun:",pk,autoincrement"`
	TransactionID int64           `bun:",notnull"`
	Transaction   *Transaction    `bun:"rel:belongs-to,join:transaction_id=id"`
	AccountID     int64           `bun:",notnull"`
	Account       *Account        `bun:"rel:belongs-to,join:account_id=id"`
	Debit         decimal.Decimal `bun:"type:numeric(18,2),notnull"`
	Credit        decimal.Decimal `bun:"type:numeric(18,2),notnull"`
	CreatedAt     time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}
