package models

import "time"

// FiscalYear : Accounting period Model. At most one row is current at a
// time (enforced with a partial unique index).
type FiscalYear struct {
	ID        int64     `bun:",pk,autoincrement"`
	Name      string    `bun:",notnull,unique"`
	StartDate time.Time `bun:",notnull"`
	EndDate   time.Time `bun:",notnull"`
	IsCurrent bool      `bun:",notnull,default:false"`
	Status    string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
