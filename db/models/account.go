package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account : Chart of accounts entry Model
//
// Balance is the net effect of all validated transaction lines posted to
// this account; draft lines never touch it. Only the posting path mutates
// it, through the sign convention in lib/service.
type Account struct {
	ID        int64           `bun:",pk,autoincrement"`
	Code      string          `bun:",notnull,unique"`
	Name      string          `bun:",notnull"`
	Type      string          `bun:",notnull"`
	Balance   decimal.Decimal `bun:"type:numeric(18,2),notnull"`
	CreatedAt time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}
