package models

import "time"

// Journal : Book of original entry Model (e.g. VE, AC, BQ1).
// Created once at bootstrap, immutable afterwards.
type Journal struct {
	ID        int64     `bun:",pk,autoincrement"`
	Code      string    `bun:",notnull,unique"`
	Name      string    `bun:",notnull"`
	Type      string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
