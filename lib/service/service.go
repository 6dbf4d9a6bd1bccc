package service

import (
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type ComptaService struct {
	Config            *Config
	DB                *bun.DB
	Logger            *lecho.Logger
	TransactionPubSub *Pubsub
}
