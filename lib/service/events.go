package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
	"github.com/shopspring/decimal"
)

// TransactionEvent is the payload published for every entry that reaches
// validated, consumed by the product surfaces outside the ledger
// (reporting dashboards, CARPA UI, notification glue).
type TransactionEvent struct {
	ID          int64                  `json:"id"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
	Status      string                 `json:"status"`
	JournalCode string                 `json:"journal_code"`
	ValidatedAt time.Time              `json:"validated_at"`
	Lines       []TransactionEventLine `json:"lines"`
}

type TransactionEventLine struct {
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// eventBufferSize absorbs bursts of validated entries so a briefly slow
// consumer does not stall the request that published them.
const eventBufferSize = 64

func (svc *ComptaService) SubscribeValidatedTransactions() (chan models.Transaction, error) {
	ch := make(chan models.Transaction, eventBufferSize)
	svc.TransactionPubSub.Subscribe(common.TransactionStatusValidated, ch)
	return ch, nil
}

func (svc *ComptaService) EncodeTransactionEvent(ctx context.Context, w io.Writer, transaction models.Transaction) error {
	event := TransactionEvent{
		ID:          transaction.ID,
		Description: transaction.Description,
		Date:        transaction.Date,
		Status:      transaction.Status,
		ValidatedAt: transaction.ValidatedAt,
		Lines:       make([]TransactionEventLine, len(transaction.Lines)),
	}
	if transaction.Journal != nil {
		event.JournalCode = transaction.Journal.Code
	}
	for i, line := range transaction.Lines {
		event.Lines[i] = TransactionEventLine{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		}
	}
	return json.NewEncoder(w).Encode(event)
}
