package service

import (
	"testing"
	"time"

	"github.com/juriscab/comptahub/common"
	"github.com/juriscab/comptahub/db/models"
	"github.com/stretchr/testify/assert"
)

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	svc := &ComptaService{TransactionPubSub: NewPubsub()}
	ch, err := svc.SubscribeValidatedTransactions()
	assert.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < eventBufferSize; i++ {
			svc.TransactionPubSub.Publish(common.TransactionStatusValidated, models.Transaction{ID: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publishing stalled while the subscriber was not draining")
	}
	assert.Equal(t, eventBufferSize, len(ch))
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	ps := NewPubsub()
	ch := make(chan models.Transaction, 1)
	id := ps.Subscribe(common.TransactionStatusValidated, ch)

	ps.Unsubscribe(id, common.TransactionStatusValidated)
	_, open := <-ch
	assert.False(t, open)

	// publishing after the last unsubscribe is a no-op
	ps.Publish(common.TransactionStatusValidated, models.Transaction{ID: 1})
}
