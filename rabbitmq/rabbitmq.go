package rabbitmq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/juriscab/comptahub/db/models"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of heap memory.
// Instead of allocating new memory everytime we need to encode a transaction we
// reuse buffers from this buffer pool. If we consume events sequentially there will
// only be one buffer in this pool at all times, but when scaling to multiple go
// routines this memory pool will scale with it.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

type (
	SubscribeToTransactionsFunc = func() (chan models.Transaction, error)
	EncodeTransactionFunc       = func(ctx context.Context, w io.Writer, transaction models.Transaction) error
)

type Client interface {
	// StartPublishTransactions subscribes to validated transactions coming
	// from the ledger and publishes them on the transaction exchange.
	StartPublishTransactions(context.Context, SubscribeToTransactionsFunc, EncodeTransactionFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	transactionExchange string
}

type ClientOption = func(client *DefaultClient)

func WithTransactionExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.transactionExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// NewClient wraps a connected AMQP client with the exchange topology
// used to publish ledger events.
func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		transactionExchange: "comptahub_transaction",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) StartPublishTransactions(ctx context.Context, transactionsSubscribeFunc SubscribeToTransactionsFunc, payloadFunc EncodeTransactionFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.transactionExchange,
		// topic is a type of exchange that allows routing messages to different queue's bases on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchange's accept direct publishing
		false,
		// Nowait: We set this to false as we want to wait for a server response
		// to check whether the exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	validated, err := transactionsSubscribeFunc()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case transaction := <-validated:
			err = client.publishToTransactionExchange(ctx, transaction, payloadFunc)
			if err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishToTransactionExchange(ctx context.Context, transaction models.Transaction, payloadFunc EncodeTransactionFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := payloadFunc(ctx, payload, transaction)
	if err != nil {
		return err
	}

	journalCode := ""
	if transaction.Journal != nil {
		journalCode = transaction.Journal.Code
	}
	key := fmt.Sprintf("transaction.%s.%s", transaction.Status, journalCode)

	err = client.amqpClient.PublishWithContext(ctx,
		client.transactionExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published transaction %d to rabbitmq with key %s", transaction.ID, key)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
