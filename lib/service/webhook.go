package service

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/juriscab/comptahub/db/models"
)

func (svc *ComptaService) StartWebhookSubscription(ctx context.Context, url string) {

	svc.Logger.Infof("Starting webhook subscription with webhook url %s", url)
	validatedTransactions, err := svc.SubscribeValidatedTransactions()
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case transaction := <-validatedTransactions:
			svc.postToWebhook(ctx, url, transaction)
		}
	}
}

func (svc *ComptaService) postToWebhook(ctx context.Context, url string, transaction models.Transaction) {

	payload := new(bytes.Buffer)
	err := svc.EncodeTransactionEvent(ctx, payload, transaction)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	resp, err := http.Post(url, "application/json", payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
