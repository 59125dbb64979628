// Package worker runs scheduled price fetches, in-process or through Asynq.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"btcwidget/internal/service"
)

// FetchProcessor performs one scheduled fetch.
type FetchProcessor interface {
	ProcessFetch(ctx context.Context, fetchID string) error
}

// NewPriceFetchHandler returns a function to handle price fetch tasks.
func NewPriceFetchHandler(svc FetchProcessor, logger *zap.SugaredLogger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload service.FetchPricePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Errorw("Invalid task payload", "type", t.Type(), "error", err)
			return nil
		}

		if err := svc.ProcessFetch(ctx, payload.FetchID); err != nil {
			logger.Errorw("Task processing failed", "fetch_id", payload.FetchID, "error", err)
			return err
		}

		logger.Infow("Task completed", "fetch_id", payload.FetchID)
		return nil
	}
}

var _ service.Enqueuer = (*AsynqEnqueuer)(nil)

// AsynqEnqueuer enqueues fetch tasks to Asynq. Tasks are never retried.
type AsynqEnqueuer struct {
	client  *asynq.Client
	timeout time.Duration
}

// NewAsynqEnqueuer creates a new AsynqEnqueuer with the given client and task timeout.
func NewAsynqEnqueuer(client *asynq.Client, timeout time.Duration) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client:  client,
		timeout: timeout,
	}
}

// NewFetchTask builds the Asynq task for payload.
func NewFetchTask(payload service.FetchPricePayload, timeout time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(service.TaskTypeFetchPrice, data,
		asynq.MaxRetry(0),
		asynq.Timeout(timeout),
	), nil
}

// EnqueueFetch enqueues a price fetch task.
func (e *AsynqEnqueuer) EnqueueFetch(ctx context.Context, payload service.FetchPricePayload) error {
	task, err := NewFetchTask(payload, e.timeout)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}
