package service

import (
	"context"

	"github.com/google/uuid"
)

// JobDispatcher enqueues background work onto the redis-backed queues.
// Satisfied by *worker.Dispatcher; defined here so services never import
// the worker package.
type JobDispatcher interface {
	EnqueueRecompute(ctx context.Context) error
	EnqueueRemitEmail(ctx context.Context, orderID uuid.UUID, recipient string) error
}
