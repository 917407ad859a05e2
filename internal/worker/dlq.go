package worker

// Jobs that exhaust their retries land in a per-queue dead letter list
// ("dlq:jobs:recompute", "dlq:jobs:email") with the payload and failure
// context intact, so an operator can inspect and replay them.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const deadLetterPrefix = "dlq:"

type deadLetter struct {
	Queue    string          `json:"queue"`
	JobType  string          `json:"job_type"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	FailedAt time.Time       `json:"failed_at"`
	Attempts int             `json:"attempts"`
}

// pushDeadLetter parks a permanently failed job. Best effort: if redis
// rejects the push the job is lost and only the log remains.
func pushDeadLetter(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, cause error, attempts int) {
	entry := deadLetter{
		Queue:    queue,
		JobType:  jobType,
		Payload:  payload,
		Error:    cause.Error(),
		FailedAt: time.Now().UTC(),
		Attempts: attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead letter: marshal failed")
		return
	}

	key := deadLetterPrefix + queue
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("dead letter: push failed")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("error", entry.Error).
		Int("attempts", attempts).
		Msg("job parked in dead letter list")
}

// DeadLetterCount reports the dead letter backlog of one queue.
func DeadLetterCount(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, deadLetterPrefix+queue).Result()
}
