package worker

// email_worker.go
// Processes remit email jobs from QueueEmail: renders the remit, writes
// the PDF and mails it with the PDF attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rafamossetto/distributor-api/internal/infra"
	"github.com/rafamossetto/distributor-api/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type EmailWorker struct {
	remits         service.RemitService
	mailer         *infra.Mailer
	pdfStoragePath string
}

func NewEmailWorker(remits service.RemitService, mailer *infra.Mailer, pdfStoragePath string) *EmailWorker {
	return &EmailWorker{
		remits:         remits,
		mailer:         mailer,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process renders the remit for the order and sends it as a PDF attachment.
// Delivery is retried with exponential backoff; a permanent failure moves
// the job to the DLQ.
func (w *EmailWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Msg("email_worker: invalid order_id")
		return
	}

	// Ownership was checked when the job was enqueued.
	remit, err := w.remits.Build(ctx, service.Caller{IsAdmin: true}, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("email_worker: failed to build remit")
		return
	}

	pdfPath, err := infra.GenerateRemitPDF(remit, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("email_worker: PDF generation failed")
		return
	}

	subject := fmt.Sprintf("Remito N° %d", remit.RemitNumber)
	body := fmt.Sprintf("Adjunto encontrarás el remito N° %d.\nTotal: $%s", remit.RemitNumber, remit.Total)

	err = withRetry(ctx, 3, func(attempt int) error {
		if err := w.mailer.SendRemit(payload.ToEmail, subject, body, pdfPath); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("to", payload.ToEmail).
				Msg("email_worker: send attempt failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed after all retries")
		pushDeadLetter(ctx, rdb, QueueEmail, "email", raw, err, 3)
		return
	}

	log.Info().Str("to", payload.ToEmail).Int64("remit", remit.RemitNumber).Msg("email_worker: remit sent")
}
