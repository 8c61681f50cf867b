package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentExpiryJob periodically fails unpaid pending orders whose payment
// session must have lapsed. It is the safety net behind the per-order expiry
// notifications from the payment provider: lost notifications are caught on
// the next sweep.
type PaymentExpiryJob struct {
	handler    commands.ExpireStalePaymentsCommandHandler
	sessionTTL time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPaymentExpiryJob creates a sweep job. sessionTTL is how long a pending
// unpaid order may live before the sweep fails it.
func NewPaymentExpiryJob(
	handler commands.ExpireStalePaymentsCommandHandler,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *PaymentExpiryJob {
	return &PaymentExpiryJob{
		handler:    handler,
		sessionTTL: sessionTTL,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "payment_expiry_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *PaymentExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireStalePaymentsCommand(time.Now().UTC().Add(-j.sessionTTL))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "payment expiry sweep misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "payment expiry sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "payment expiry job started",
		"session_ttl", j.sessionTTL.String())
	return nil
}

// Stop stops the sweep.
func (j *PaymentExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "payment expiry job stopped")
}
