package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/jobs"
)

const feeEventJob = "fee_event"

// Notifier delivers fee events to whoever follows payments.
type Notifier interface {
	Notify(ctx context.Context, event models.FeeEvent) error
}

// LogNotifier is the default sink: it records the event in the application log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the event.
func (n *LogNotifier) Notify(_ context.Context, event models.FeeEvent) error {
	n.logger.Info("tuition fee event",
		zap.String("action", string(event.Action)),
		zap.String("fee_id", event.Fee.ID),
		zap.String("student_id", event.StudentID),
		zap.String("matricule", event.Matricule),
		zap.String("month", string(event.Fee.Month)),
		zap.Float64("amount", event.Fee.Amount),
	)
	return nil
}

type jobEnqueuer interface {
	TryEnqueue(job jobs.Job) error
}

// FeeNotifier publishes fee events to the notification queue without blocking the caller.
type FeeNotifier struct {
	queue  jobEnqueuer
	logger *zap.Logger
}

// NewFeeNotifier constructs a FeeNotifier. A nil queue disables publishing.
func NewFeeNotifier(queue jobEnqueuer, logger *zap.Logger) *FeeNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeNotifier{queue: queue, logger: logger}
}

// Publish enqueues the event. Failures are logged and never returned.
func (p *FeeNotifier) Publish(event models.FeeEvent) {
	if p == nil || p.queue == nil {
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: feeEventJob, Payload: event}
	if err := p.queue.TryEnqueue(job); err != nil {
		p.logger.Warn("failed to publish fee event",
			zap.String("fee_id", event.Fee.ID),
			zap.String("action", string(event.Action)),
			zap.Error(err),
		)
	}
}

// NotificationWorker bridges queued fee events to a Notifier.
type NotificationWorker struct {
	notifier Notifier
	metrics  *MetricsService
	timeout  time.Duration
	logger   *zap.Logger
}

// NewNotificationWorker constructs a worker.
func NewNotificationWorker(notifier Notifier, metrics *MetricsService, logger *zap.Logger) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	return &NotificationWorker{notifier: notifier, metrics: metrics, timeout: 10 * time.Second, logger: logger}
}

// Handle processes one queued job.
func (w *NotificationWorker) Handle(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(models.FeeEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T for job %s", job.Payload, job.Type)
	}
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	return w.notifier.Notify(ctx, event)
}

// OnResult records the final outcome of a job once retries are settled.
func (w *NotificationWorker) OnResult(job jobs.Job, err error) {
	w.metrics.RecordNotification(err == nil)
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Warn("fee notification dropped", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err))
	}
}
