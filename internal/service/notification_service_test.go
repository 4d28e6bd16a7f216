package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/jobs"
)

type stubEnqueuer struct {
	jobs []jobs.Job
	err  error
}

func (s *stubEnqueuer) TryEnqueue(job jobs.Job) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

type recordingNotifier struct {
	events []models.FeeEvent
	err    error
}

func (r *recordingNotifier) Notify(ctx context.Context, event models.FeeEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func TestFeeNotifierPublish(t *testing.T) {
	queue := &stubEnqueuer{}
	notifier := NewFeeNotifier(queue, nil)

	notifier.Publish(models.FeeEvent{Action: models.FeeCreated, Fee: models.TuitionFee{ID: "fee-1"}})
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, feeEventJob, queue.jobs[0].Type)
	assert.NotEmpty(t, queue.jobs[0].ID)
}

func TestFeeNotifierPublishFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	notifier := NewFeeNotifier(&stubEnqueuer{err: jobs.ErrQueueFull}, zap.New(core))

	assert.NotPanics(t, func() {
		notifier.Publish(models.FeeEvent{Action: models.FeeDeleted, Fee: models.TuitionFee{ID: "fee-1"}})
	})
	assert.Equal(t, 1, logs.FilterMessage("failed to publish fee event").Len())

	var disabled *FeeNotifier
	assert.NotPanics(t, func() { disabled.Publish(models.FeeEvent{}) })
}

func TestNotificationWorkerHandle(t *testing.T) {
	sink := &recordingNotifier{}
	metrics := NewMetricsService()
	worker := NewNotificationWorker(sink, metrics, nil)
	event := models.FeeEvent{Action: models.FeeUpdated, StudentID: "stu-1"}

	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: "job-1", Type: feeEventJob, Payload: event}))
	assert.Equal(t, []models.FeeEvent{event}, sink.events)

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-2", Type: feeEventJob, Payload: "garbage"})
	assert.Error(t, err)

	worker.OnResult(jobs.Job{ID: "job-1"}, nil)
	worker.OnResult(jobs.Job{ID: "job-3"}, errors.New("smtp down"))
	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.NotificationsSent)
	assert.Equal(t, uint64(1), snapshot.NotificationsFailed)
}

func TestLogNotifierNotify(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	notifier := NewLogNotifier(zap.New(core))

	require.NoError(t, notifier.Notify(context.Background(), models.FeeEvent{Action: models.FeeCreated, Matricule: "4821", Fee: models.TuitionFee{Month: models.MonthMarch}}))
	entries := logs.FilterMessage("tuition fee event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "4821", entries[0].ContextMap()["matricule"])
}
