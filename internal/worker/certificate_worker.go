package worker

import (
	"context"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	dequeueTimeout = 5 * time.Second
	errorBackoff   = 5 * time.Second
	maxFailures    = 5
)

// Generator renders and publishes the document for one certificate.
type Generator interface {
	Generate(ctx context.Context, certificateID string) error
}

// CertificateWorker consumes certificate ids and runs the artifact generator for each.
type CertificateWorker struct {
	queue     Queue
	generator Generator
	lockTTL   time.Duration
}

func NewCertificateWorker(queue Queue, generator Generator, lockTTL time.Duration) *CertificateWorker {
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	return &CertificateWorker{queue: queue, generator: generator, lockTTL: lockTTL}
}

// Start blocks until ctx is cancelled.
func (w *CertificateWorker) Start(ctx context.Context) {
	logger.Log.Info("certificate worker started")
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("certificate worker stopping")
			return
		default:
		}

		certificateID, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logger.Log.Error("certificate queue read failed", zap.Error(err))
			sleep(ctx, errorBackoff)
			continue
		}
		if certificateID == "" {
			continue
		}

		w.Process(ctx, certificateID)
	}
}

// Process handles one job under the certificate's lock. A job whose lock is
// held elsewhere is dropped, since the holder finishes or retries it.
func (w *CertificateWorker) Process(ctx context.Context, certificateID string) {
	release, ok, err := w.queue.Lock(ctx, certificateID, w.lockTTL)
	if err != nil {
		logger.Log.Error("certificate lock failed", zap.String("certificate_id", certificateID), zap.Error(err))
		w.retry(ctx, certificateID)
		return
	}
	if !ok {
		logger.Log.Debug("certificate already in progress", zap.String("certificate_id", certificateID))
		return
	}
	defer release()

	err = w.generator.Generate(ctx, certificateID)
	switch {
	case err == nil:
		if err := w.queue.Done(ctx, certificateID); err != nil {
			logger.Log.Warn("certificate job cleanup failed", zap.String("certificate_id", certificateID), zap.Error(err))
		}
	case errors.Is(err, util.ErrNotFound):
		logger.Log.Warn("dropping certificate job", zap.String("certificate_id", certificateID), zap.Error(err))
	default:
		logger.Log.Error("certificate generation failed", zap.String("certificate_id", certificateID), zap.Error(err))
		w.retry(ctx, certificateID)
	}
}

func (w *CertificateWorker) retry(ctx context.Context, certificateID string) {
	requeued, err := w.queue.Retry(ctx, certificateID, maxFailures)
	if err != nil {
		logger.Log.Error("certificate requeue failed", zap.String("certificate_id", certificateID), zap.Error(err))
		return
	}
	if !requeued {
		logger.Log.Warn("certificate job gave up, left for the pending sweep", zap.String("certificate_id", certificateID))
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
