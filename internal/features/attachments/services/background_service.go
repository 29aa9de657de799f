package attachments_services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Betocasasa/projecthub-backend/internal/config"
)

// AttachmentCleanupBackgroundService drains the blob deletion queue so removed
// attachments eventually disappear from storage too.
type AttachmentCleanupBackgroundService struct {
	attachmentService *AttachmentService
	logger            *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const blobDeletionInterval = 30 * time.Second

func (s *AttachmentCleanupBackgroundService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting attachment cleanup background worker",
		slog.Duration("interval", blobDeletionInterval))

	s.wg.Add(1)
	go s.blobDeletionWorker()
}

// ExecuteAllTasksForTest drains the deletion queue synchronously.
func (s *AttachmentCleanupBackgroundService) ExecuteAllTasksForTest() error {
	_, err := s.attachmentService.ProcessPendingBlobDeletions()
	return err
}

func (s *AttachmentCleanupBackgroundService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *AttachmentCleanupBackgroundService) blobDeletionWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(blobDeletionInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Attachment cleanup worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Attachment cleanup worker shutting down")
			return

		case <-ticker.C:
			if _, err := s.attachmentService.ProcessPendingBlobDeletions(); err != nil {
				s.logger.Error("Error during blob deletion", slog.String("error", err.Error()))
			}
		}
	}
}
