package chat_cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Betocasasa/projecthub-backend/internal/config"
	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	chat_services "github.com/Betocasasa/projecthub-backend/internal/features/chat/services"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
)

// ChatCleanupBackgroundService prunes expired chat messages according to the
// workspace retention setting, plus old audit log entries.
type ChatCleanupBackgroundService struct {
	chatService     *chat_services.ChatService
	settingsService *users_services.SettingsService
	auditLogService *audit_logs.AuditLogService
	logger          *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const (
	retentionCleanupInterval = 10 * time.Minute

	auditLogRetentionDays = 365
)

func (s *ChatCleanupBackgroundService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting chat cleanup background worker",
		slog.Duration("interval", retentionCleanupInterval))

	s.wg.Add(1)
	go s.retentionWorker()
}

// ExecuteAllTasksForTest runs every cleanup pass synchronously.
func (s *ChatCleanupBackgroundService) ExecuteAllTasksForTest() error {
	if err := s.pruneExpiredMessages(); err != nil {
		s.logger.Error("Error during message retention in test execution", slog.String("error", err.Error()))
		return err
	}

	if err := s.pruneOldAuditLogs(); err != nil {
		s.logger.Error("Error during audit log cleanup in test execution", slog.String("error", err.Error()))
		return err
	}

	return nil
}

func (s *ChatCleanupBackgroundService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *ChatCleanupBackgroundService) retentionWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(retentionCleanupInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Chat cleanup worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Chat cleanup worker shutting down")
			return

		case <-ticker.C:
			if err := s.pruneExpiredMessages(); err != nil {
				s.logger.Error("Error during message retention", slog.String("error", err.Error()))
			}
			if err := s.pruneOldAuditLogs(); err != nil {
				s.logger.Error("Error during audit log cleanup", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *ChatCleanupBackgroundService) pruneExpiredMessages() error {
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get workspace settings: %w", err)
	}

	// Zero retention means messages are kept forever
	_, err = s.chatService.PruneExpiredMessages(settings.MessageRetentionDays)

	return err
}

func (s *ChatCleanupBackgroundService) pruneOldAuditLogs() error {
	deleted, err := s.auditLogService.PruneOldAuditLogs(auditLogRetentionDays)
	if err != nil {
		return fmt.Errorf("failed to prune audit logs: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("Pruned old audit logs", slog.Int64("count", deleted))
	}

	return nil
}
