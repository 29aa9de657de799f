package chat_services

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	chat_dto "github.com/Betocasasa/projecthub-backend/internal/features/chat/dto"
	chat_enums "github.com/Betocasasa/projecthub-backend/internal/features/chat/enums"
	chat_interfaces "github.com/Betocasasa/projecthub-backend/internal/features/chat/interfaces"
	chat_models "github.com/Betocasasa/projecthub-backend/internal/features/chat/models"
	chat_repositories "github.com/Betocasasa/projecthub-backend/internal/features/chat/repositories"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"
	"github.com/Betocasasa/projecthub-backend/internal/util/rate_limit"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	maxMessageLength = 4000

	// Per-user flood control on sends
	sendRateLimitRPS   = 5
	sendRateLimitBurst = 20

	lockStripeCount = 64
)

type ChatService struct {
	messageRepository *chat_repositories.MessageRepository
	taskService       *tasks_services.TaskService
	rateLimiter       *rate_limit.RateLimiter
	historyCacheUtil  *cache_utils.CacheUtil[chat_dto.GetHistoryResponseDTO]
	logger            *slog.Logger

	roomBroadcaster chat_interfaces.RoomBroadcaster
	singleflight    singleflight.Group

	// Striped by task id so concurrent appends to one task serialize
	// without a global lock across all tasks
	taskLocks [lockStripeCount]sync.Mutex
}

// SetRoomBroadcaster injects the realtime gateway so successful appends reach
// every live session of the task's room.
func (s *ChatService) SetRoomBroadcaster(broadcaster chat_interfaces.RoomBroadcaster) {
	s.roomBroadcaster = broadcaster
}

// AppendMessage validates, persists and broadcasts one chat message. The sender
// identity always comes from the authenticated caller, never the payload.
func (s *ChatService) AppendMessage(
	taskID uuid.UUID,
	senderID uuid.UUID,
	request *chat_dto.SendMessageRequestDTO,
) (*chat_models.TaskMessage, error) {
	if strings.TrimSpace(request.Message) == "" {
		return nil, chat_models.NewChatError(chat_enums.ChatErrorCodeInvalidPayload, "message cannot be empty")
	}
	if len(request.Message) > maxMessageLength {
		return nil, chat_models.NewChatError(chat_enums.ChatErrorCodeInvalidPayload, "message is too long")
	}

	if _, err := s.taskService.GetTaskWithCache(taskID); err != nil {
		return nil, chat_models.NewChatError(chat_enums.ChatErrorCodeTaskNotFound, "task not found")
	}

	rateLimitResult, err := s.rateLimiter.CheckRateLimit(senderID, sendRateLimitRPS, sendRateLimitBurst)
	if err != nil {
		// Fail open: a cache outage must not take chat down with it
		s.logger.Warn("rate limit check failed, allowing message", slog.Any("error", err))
	} else if !rateLimitResult.Allowed {
		return nil, chat_models.NewChatError(chat_enums.ChatErrorCodeRateLimited, "too many messages, slow down")
	}

	lock := s.lockForTask(taskID)
	lock.Lock()
	defer lock.Unlock()

	message := &chat_models.TaskMessage{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    senderID,
		Message:   request.Message,
		Emoji:     request.Emoji,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.messageRepository.AppendMessage(message); err != nil {
		s.logger.Error("failed to append chat message",
			slog.String("taskId", taskID.String()),
			slog.Any("error", err))
		return nil, chat_models.NewChatError(chat_enums.ChatErrorCodeStorageFailure, "failed to store message")
	}

	s.historyCacheUtil.Invalidate(taskID.String())

	// Broadcast only after the message is durably persisted
	if s.roomBroadcaster != nil {
		s.roomBroadcaster.BroadcastNewMessage(taskID, message)
	}

	return message, nil
}

// GetHistory returns the task's chat log in append order. A positive limit
// returns only that many most recent messages.
func (s *ChatService) GetHistory(taskID uuid.UUID, limit int) ([]*chat_models.TaskMessage, error) {
	if _, err := s.taskService.GetTaskWithCache(taskID); err != nil {
		return nil, chat_models.NewChatError(chat_enums.ChatErrorCodeTaskNotFound, "task not found")
	}

	taskIDStr := taskID.String()

	if cached := s.historyCacheUtil.Get(taskIDStr); cached != nil {
		return recentWindow(cached.Messages, limit), nil
	}

	result, err, _ := s.singleflight.Do(taskIDStr, func() (any, error) {
		return s.messageRepository.GetHistoryByTaskID(taskID)
	})
	if err != nil {
		s.logger.Error("failed to load chat history",
			slog.String("taskId", taskIDStr),
			slog.Any("error", err))
		return nil, chat_models.NewChatError(chat_enums.ChatErrorCodeStorageFailure, "failed to load chat history")
	}

	messages, ok := result.([]*chat_models.TaskMessage)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to chat history")
	}

	s.historyCacheUtil.Set(taskIDStr, &chat_dto.GetHistoryResponseDTO{Messages: messages})

	return recentWindow(messages, limit), nil
}

// OnBeforeTaskDeletion drops the task's chat log when the task goes away.
func (s *ChatService) OnBeforeTaskDeletion(taskID uuid.UUID) error {
	if err := s.messageRepository.DeleteMessagesByTaskID(taskID); err != nil {
		return fmt.Errorf("failed to delete task messages: %w", err)
	}

	s.historyCacheUtil.Invalidate(taskID.String())

	return nil
}

// PruneExpiredMessages removes messages older than the retention window.
// A non-positive retention keeps everything.
func (s *ChatService) PruneExpiredMessages(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	deleted, err := s.messageRepository.DeleteMessagesBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune expired messages: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("pruned expired chat messages",
			slog.Int64("count", deleted),
			slog.Int("retentionDays", retentionDays))
	}

	return deleted, nil
}

func (s *ChatService) lockForTask(taskID uuid.UUID) *sync.Mutex {
	hash := fnv.New32a()
	hash.Write(taskID[:])

	return &s.taskLocks[hash.Sum32()%lockStripeCount]
}

func recentWindow(messages []*chat_models.TaskMessage, limit int) []*chat_models.TaskMessage {
	if limit > 0 && len(messages) > limit {
		return messages[len(messages)-limit:]
	}

	return messages
}
