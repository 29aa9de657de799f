package attachments_services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	attachments_dto "github.com/Betocasasa/projecthub-backend/internal/features/attachments/dto"
	attachments_models "github.com/Betocasasa/projecthub-backend/internal/features/attachments/models"
	attachments_repositories "github.com/Betocasasa/projecthub-backend/internal/features/attachments/repositories"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	users_models "github.com/Betocasasa/projecthub-backend/internal/features/users/models"
	blob_storage "github.com/Betocasasa/projecthub-backend/internal/util/blob"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"

	"github.com/google/uuid"
)

const (
	// 20 MiB upload ceiling
	MaxAttachmentSizeBytes = 20 * 1024 * 1024

	downloadURLExpiry = 15 * time.Minute

	blobDeletionQueueKey = "ph_blob_deletion_queue"
)

type AttachmentService struct {
	attachmentRepository *attachments_repositories.AttachmentRepository
	taskService          *tasks_services.TaskService
	blobStorage          blob_storage.Storage
	queueService         *cache_utils.ValkeyQueueService
	logger               *slog.Logger
}

func (s *AttachmentService) UploadAttachment(
	taskID uuid.UUID,
	fileHeader *multipart.FileHeader,
	uploader *users_models.User,
) (*attachments_dto.AttachmentResponseDTO, error) {
	if _, err := s.taskService.GetTask(taskID, uploader); err != nil {
		return nil, err
	}

	if fileHeader.Size <= 0 {
		return nil, errors.New("attachment is empty")
	}
	if fileHeader.Size > MaxAttachmentSizeBytes {
		return nil, errors.New("attachment exceeds the maximum allowed size")
	}

	fileName := filepath.Base(fileHeader.Filename)
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, errors.New("invalid attachment file name")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	attachmentID := uuid.New()
	storageKey := fmt.Sprintf("%s/%s-%s", taskID, attachmentID, fileName)
	contentType := fileHeader.Header.Get("Content-Type")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.blobStorage.Write(ctx, storageKey, file, fileHeader.Size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	attachment := &attachments_models.Attachment{
		ID:          attachmentID,
		TaskID:      taskID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
		StorageKey:  storageKey,
		UploadedBy:  uploader.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.attachmentRepository.CreateAttachment(attachment); err != nil {
		// Blob already written, let the deletion worker reclaim it
		s.enqueueBlobDeletion([]string{storageKey})
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}

	return s.toResponseDTO(ctx, attachment), nil
}

func (s *AttachmentService) GetTaskAttachments(
	taskID uuid.UUID,
	user *users_models.User,
) (*attachments_dto.ListAttachmentsResponseDTO, error) {
	if _, err := s.taskService.GetTask(taskID, user); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepository.GetAttachmentsByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response := &attachments_dto.ListAttachmentsResponseDTO{
		Attachments: make([]*attachments_dto.AttachmentResponseDTO, 0, len(attachments)),
	}
	for _, attachment := range attachments {
		response.Attachments = append(response.Attachments, s.toResponseDTO(ctx, attachment))
	}

	return response, nil
}

func (s *AttachmentService) DeleteAttachment(
	attachmentID uuid.UUID,
	user *users_models.User,
) error {
	attachment, err := s.attachmentRepository.GetAttachmentByID(attachmentID)
	if err != nil {
		return fmt.Errorf("failed to get attachment: %w", err)
	}
	if attachment == nil {
		return errors.New("attachment not found")
	}

	if _, err := s.taskService.GetTask(attachment.TaskID, user); err != nil {
		return err
	}

	if err := s.attachmentRepository.DeleteAttachment(attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	s.enqueueBlobDeletion([]string{attachment.StorageKey})

	return nil
}

// OpenAttachment streams attachment bytes after checking task access. Used by
// the download endpoint of the local storage driver.
func (s *AttachmentService) OpenAttachment(
	attachmentID uuid.UUID,
	user *users_models.User,
) (*attachments_models.Attachment, io.ReadCloser, error) {
	attachment, err := s.attachmentRepository.GetAttachmentByID(attachmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	if attachment == nil {
		return nil, nil, errors.New("attachment not found")
	}

	if _, err := s.taskService.GetTask(attachment.TaskID, user); err != nil {
		return nil, nil, err
	}

	// No deadline here: the caller streams the body and closes it
	reader, err := s.blobStorage.Read(context.Background(), attachment.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return attachment, reader, nil
}

// OnBeforeTaskDeletion removes the task's attachment rows and queues their
// blobs for background deletion.
func (s *AttachmentService) OnBeforeTaskDeletion(taskID uuid.UUID) error {
	attachments, err := s.attachmentRepository.GetAttachmentsByTaskID(taskID)
	if err != nil {
		return fmt.Errorf("failed to list task attachments: %w", err)
	}

	if err := s.attachmentRepository.DeleteAttachmentsByTaskID(taskID); err != nil {
		return fmt.Errorf("failed to delete task attachments: %w", err)
	}

	storageKeys := make([]string, 0, len(attachments))
	for _, attachment := range attachments {
		storageKeys = append(storageKeys, attachment.StorageKey)
	}
	s.enqueueBlobDeletion(storageKeys)

	return nil
}

// ProcessPendingBlobDeletions drains the deletion queue and removes the blobs
// from storage. Returns how many blobs were processed.
func (s *AttachmentService) ProcessPendingBlobDeletions() (int, error) {
	items, err := s.queueService.DequeueBatch(blobDeletionQueueKey, 100, time.Second)
	if err != nil {
		return 0, fmt.Errorf("failed to dequeue blob deletions: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	processed := 0
	for _, item := range items {
		storageKey := string(item)
		if err := s.blobStorage.Delete(ctx, storageKey); err != nil {
			s.logger.Error("failed to delete blob",
				slog.String("storageKey", storageKey),
				slog.Any("error", err))
			continue
		}
		processed++
	}

	return processed, nil
}

func (s *AttachmentService) enqueueBlobDeletion(storageKeys []string) {
	if len(storageKeys) == 0 {
		return
	}

	items := make([][]byte, 0, len(storageKeys))
	for _, key := range storageKeys {
		items = append(items, []byte(key))
	}

	if err := s.queueService.EnqueueBatch(blobDeletionQueueKey, items); err != nil {
		s.logger.Error("failed to enqueue blob deletions", slog.Any("error", err))
	}
}

func (s *AttachmentService) toResponseDTO(
	ctx context.Context,
	attachment *attachments_models.Attachment,
) *attachments_dto.AttachmentResponseDTO {
	url, err := s.blobStorage.GetURL(ctx, attachment.StorageKey, downloadURLExpiry)
	if err != nil {
		s.logger.Warn("failed to build attachment URL",
			slog.String("attachmentId", attachment.ID.String()),
			slog.Any("error", err))
	}
	if url == "" {
		// Local storage has no direct URL, point at the download endpoint
		url = "/api/v1/attachments/" + attachment.ID.String() + "/download"
	}

	return &attachments_dto.AttachmentResponseDTO{
		ID:          attachment.ID,
		TaskID:      attachment.TaskID,
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
		SizeBytes:   attachment.SizeBytes,
		URL:         url,
		UploadedBy:  attachment.UploadedBy,
		CreatedAt:   attachment.CreatedAt,
	}
}
