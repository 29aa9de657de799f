package tasks_interfaces

import "github.com/google/uuid"

// TaskDeletionListener is notified before a task row is removed so dependent
// features (chat messages, attachments) can clean up their own data first.
type TaskDeletionListener interface {
	OnBeforeTaskDeletion(taskID uuid.UUID) error
}
