package projects_interfaces

import "github.com/google/uuid"

// ProjectDeletionListener is notified before a project row is removed so dependent
// features (tasks, attachments) can clean up their own data first.
type ProjectDeletionListener interface {
	OnBeforeProjectDeletion(projectID uuid.UUID) error
}
