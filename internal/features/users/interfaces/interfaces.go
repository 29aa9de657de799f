package users_interfaces

import (
	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, teamID *uuid.UUID)
}

// SessionCloser tears down live chat connections. Implemented by the realtime
// gateway and injected here so deactivating a user kills their sockets too.
type SessionCloser interface {
	CloseUserSessions(userID uuid.UUID, reason string)
}
