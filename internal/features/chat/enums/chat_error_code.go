package chat_enums

type ChatErrorCode string

const (
	ChatErrorCodeUnauthenticated ChatErrorCode = "UNAUTHENTICATED"
	ChatErrorCodeTaskNotFound    ChatErrorCode = "TASK_NOT_FOUND"
	ChatErrorCodeNotJoined       ChatErrorCode = "NOT_JOINED"
	ChatErrorCodeInvalidPayload  ChatErrorCode = "INVALID_PAYLOAD"
	ChatErrorCodeStorageFailure  ChatErrorCode = "STORAGE_FAILURE"
	ChatErrorCodeRateLimited     ChatErrorCode = "RATE_LIMITED"
)
