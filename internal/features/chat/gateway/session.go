package chat_gateway

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	sendBufferSize = 256

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxFrameSize = 8 * 1024
)

// Session is one live WebSocket connection of an authenticated user.
type Session struct {
	id     uuid.UUID
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte

	// Token expiry captured at handshake; every event is re-checked against
	// it without re-parsing the token
	tokenExpiresAt time.Time

	mu         sync.Mutex
	joined     map[uuid.UUID]bool
	sendClosed bool

	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, userID uuid.UUID, tokenExpiresAt time.Time) *Session {
	return &Session{
		id:             uuid.New(),
		userID:         userID,
		conn:           conn,
		send:           make(chan []byte, sendBufferSize),
		tokenExpiresAt: tokenExpiresAt,
		joined:         make(map[uuid.UUID]bool),
	}
}

func (s *Session) markJoined(taskID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joined[taskID] = true
}

func (s *Session) hasJoined(taskID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joined[taskID]
}

func (s *Session) isTokenExpired() bool {
	return !s.tokenExpiresAt.IsZero() && time.Now().After(s.tokenExpiresAt)
}

// enqueue hands a frame to the write pump without ever blocking; a full buffer
// means the frame is dropped for this slow consumer, a torn-down session drops
// everything.
func (s *Session) enqueue(frame []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sendClosed {
		return false
	}

	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once. It takes the same lock as
// enqueue, so a broadcast that snapshotted this session before teardown can
// never hit a closed channel.
func (s *Session) closeSend() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sendClosed {
		return
	}
	s.sendClosed = true
	close(s.send)
}

func (s *Session) closeConnection() {
	s.closeOnce.Do(func() {
		s.conn.Close()
	})
}
