package chat_gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	chat_dto "github.com/Betocasasa/projecthub-backend/internal/features/chat/dto"
	chat_enums "github.com/Betocasasa/projecthub-backend/internal/features/chat/enums"
	chat_models "github.com/Betocasasa/projecthub-backend/internal/features/chat/models"
	chat_services "github.com/Betocasasa/projecthub-backend/internal/features/chat/services"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Gateway runs the WebSocket side of task chat. It owns the room registry,
// feeds sends through the chat service and fans persisted messages back out.
type Gateway struct {
	registry    *Registry
	chatService *chat_services.ChatService
	taskService *tasks_services.TaskService
	userService *users_services.UserService
	logger      *slog.Logger
	upgrader    websocket.Upgrader

	sessionsMu sync.RWMutex
	sessions   map[uuid.UUID]map[uuid.UUID]*Session
}

func NewGateway(
	chatService *chat_services.ChatService,
	taskService *tasks_services.TaskService,
	userService *users_services.UserService,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		registry:    NewRegistry(),
		chatService: chatService,
		taskService: taskService,
		userService: userService,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  maxFrameSize,
			WriteBufferSize: maxFrameSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[uuid.UUID]map[uuid.UUID]*Session),
	}
}

func (g *Gateway) Registry() *Registry {
	return g.registry
}

// HandleConnection upgrades first and authenticates second, so a bad token
// still gets a proper error event instead of a dropped handshake. No event is
// processed before authentication succeeds.
func (g *Gateway) HandleConnection(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		token = strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	}

	conn, err := g.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return
	}

	user, tokenExpiresAt, err := g.userService.GetUserFromTokenWithExpiry(token)
	if err != nil || user == nil || !user.IsActiveUser() {
		g.writeDirect(conn, errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeUnauthenticated, "invalid or expired token")))
		conn.Close()
		return
	}

	session := newSession(conn, user.ID, tokenExpiresAt)
	g.register(session)

	go g.writePump(session)
	g.readPump(session)

	g.unregister(session)
}

// BroadcastNewMessage fans a persisted message out to the task's room. Called
// by the chat service after a successful append, for both WS and HTTP sends.
func (g *Gateway) BroadcastNewMessage(taskID uuid.UUID, message *chat_models.TaskMessage) {
	frame, err := newMessageFrame(message)
	if err != nil {
		g.logger.Error("failed to encode message frame", slog.Any("error", err))
		return
	}

	g.registry.Broadcast(taskID, frame)
}

// CloseUserSessions tears down every live connection of a user, e.g. when an
// admin deactivates the account.
func (g *Gateway) CloseUserSessions(userID uuid.UUID, reason string) {
	g.sessionsMu.RLock()
	userSessions := make([]*Session, 0, len(g.sessions[userID]))
	for _, session := range g.sessions[userID] {
		userSessions = append(userSessions, session)
	}
	g.sessionsMu.RUnlock()

	for _, session := range userSessions {
		session.enqueue(errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeUnauthenticated, reason)))
		session.closeSend()
	}
}

func (g *Gateway) register(session *Session) {
	g.sessionsMu.Lock()
	defer g.sessionsMu.Unlock()

	userSessions, ok := g.sessions[session.userID]
	if !ok {
		userSessions = make(map[uuid.UUID]*Session)
		g.sessions[session.userID] = userSessions
	}
	userSessions[session.id] = session
}

func (g *Gateway) unregister(session *Session) {
	g.registry.Leave(session)

	g.sessionsMu.Lock()
	if userSessions, ok := g.sessions[session.userID]; ok {
		delete(userSessions, session.id)
		if len(userSessions) == 0 {
			delete(g.sessions, session.userID)
		}
	}
	g.sessionsMu.Unlock()

	// The write pump drains what is left in the channel, sends the close frame
	// and shuts the connection down via its deferred cleanup.
	session.closeSend()
}

func (g *Gateway) readPump(session *Session) {
	session.conn.SetReadLimit(maxFrameSize)
	session.conn.SetReadDeadline(time.Now().Add(pongWait))
	session.conn.SetPongHandler(func(string) error {
		session.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := session.conn.ReadMessage()
		if err != nil {
			return
		}

		// Cheap per-event re-check against the handshake-validated expiry
		if session.isTokenExpired() {
			session.enqueue(errorFrame(chat_models.NewChatError(
				chat_enums.ChatErrorCodeUnauthenticated, "session token expired")))
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(frame, &envelope); err != nil {
			session.enqueue(errorFrame(chat_models.NewChatError(
				chat_enums.ChatErrorCodeInvalidPayload, "malformed event frame")))
			continue
		}

		switch envelope.Event {
		case EventJoinTask:
			g.handleJoinTask(session, envelope.Data)
		case EventSendMessage:
			g.handleSendMessage(session, envelope.Data)
		default:
			session.enqueue(errorFrame(chat_models.NewChatError(
				chat_enums.ChatErrorCodeInvalidPayload, "unknown event")))
		}
	}
}

func (g *Gateway) writePump(session *Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		session.closeConnection()
	}()

	for {
		select {
		case frame, ok := <-session.send:
			session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				session.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := session.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := session.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) handleJoinTask(session *Session, data json.RawMessage) {
	var taskIDString string
	if err := json.Unmarshal(data, &taskIDString); err != nil {
		session.enqueue(errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeInvalidPayload, "joinTask payload must be a task id string")))
		return
	}

	taskID, err := uuid.Parse(taskIDString)
	if err != nil {
		session.enqueue(errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeInvalidPayload, "invalid task id")))
		return
	}

	if _, err := g.taskService.GetTaskWithCache(taskID); err != nil {
		session.enqueue(errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeTaskNotFound, "task not found")))
		return
	}

	g.registry.Join(taskID, session)
	session.markJoined(taskID)
}

func (g *Gateway) handleSendMessage(session *Session, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		session.enqueue(errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeInvalidPayload, "malformed sendMessage payload")))
		return
	}

	taskID, err := uuid.Parse(payload.TaskID)
	if err != nil {
		session.enqueue(errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeInvalidPayload, "invalid task id")))
		return
	}

	// Sending without joining is a protocol violation; nothing is persisted
	if !session.hasJoined(taskID) {
		session.enqueue(errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeNotJoined, "join the task before sending messages")))
		return
	}

	request := &chat_dto.SendMessageRequestDTO{
		Message: payload.Message,
		Emoji:   payload.Emoji,
	}

	// Sender identity comes from the session, client-sent ids are ignored.
	// On success the chat service broadcasts the persisted message itself.
	if _, err := g.chatService.AppendMessage(taskID, session.userID, request); err != nil {
		if chatError, ok := err.(*chat_models.ChatError); ok {
			session.enqueue(errorFrame(chatError))
			return
		}
		session.enqueue(errorFrame(chat_models.NewChatError(
			chat_enums.ChatErrorCodeStorageFailure, "failed to store message")))
	}
}

func (g *Gateway) writeDirect(conn *websocket.Conn, frame []byte) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.TextMessage, frame)
}
