package chat_gateway_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	chat_controllers "github.com/Betocasasa/projecthub-backend/internal/features/chat/controllers"
	chat_dto "github.com/Betocasasa/projecthub-backend/internal/features/chat/dto"
	chat_gateway "github.com/Betocasasa/projecthub-backend/internal/features/chat/gateway"
	chat_services "github.com/Betocasasa/projecthub-backend/internal/features/chat/services"
	projects_controllers "github.com/Betocasasa/projecthub-backend/internal/features/projects/controllers"
	projects_services "github.com/Betocasasa/projecthub-backend/internal/features/projects/services"
	projects_testing "github.com/Betocasasa/projecthub-backend/internal/features/projects/testing"
	tasks_controllers "github.com/Betocasasa/projecthub-backend/internal/features/tasks/controllers"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	tasks_testing "github.com/Betocasasa/projecthub-backend/internal/features/tasks/testing"
	teams_controllers "github.com/Betocasasa/projecthub-backend/internal/features/teams/controllers"
	teams_testing "github.com/Betocasasa/projecthub-backend/internal/features/teams/testing"
	users_controllers "github.com/Betocasasa/projecthub-backend/internal/features/users/controllers"
	users_dto "github.com/Betocasasa/projecthub-backend/internal/features/users/dto"
	users_enums "github.com/Betocasasa/projecthub-backend/internal/features/users/enums"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"
	users_repositories "github.com/Betocasasa/projecthub-backend/internal/features/users/repositories"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
	users_testing "github.com/Betocasasa/projecthub-backend/internal/features/users/testing"
	test_utils "github.com/Betocasasa/projecthub-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestServer(t *testing.T) (*httptest.Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	chat_gateway.GetGatewayController().RegisterRoutes(v1)
	users_controllers.GetUserController().RegisterRoutes(v1)

	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	if routerGroup, ok := protected.(*gin.RouterGroup); ok {
		teams_controllers.GetTeamController().RegisterRoutes(routerGroup)
		teams_controllers.GetMembershipController().RegisterRoutes(routerGroup)
		projects_controllers.GetProjectController().RegisterRoutes(routerGroup)
		tasks_controllers.GetTaskController().RegisterRoutes(routerGroup)
		chat_controllers.GetChatController().RegisterRoutes(routerGroup)
	}

	audit_logs.SetupDependencies()
	projects_services.SetupDependencies()
	tasks_services.SetupDependencies()
	chat_services.SetupDependencies()
	chat_gateway.SetupDependencies()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, router
}

func dialChat(t *testing.T, server *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws/chat?token=" + token

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()

	frame, err := json.Marshal(map[string]any{"event": event, "data": data})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))
}

func readEvent(t *testing.T, conn *websocket.Conn) chat_gateway.Envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope chat_gateway.Envelope
	require.NoError(t, json.Unmarshal(frame, &envelope))

	return envelope
}

func readErrorCode(t *testing.T, conn *websocket.Conn) string {
	t.Helper()

	envelope := readEvent(t, conn)
	require.Equal(t, chat_gateway.EventError, envelope.Event)

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &payload))

	return payload.Code
}

func createChatFixture(t *testing.T, router *gin.Engine) (*users_dto.AuthResponseDTO, uuid.UUID) {
	t.Helper()

	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	team := teams_testing.CreateTestTeam("Gateway Team "+uuid.New().String()[:8], owner, router)
	project := projects_testing.CreateTestProject("Gateway Project", team, owner.Token, router)
	task := tasks_testing.CreateTestTask("Gateway Task", project, owner.Token, router)

	return owner, task.ID
}

// mintShortLivedToken signs a token for the user that expires after ttl, so
// expiry behavior is testable without waiting out the regular token lifetime.
func mintShortLivedToken(t *testing.T, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()

	secretKey, err := (&users_repositories.SecretKeyRepository{}).GetSecretKey()
	require.NoError(t, err)

	user, err := users_services.GetUserService().GetUserByID(userID)
	require.NoError(t, err)
	require.NotNil(t, user)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  time.Now().UTC().Add(ttl).Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"role":                 string(user.Role),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	signed, err := token.SignedString([]byte(secretKey))
	require.NoError(t, err)

	return signed
}

func Test_Handshake_WithInvalidToken_SendsUnauthenticatedAndCloses(t *testing.T) {
	server, _ := createTestServer(t)

	conn := dialChat(t, server, "not-a-valid-token")

	assert.Equal(t, "UNAUTHENTICATED", readErrorCode(t, conn))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func Test_TokenExpiry_EventAfterExpiry_SendsUnauthenticatedAndCloses(t *testing.T) {
	server, router := createTestServer(t)
	owner, taskID := createChatFixture(t, router)

	shortToken := mintShortLivedToken(t, owner.User.ID, 2*time.Second)
	conn := dialChat(t, server, shortToken)

	// The handshake and join happen while the token is still valid
	sendEvent(t, conn, chat_gateway.EventJoinTask, taskID.String())
	time.Sleep(100 * time.Millisecond)

	// Wait out the expiry, then try to use the session
	time.Sleep(3 * time.Second)
	sendEvent(t, conn, chat_gateway.EventSendMessage, map[string]string{
		"taskId":  taskID.String(),
		"message": "sent after expiry",
	})

	assert.Equal(t, "UNAUTHENTICATED", readErrorCode(t, conn))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// The expired event was rejected before reaching the chat store
	var history chat_dto.GetHistoryResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+taskID.String()+"/chat",
		"Bearer "+owner.Token,
		http.StatusOK,
		&history,
	)
	assert.Equal(t, 0, len(history.Messages))
}

func Test_JoinTask_WhenTaskDoesNotExist_SendsTaskNotFoundError(t *testing.T) {
	server, _ := createTestServer(t)
	user := users_testing.CreateTestUser(users_enums.UserRoleMember)

	conn := dialChat(t, server, user.Token)
	sendEvent(t, conn, chat_gateway.EventJoinTask, uuid.New().String())

	assert.Equal(t, "TASK_NOT_FOUND", readErrorCode(t, conn))
}

func Test_JoinTask_WithMalformedPayload_SendsInvalidPayloadError(t *testing.T) {
	server, _ := createTestServer(t)
	user := users_testing.CreateTestUser(users_enums.UserRoleMember)

	conn := dialChat(t, server, user.Token)
	sendEvent(t, conn, chat_gateway.EventJoinTask, map[string]string{"taskId": "wrong shape"})

	assert.Equal(t, "INVALID_PAYLOAD", readErrorCode(t, conn))
}

func Test_SendMessage_WithoutJoin_NotJoinedAndNeverPersisted(t *testing.T) {
	server, router := createTestServer(t)
	owner, taskID := createChatFixture(t, router)

	conn := dialChat(t, server, owner.Token)
	sendEvent(t, conn, chat_gateway.EventSendMessage, map[string]string{
		"taskId":  taskID.String(),
		"message": "should never land",
	})

	assert.Equal(t, "NOT_JOINED", readErrorCode(t, conn))

	var history chat_dto.GetHistoryResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+taskID.String()+"/chat",
		"Bearer "+owner.Token,
		http.StatusOK,
		&history,
	)
	assert.Equal(t, 0, len(history.Messages))
}

func Test_SendMessage_AfterJoin_BroadcastsToEveryRoomMember(t *testing.T) {
	server, router := createTestServer(t)
	owner, taskID := createChatFixture(t, router)

	sender := dialChat(t, server, owner.Token)
	receiver := dialChat(t, server, owner.Token)

	sendEvent(t, sender, chat_gateway.EventJoinTask, taskID.String())
	sendEvent(t, receiver, chat_gateway.EventJoinTask, taskID.String())

	// Join is processed in-order before the next event on the same connection,
	// but the receiver joins on its own connection, so give it a beat
	time.Sleep(100 * time.Millisecond)

	sendEvent(t, sender, chat_gateway.EventSendMessage, map[string]string{
		"taskId":  taskID.String(),
		"message": "hello room",
	})

	for _, conn := range []*websocket.Conn{sender, receiver} {
		envelope := readEvent(t, conn)
		require.Equal(t, chat_gateway.EventNewMessage, envelope.Event)

		var payload chat_gateway.NewMessagePayload
		require.NoError(t, json.Unmarshal(envelope.Data, &payload))
		assert.Equal(t, owner.User.ID.String(), payload.UserID)
		assert.Equal(t, "hello room", payload.Message)
		assert.False(t, payload.Timestamp.IsZero())
	}

	var history chat_dto.GetHistoryResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+taskID.String()+"/chat",
		"Bearer "+owner.Token,
		http.StatusOK,
		&history,
	)
	require.Equal(t, 1, len(history.Messages))
	assert.Equal(t, "hello room", history.Messages[0].Message)
}

func Test_Broadcast_SessionNotInRoom_ReceivesNothingUntilJoining(t *testing.T) {
	server, router := createTestServer(t)
	owner, taskID := createChatFixture(t, router)

	sender := dialChat(t, server, owner.Token)
	bystander := dialChat(t, server, owner.Token)

	sendEvent(t, sender, chat_gateway.EventJoinTask, taskID.String())
	time.Sleep(100 * time.Millisecond)

	sendEvent(t, sender, chat_gateway.EventSendMessage, map[string]string{
		"taskId":  taskID.String(),
		"message": "before bystander joined",
	})
	readEvent(t, sender) // sender gets its own broadcast

	sendEvent(t, bystander, chat_gateway.EventJoinTask, taskID.String())
	time.Sleep(100 * time.Millisecond)

	sendEvent(t, sender, chat_gateway.EventSendMessage, map[string]string{
		"taskId":  taskID.String(),
		"message": "after bystander joined",
	})

	// The bystander's first frame is the second message: the first one was
	// never delivered to a session outside the room
	envelope := readEvent(t, bystander)
	require.Equal(t, chat_gateway.EventNewMessage, envelope.Event)

	var payload chat_gateway.NewMessagePayload
	require.NoError(t, json.Unmarshal(envelope.Data, &payload))
	assert.Equal(t, "after bystander joined", payload.Message)
}

func Test_SendMessage_ViaHTTP_ReachesJoinedWebSocketSessions(t *testing.T) {
	server, router := createTestServer(t)
	owner, taskID := createChatFixture(t, router)

	conn := dialChat(t, server, owner.Token)
	sendEvent(t, conn, chat_gateway.EventJoinTask, taskID.String())
	time.Sleep(100 * time.Millisecond)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/tasks/"+taskID.String()+"/chat",
		"Bearer "+owner.Token,
		chat_dto.SendMessageRequestDTO{Message: "sent over http"},
		http.StatusOK,
	)

	envelope := readEvent(t, conn)
	require.Equal(t, chat_gateway.EventNewMessage, envelope.Event)

	var payload chat_gateway.NewMessagePayload
	require.NoError(t, json.Unmarshal(envelope.Data, &payload))
	assert.Equal(t, "sent over http", payload.Message)
}

func Test_UnknownEvent_SendsInvalidPayloadWithoutClosing(t *testing.T) {
	server, router := createTestServer(t)
	owner, taskID := createChatFixture(t, router)

	conn := dialChat(t, server, owner.Token)
	sendEvent(t, conn, "totallyUnknown", "whatever")

	assert.Equal(t, "INVALID_PAYLOAD", readErrorCode(t, conn))

	// Connection survives and still works
	sendEvent(t, conn, chat_gateway.EventJoinTask, taskID.String())
	sendEvent(t, conn, chat_gateway.EventSendMessage, map[string]string{
		"taskId":  taskID.String(),
		"message": "still alive",
	})

	envelope := readEvent(t, conn)
	assert.Equal(t, chat_gateway.EventNewMessage, envelope.Event)
}

func Test_ChatE2E_RegisterLoginJoinSendBroadcastHistory(t *testing.T) {
	server, router := createTestServer(t)

	email := fmt.Sprintf("chat-e2e-%s@test.com", uuid.New().String()[:8])

	var registered users_dto.AuthResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/register",
		"",
		users_dto.RegisterRequestDTO{
			Name:     "Chat E2E",
			Email:    email,
			Password: "superSecret1",
		},
		http.StatusCreated,
		&registered,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/login",
		"",
		users_dto.LoginRequestDTO{Email: email, Password: "wrongPassword1"},
		http.StatusUnauthorized,
	)

	var loggedIn users_dto.AuthResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/login",
		"",
		users_dto.LoginRequestDTO{Email: email, Password: "superSecret1"},
		http.StatusOK,
		&loggedIn,
	)

	team := teams_testing.CreateTestTeam("E2E Team "+uuid.New().String()[:8], &loggedIn, router)
	project := projects_testing.CreateTestProject("E2E Project", team, loggedIn.Token, router)
	task := tasks_testing.CreateTestTask("E2E Task", project, loggedIn.Token, router)

	conn := dialChat(t, server, loggedIn.Token)
	sendEvent(t, conn, chat_gateway.EventJoinTask, task.ID.String())
	sendEvent(t, conn, chat_gateway.EventSendMessage, map[string]string{
		"taskId":  task.ID.String(),
		"message": "full round trip",
	})

	envelope := readEvent(t, conn)
	require.Equal(t, chat_gateway.EventNewMessage, envelope.Event)

	var history chat_dto.GetHistoryResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String()+"/chat",
		"Bearer "+loggedIn.Token,
		http.StatusOK,
		&history,
	)
	require.Equal(t, 1, len(history.Messages))
	assert.Equal(t, "full round trip", history.Messages[0].Message)
	assert.Equal(t, loggedIn.User.ID, history.Messages[0].UserID)
}
