package chat_gateway

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestSession() *Session {
	return newSession(nil, uuid.New(), time.Now().Add(time.Hour))
}

func Test_Join_SameSessionTwice_RoomSizeStaysOne(t *testing.T) {
	registry := NewRegistry()
	taskID := uuid.New()
	session := newTestSession()

	registry.Join(taskID, session)
	registry.Join(taskID, session)

	assert.Equal(t, 1, registry.RoomSize(taskID))
}

func Test_Leave_RemovesSessionFromEveryRoom(t *testing.T) {
	registry := NewRegistry()
	firstTask := uuid.New()
	secondTask := uuid.New()
	session := newTestSession()
	other := newTestSession()

	registry.Join(firstTask, session)
	registry.Join(secondTask, session)
	registry.Join(secondTask, other)

	registry.Leave(session)

	assert.Equal(t, 0, registry.RoomSize(firstTask))
	assert.Equal(t, 1, registry.RoomSize(secondTask))
}

func Test_Leave_SessionNeverJoined_IsNoOp(t *testing.T) {
	registry := NewRegistry()
	taskID := uuid.New()
	joined := newTestSession()
	stranger := newTestSession()

	registry.Join(taskID, joined)
	registry.Leave(stranger)

	assert.Equal(t, 1, registry.RoomSize(taskID))
}

func Test_Broadcast_DeliversToEveryJoinedSession(t *testing.T) {
	registry := NewRegistry()
	taskID := uuid.New()
	first := newTestSession()
	second := newTestSession()
	outsider := newTestSession()

	registry.Join(taskID, first)
	registry.Join(taskID, second)
	registry.Join(uuid.New(), outsider)

	delivered := registry.Broadcast(taskID, []byte(`{"event":"newMessage"}`))

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, len(first.send))
	assert.Equal(t, 1, len(second.send))
	assert.Equal(t, 0, len(outsider.send))
}

func Test_Broadcast_SlowConsumerWithFullBuffer_IsSkippedNotBlocked(t *testing.T) {
	registry := NewRegistry()
	taskID := uuid.New()
	slow := newTestSession()
	fast := newTestSession()

	registry.Join(taskID, slow)
	registry.Join(taskID, fast)

	for i := 0; i < sendBufferSize; i++ {
		slow.enqueue([]byte("filler"))
	}

	done := make(chan int, 1)
	go func() {
		done <- registry.Broadcast(taskID, []byte("fresh"))
	}()

	select {
	case delivered := <-done:
		assert.Equal(t, 1, delivered)
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow consumer")
	}

	assert.Equal(t, 1, len(fast.send))
	assert.Equal(t, sendBufferSize, len(slow.send))
}

func Test_Broadcast_EmptyRoom_DeliversNothing(t *testing.T) {
	registry := NewRegistry()

	delivered := registry.Broadcast(uuid.New(), []byte("into the void"))

	assert.Equal(t, 0, delivered)
}

func Test_Enqueue_AfterSendChannelClosed_ReportsNotDelivered(t *testing.T) {
	session := newTestSession()
	session.closeSend()

	assert.False(t, session.enqueue([]byte("too late")))

	// Closing again is a no-op, not a double close
	session.closeSend()
}

func Test_Broadcast_RacingSessionTeardown_NeverPanics(t *testing.T) {
	registry := NewRegistry()
	taskID := uuid.New()

	// A populated room keeps every broadcast iteration busy while sessions
	// churn through the disconnect sequence underneath it
	for i := 0; i < 200; i++ {
		registry.Join(taskID, newTestSession())
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				registry.Broadcast(taskID, []byte("racing frame"))
			}
		}
	}()

	for i := 0; i < 500; i++ {
		session := newTestSession()
		registry.Join(taskID, session)
		registry.Leave(session)
		session.closeSend()
	}

	close(stop)
	wg.Wait()

	assert.Equal(t, 200, registry.RoomSize(taskID))
}
