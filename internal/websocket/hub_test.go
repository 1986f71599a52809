package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id          string
	workspaceID int32
	messages    [][]byte
	mu          sync.Mutex
	closed      bool
}

func newMockClient(id string, workspaceID int32) *mockClient {
	return &mockClient{
		id:          id,
		workspaceID: workspaceID,
		messages:    make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) WorkspaceID() int32 {
	return m.workspaceID
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1", 1)
	client2 := newMockClient("client-2", 1)
	client3 := newMockClient("client-3", 2)

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	assert.Equal(t, 2, hub.ClientCount(1))
	assert.Equal(t, 1, hub.ClientCount(2))
	assert.Equal(t, 3, hub.TotalClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount(1))

	hub.Unregister(client2)
	hub.Unregister(client3)
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_UnregisterUnknownClient(t *testing.T) {
	hub := NewHub()

	// must not panic for a client that was never registered
	hub.Unregister(newMockClient("ghost", 1))
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_BroadcastScopedToWorkspace(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1", 1)
	client2 := newMockClient("client-2", 1)
	other := newMockClient("client-3", 2)

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(other)

	event := NewEvent(EventTypeCreated, EntityTypeInvoice, map[string]interface{}{"id": float64(7)})
	hub.Broadcast(1, event)

	// sends happen on separate goroutines
	time.Sleep(20 * time.Millisecond)

	assert.Len(t, client1.GetMessages(), 1)
	assert.Len(t, client2.GetMessages(), 1)
	assert.Empty(t, other.GetMessages(), "client in another workspace must not receive the event")
}

func TestHub_BroadcastPayload(t *testing.T) {
	hub := NewHub()

	client := newMockClient("client-1", 1)
	hub.Register(client)

	hub.Broadcast(1, NewEvent(EventTypeAdjusted, EntityTypeItem, map[string]interface{}{"id": float64(3), "quantity": float64(9)}))

	time.Sleep(20 * time.Millisecond)

	messages := client.GetMessages()
	require.Len(t, messages, 1)

	var received Event
	require.NoError(t, json.Unmarshal(messages[0], &received))
	assert.Equal(t, "item.adjusted", received.Type)
	assert.Equal(t, EntityTypeItem, received.Entity)

	payload, ok := received.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(9), payload["quantity"])
}

func TestHub_BroadcastEmptyWorkspace(t *testing.T) {
	hub := NewHub()

	// no clients registered, must not panic
	hub.Broadcast(1, NewEvent(EventTypeDeleted, EntityTypeCustomer, nil))
}

func TestHub_ConcurrentRegisterBroadcast(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client := newMockClient(string(rune('a'+n)), 1)
			hub.Register(client)
			hub.Broadcast(1, NewEvent(EventTypeCreated, EntityTypePayment, map[string]interface{}{"n": n}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, hub.ClientCount(1))
}
