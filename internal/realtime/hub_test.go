package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(Config{
		AdminOwner:     "admin@test.com",
		CustomerOwners: []string{"cust@test.com"},
	}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	return hub, cancel
}

func connect(t *testing.T, hub *Hub) *Client {
	t.Helper()
	before := hub.ClientCount()
	c := NewClient(hub, nil, logger.NewNop())
	hub.Register <- c
	require.Eventually(t, func() bool {
		return hub.ClientCount() == before+1
	}, time.Second, 5*time.Millisecond)
	return c
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBroadcastAll_ReachesEveryClient(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	a := connect(t, hub)
	b := connect(t, hub)

	hub.BroadcastAll(EventPortfolioUpdated, map[string]string{"ownerId": "x@test.com"})

	assert.Equal(t, EventPortfolioUpdated, receive(t, a).Type)
	assert.Equal(t, EventPortfolioUpdated, receive(t, b).Type)
}

func TestBroadcastRoom_OnlyReachesMembers(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	member := connect(t, hub)
	outsider := connect(t, hub)

	hub.Join(member, "cust@test.com-updates")
	hub.BroadcastRoom("cust@test.com-updates", EventPortfolioChanged, nil)

	assert.Equal(t, EventPortfolioChanged, receive(t, member).Type)
	assertSilent(t, outsider)
}

func TestBroadcastRoom_EmptyRoomDropsSilently(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	c := connect(t, hub)
	hub.BroadcastRoom("nobody-updates", EventPortfolioChanged, nil)
	assertSilent(t, c)
}

func TestJoinCustomerAudience(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	c := connect(t, hub)
	hub.JoinCustomerAudience(c)

	assert.Equal(t, 1, hub.RoomSize("customer-updates"))
	assert.Equal(t, 1, hub.RoomSize("cust@test.com-updates"))
	assert.Equal(t, 0, hub.RoomSize("admin-updates"))
}

func TestJoinAdminAudience(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	c := connect(t, hub)
	hub.JoinAdminAudience(c)

	assert.Equal(t, 1, hub.RoomSize("admin-updates"))
	assert.Equal(t, 1, hub.RoomSize("admin@test.com-updates"))
}

func TestUnregister_ReleasesAllRoomMemberships(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	c := connect(t, hub)
	hub.JoinCustomerAudience(c)
	require.Equal(t, 1, hub.RoomSize("customer-updates"))

	hub.Unregister <- c
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, hub.RoomSize("customer-updates"))
	assert.Equal(t, 0, hub.RoomSize("cust@test.com-updates"))
}

func TestPing_RepliesWithPong(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	c := connect(t, hub)
	c.handleMessage(Message{Type: MessageTypePing})

	assert.Equal(t, MessageTypePong, receive(t, c).Type)
}

func TestPing_AfterSlowClientDrop_DoesNotPanic(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	c := connect(t, hub)
	for i := 0; i < cap(c.send); i++ {
		c.send <- Message{Type: EventPortfolioUpdated}
	}

	hub.BroadcastAll(EventPortfolioUpdated, nil)
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	assert.NotPanics(t, func() {
		c.handleMessage(Message{Type: MessageTypePing})
	})
}

func TestPing_AfterHubStop_DoesNotPanic(t *testing.T) {
	hub, cancel := newTestHub(t)

	c := connect(t, hub)
	cancel()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	assert.NotPanics(t, func() {
		c.handleMessage(Message{Type: MessageTypePing})
	})
}

func TestDetach_ReturnsAfterHubStops(t *testing.T) {
	hub, cancel := newTestHub(t)

	c := connect(t, hub)
	cancel()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	finished := make(chan struct{})
	go func() {
		c.detach()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("detach blocked after hub stopped")
	}
}

func TestRun_CancelClosesClients(t *testing.T) {
	hub, cancel := newTestHub(t)

	c := connect(t, hub)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, open := <-c.send:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, hub.ClientCount())
}
