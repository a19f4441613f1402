package monitor

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vchernov/physcat/internal/model"
	"github.com/vchernov/physcat/internal/registry"
)

func TestFeed_HandlerWithoutSubscribers(t *testing.T) {
	feed := NewFeed()
	h := feed.Handler()

	obj := model.NewPhysicalObject("a", "A", model.TypeSensor, model.NewLocation(0, 0, 0))
	// Broadcasting into the void must not fail the catalog mutation.
	assert.NoError(t, h(registry.Event{Type: registry.ObjectCreated, Object: obj}))
}

func TestFeed_BroadcastsEvent(t *testing.T) {
	feed := NewFeed()
	server := httptest.NewServer(feed)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") // http:// → ws://
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The subscription is registered on the server goroutine; wait
	// for it before broadcasting.
	require.Eventually(t, func() bool {
		return feed.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	obj := model.NewPhysicalObject("beacon-1", "Patrol Beacon", model.TypeBeacon, model.NewLocation(1, 2, 3))
	require.NoError(t, feed.Handler()(registry.Event{Type: registry.ObjectMoved, Object: obj}))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var msg EventMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "moved", msg.Event)
	assert.Equal(t, "beacon-1", msg.ID)
	assert.Equal(t, "Patrol Beacon", msg.Name)
	assert.Equal(t, "beacon", msg.Type)
	assert.Equal(t, 1.0, msg.X)
	assert.Equal(t, 2.0, msg.Y)
	assert.Equal(t, 3.0, msg.Z)
}
