package feedws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ogc16/FitnessApp/internal/events"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, client *Client) []byte {
	t.Helper()
	select {
	case payload, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHubBroadcastsPostCreatedToAllClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	alice := NewClient(hub, nil, "alice")
	bob := NewClient(hub, nil, "bob")
	hub.Register(alice)
	hub.Register(bob)

	post := models.Post{ID: "p-1", UserID: "alice", ActivityType: "Cycling", Duration: "01:00:00"}
	require.NoError(t, hub.Publish(ctx, events.NewPostCreated(post)))

	for _, client := range []*Client{alice, bob} {
		var msg events.PostCreated
		require.NoError(t, json.Unmarshal(receive(t, client), &msg))
		require.Equal(t, events.TypePostCreated, msg.Type)
		require.Equal(t, "p-1", msg.Post.ID)
	}
}

func waitDone(t *testing.T, client *Client) {
	t.Helper()
	select {
	case <-client.Done():
	case <-time.After(time.Second):
		t.Fatal("client was not dropped")
	}
}

func TestHubUnregisterMarksClientDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	client := NewClient(hub, nil, "alice")
	hub.Register(client)
	hub.Unregister(client)

	waitDone(t, client)
}

func TestReplyAfterSlowClientDroppedDoesNotPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	client := NewClient(hub, nil, "alice")
	hub.Register(client)

	event := events.NewPostCreated(models.Post{ID: "p-1"})
	for i := 0; i <= cap(client.send); i++ {
		require.NoError(t, hub.Publish(ctx, event))
	}
	waitDone(t, client)

	require.NotPanics(t, func() {
		require.False(t, writeReply(client, "pong", ""))
	})
	hub.Unregister(client)
}

func TestReplyAfterHubStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := NewClient(hub, nil, "alice")
	hub.Register(client)
	cancel()
	<-stopped

	waitDone(t, client)
	require.NotPanics(t, func() {
		require.False(t, writeReply(client, "pong", ""))
	})

	// Unregister from a read loop that outlives the hub must not block.
	unregistered := make(chan struct{})
	go func() {
		hub.Unregister(client)
		close(unregistered)
	}()
	select {
	case <-unregistered:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after hub stopped")
	}
}

func TestReplyQueuedForLiveClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	client := NewClient(hub, nil, "alice")
	hub.Register(client)

	require.True(t, writeReply(client, "pong", ""))
	var msg Message
	require.NoError(t, json.Unmarshal(receive(t, client), &msg))
	require.Equal(t, "pong", msg.Type)
}

func TestHubPublishReportsFullQueue(t *testing.T) {
	hub := NewHub()
	event := events.NewPostCreated(models.Post{ID: "p-1"})
	for i := 0; i < cap(hub.broadcast); i++ {
		require.NoError(t, hub.Publish(context.Background(), event))
	}
	require.ErrorIs(t, hub.Publish(context.Background(), event), ErrHubBusy)
}
