package feedws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/ogc16/FitnessApp/internal/events"
	"github.com/ogc16/FitnessApp/internal/observability"
)

var ErrHubBusy = errors.New("feed hub broadcast queue is full")

// Hub pushes feed updates to every connected client. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	quit       chan struct{}
	quitOnce   sync.Once
}

// Client is one websocket connection. send is never closed; a dropped
// client is signalled through done so late writers cannot panic.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	userID    string
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

type Message struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		quit:       make(chan struct{}),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
		done:   make(chan struct{}),
	}
}

// Done is closed once the hub has dropped the client.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (h *Hub) Run(ctx context.Context) {
	defer h.quitOnce.Do(func() { close(h.quit) })

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			observability.SetConnectedClients(0)
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			observability.SetConnectedClients(len(h.clients))
		case client := <-h.unregister:
			h.drop(client)
			observability.SetConnectedClients(len(h.clients))
		case payload := <-h.broadcast:
			h.deliver(payload)
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	client.close()
}

// Register adds client to the hub. After the hub has stopped the client is
// dropped straight away.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.quit:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
		client.close()
	}
}

// Publish queues a post event for every connected client. It never blocks on
// slow clients; a full queue is reported as ErrHubBusy.
func (h *Hub) Publish(ctx context.Context, event events.PostCreated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrHubBusy
	}
}

func (h *Hub) deliver(payload []byte) {
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			h.drop(client)
		}
	}
	observability.SetConnectedClients(len(h.clients))
}

// ReadPump only watches for the peer going away; feed clients have nothing
// to say except ping. It stops once the hub drops the client, because
// WritePump closes the connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeReply(c, "error", "invalid message payload")
			continue
		}
		if incoming.Type != "ping" {
			writeReply(c, "error", "unsupported message type")
			continue
		}
		writeReply(c, "pong", "")
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// writeReply reports whether the reply was queued.
func writeReply(client *Client, kind, content string) bool {
	payload, err := json.Marshal(Message{
		Type:      kind,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("feed hub encode reply: %v", err)
		return false
	}

	select {
	case <-client.done:
		return false
	default:
	}

	select {
	case client.send <- payload:
		return true
	case <-client.done:
		return false
	default:
		client.hub.Unregister(client)
		return false
	}
}
