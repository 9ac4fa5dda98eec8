package room

import (
	"fmt"
	"time"

	"crew-server/pkg/crew"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Envelope is the wire format for every message pushed to a client
type Envelope struct {
	UUID    string      `json:"uuid"`
	Kind    string      `json:"kind"`
	Message string      `json:"message,omitempty"`
	Context string      `json:"context,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Time    time.Time   `json:"time"`
}

// PayloadIn is a message received from a connected client
type PayloadIn struct {
	Action  string `json:"action"`
	Card    string `json:"card,omitempty"`
	Mission int    `json:"mission,omitempty"`
	Context string `json:"context,omitempty"`
}

// Client is a player connected to the server via websockets. It satisfies
// crew.Player; game events are queued on the send channel and drained by the
// connection's write loop.
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	name string
	send chan *Envelope
}

// NewClient returns a new client for the connection
func NewClient(conn *websocket.Conn, name string) *Client {
	return &Client{
		Conn:  conn,
		Close: make(chan string),
		name:  name,
		send:  make(chan *Envelope, 256),
	}
}

// Name returns the player's display name
func (c *Client) Name() string {
	return c.name
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.name, c.Conn.RemoteAddr())
}

// Notify queues a game event for delivery. A full send buffer is an error so
// a stalled connection never blocks the game.
func (c *Client) Notify(event crew.Event) error {
	ok := c.Send(&Envelope{
		UUID:    uuid.New().String(),
		Kind:    event.Kind(),
		Message: event.String(),
		Data:    event,
		Time:    time.Now(),
	})

	if !ok {
		return fmt.Errorf("send buffer full for %s", c.name)
	}

	return nil
}

// Send queues an envelope for delivery without blocking
func (c *Client) Send(env *Envelope) bool {
	select {
	case c.send <- env:
		return true
	default:
		return false
	}
}

// SendResponse queues a direct reply to a client request
func (c *Client) SendResponse(ctx, kind string, data interface{}) bool {
	return c.Send(&Envelope{
		UUID:    uuid.New().String(),
		Kind:    kind,
		Context: ctx,
		Data:    data,
		Time:    time.Now(),
	})
}

// SendError queues an error reply to a client request
func (c *Client) SendError(ctx string, err error) bool {
	return c.Send(&Envelope{
		UUID:    uuid.New().String(),
		Kind:    "error",
		Message: err.Error(),
		Context: ctx,
		Time:    time.Now(),
	})
}

// SendChan returns a read-only channel of queued envelopes
func (c *Client) SendChan() <-chan *Envelope {
	return c.send
}
