package board

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	writeTimeout  = 10 * time.Second
	pingInterval  = 30 * time.Second
	readLimit     = 64 * 1024
	outboundDepth = 256
)

// Client is one websocket connection to a board. The hub closes the
// outbound queue when the client is removed; Send and Close coordinate so
// a frame broadcast racing a disconnect never writes to a closed channel.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	mu       sync.Mutex
	outbound chan []byte
	closed   bool

	UserID      string
	DisplayName string
	BoardID     string
	ClientID    string
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, displayName, boardID, clientID string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		outbound:    make(chan []byte, outboundDepth),
		UserID:      userID,
		DisplayName: displayName,
		BoardID:     boardID,
		ClientID:    clientID,
	}
}

// Send queues an outbound message. A client that cannot keep up with the
// frame rate loses frames rather than stalling the room; a client already
// closed drops the message silently.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal outbound message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.outbound <- data:
	default:
		slog.Warn("outbound queue full, dropping message", "user", c.UserID, "type", msg.Type)
	}
}

// Close shuts the outbound queue exactly once, which ends the write pump.
// Safe to call while broadcasts are in flight.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.outbound)
}

// ReadPump decodes inbound messages and hands them to the hub. It stamps
// each message with the connection's identity so a client cannot speak for
// another. Returning unregisters the client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(readLimit)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				slog.Debug("websocket read ended", "error", err, "user", c.UserID)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("undecodable message", "error", err, "user", c.UserID)
			continue
		}

		msg.UserID = c.UserID
		msg.ClientID = c.ClientID
		msg.BoardID = c.BoardID

		c.hub.handleMessage(c, &msg)
	}
}

// WritePump drains the outbound queue onto the wire and keeps the
// connection alive with pings. It exits when the queue is closed, the
// connection fails, or the request context ends.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case data, ok := <-c.outbound:
			if !ok {
				return
			}
			if err := c.write(ctx, data); err != nil {
				slog.Debug("websocket write ended", "error", err, "user", c.UserID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, data []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(writeCtx, websocket.MessageText, data)
}
