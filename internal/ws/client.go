package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkoss/manhunt/internal/model"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Largest inbound frame we will read
	maxMessageSize = 64 << 10

	// Buffer size for outgoing frames; at 30 Hz this is about two
	// seconds of backlog before frames are dropped
	sendBufferSize = 64
)

// Client is the send side of one connection. All writes to the socket go
// through the send channel and WritePump, so the broadcaster and the
// lifecycle handler never contend for the connection.
type Client struct {
	playerID    model.PlayerID
	conn        *websocket.Conn
	send        chan []byte
	connectedAt time.Time

	closeOnce sync.Once
}

// NewClient wraps an upgraded connection for the given player
func NewClient(playerID model.PlayerID, conn *websocket.Conn, connectedAt time.Time) *Client {
	return &Client{
		playerID:    playerID,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: connectedAt,
	}
}

// Enqueue offers a frame to the client without blocking. It reports
// false when the buffer is full and the frame was dropped; a slow client
// must never stall a tick.
func (c *Client) Enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// CloseSend closes the send channel, ending WritePump. Safe to call more
// than once; racing cleanup paths both go through here.
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// WritePump drains the send channel to the socket, interleaving
// keepalive pings. It exits when the channel closes or a write fails,
// closing the underlying connection either way.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
