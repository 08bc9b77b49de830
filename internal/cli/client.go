package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkoss/manhunt/internal/protocol"
)

// Client talks to the server's HTTP surface and dials its WebSocket
// endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new client for the given server URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get performs a GET request and decodes the JSON response
func (c *Client) Get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// GetRaw performs a GET request and returns the body as-is
func (c *Client) GetRaw(path string) (string, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}

// Session is a live game connection for a throwaway player
type Session struct {
	conn *websocket.Conn

	// ID is the player id the server assigned in its init frame
	ID string
}

// Dial connects to the game endpoint and waits for the init frame
func (c *Client) Dial() (*Session, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var init protocol.InitMessage
	if err := conn.ReadJSON(&init); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to read init frame: %w", err)
	}
	if init.Type != protocol.TypeInit {
		_ = conn.Close()
		return nil, fmt.Errorf("expected init frame, got %q", init.Type)
	}

	return &Session{conn: conn, ID: init.ID}, nil
}

// Send writes one intent frame
func (s *Session) Send(v any) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return s.conn.WriteJSON(v)
}

// ReadState reads frames until the next state broadcast
func (s *Session) ReadState(timeout time.Duration) (*protocol.StateMessage, error) {
	deadline := time.Now().Add(timeout)
	_ = s.conn.SetReadDeadline(deadline)
	for {
		var state protocol.StateMessage
		if err := s.conn.ReadJSON(&state); err != nil {
			return nil, fmt.Errorf("failed to read state: %w", err)
		}
		if state.Type == protocol.TypeState {
			return &state, nil
		}
	}
}

// Close closes the connection
func (s *Session) Close() {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = s.conn.Close()
}
