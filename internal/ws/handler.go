package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mkoss/manhunt/internal/dependencies/clock"
	"github.com/mkoss/manhunt/internal/dependencies/random"
	"github.com/mkoss/manhunt/internal/model"
	"github.com/mkoss/manhunt/internal/protocol"
	"github.com/mkoss/manhunt/internal/services/phase"
	"github.com/mkoss/manhunt/internal/services/registry"
)

// PlayerIDLength is the length of generated player ids (128 bits of hex)
const PlayerIDLength = 32

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Clients are served from arbitrary origins; there is no
	// authentication surface to protect
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandlerConfig holds the dependencies for the connection lifecycle handler
type HandlerConfig struct {
	Logger          *slog.Logger
	Registry        *registry.Service
	Phase           *phase.Controller
	Hub             *Hub
	Clock           clock.Clock
	Random          random.Random
	SpeedMultiplier float64
}

// Handler upgrades a connection, assigns it a fresh player record, sends
// the init frame, and runs the intent loop until the connection ends.
// Registry and hub cleanup are deferred, so they run exactly once on
// every exit path, including panics unwound through the recovery
// middleware.
func Handler(cfg HandlerConfig) http.HandlerFunc {
	logger := cfg.Logger.With(slog.String("component", "ws"))

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("upgrade failed", slog.Any("error", err))
			return
		}

		id, player := createPlayer(cfg)
		connLogger := logger.With(slog.String("player_id", string(id)))

		client := NewClient(id, conn, player.JoinedAt)
		defer func() {
			cfg.Hub.Unregister(id)
			cfg.Registry.Remove(id)
			_ = conn.Close()
		}()

		// Enqueue init before the client joins the broadcast set so it
		// is the first frame the client sees
		initFrame, _ := json.Marshal(protocol.NewInitMessage(id))
		client.Enqueue(initFrame)
		cfg.Hub.Register(client)
		go client.WritePump()

		readLoop(cfg, connLogger, conn, id)
	}
}

// createPlayer generates a unique id and registers the record. Collisions
// on 128-bit ids are theoretical, but the registry is the arbiter of
// uniqueness, so retry on its say-so.
func createPlayer(cfg HandlerConfig) (model.PlayerID, model.Player) {
	for {
		id := model.PlayerID(cfg.Random.String(PlayerIDLength, random.HexAlphabet))
		player, err := cfg.Registry.Create(id)
		if errors.Is(err, model.ErrDuplicatePlayer) {
			continue
		}
		return id, player
	}
}

// readLoop consumes inbound frames until the connection closes or
// errors. A bad frame is dropped and the loop continues; only transport
// errors end the session.
func readLoop(cfg HandlerConfig, logger *slog.Logger, conn *websocket.Conn, id model.PlayerID) {
	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("connection error", slog.Any("error", err))
			} else {
				logger.Debug("connection closed")
			}
			return
		}

		intent, err := protocol.DecodeIntent(data)
		if err != nil {
			logger.Debug("frame ignored", slog.Any("error", err))
			continue
		}

		applyIntent(cfg, logger, id, intent)
	}
}

// applyIntent dispatches one decoded intent against the registry and
// phase controller. Lookup failures here mean the record raced its own
// cleanup; there is nothing to apply the intent to, so they are absorbed.
func applyIntent(cfg HandlerConfig, logger *slog.Logger, id model.PlayerID, intent protocol.Intent) {
	switch in := intent.(type) {
	case protocol.MoveIntent:
		_ = cfg.Registry.MoveBy(id, in.DX*cfg.SpeedMultiplier, in.DY*cfg.SpeedMultiplier)

	case protocol.StageCompletedIntent:
		_ = cfg.Registry.SetCompletedStage(id, in.Completed)

	case protocol.SetUsernameIntent:
		_ = cfg.Registry.SetUsername(id, in.Username)

	case protocol.StartGameIntent:
		if err := cfg.Phase.StartRound(); err != nil {
			// Admission rejection is silent towards the client
			logger.Debug("round not started", slog.Any("error", err))
		}
	}
}
