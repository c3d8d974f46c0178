package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/df07/rayito/pkg/renderer"
	"github.com/df07/rayito/pkg/scene"
)

const streamWriteTimeout = 5 * time.Second

// StreamMessage is one JSON frame on the render stream. Type is start, tile,
// console, complete or error.
type StreamMessage struct {
	Type       string          `json:"type"`
	RenderID   string          `json:"renderId"`
	Width      int             `json:"width,omitempty"`
	Height     int             `json:"height,omitempty"`
	TileNumber int             `json:"tileNumber,omitempty"`
	TotalTiles int             `json:"totalTiles,omitempty"`
	StartRow   int             `json:"startRow"`
	Rows       int             `json:"rows,omitempty"`
	ImageData  string          `json:"imageData,omitempty"` // Base64 encoded PNG
	Message    string          `json:"message,omitempty"`
	Console    *ConsoleMessage `json:"console,omitempty"`
	Stats      *Stats          `json:"stats,omitempty"`
	ElapsedMs  int64           `json:"elapsedMs"`
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// streamConn serializes writes from the render callbacks and log hook
type streamConn struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	renderID string
	start    time.Time
	err      error
}

func (c *streamConn) send(msg StreamMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return
	}
	msg.RenderID = c.renderID
	msg.ElapsedMs = time.Since(c.start).Milliseconds()
	c.conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	c.err = c.conn.WriteJSON(msg)
}

// handleStream renders a scene and streams each finished tile over a WebSocket
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}
	if _, err := scene.Create(req.Scene, req.Seed); errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	stream := &streamConn{conn: conn, renderID: uuid.NewString(), start: time.Now()}
	logger := s.logger.With().Str("render_id", stream.renderID).Logger().
		Hook(consoleHook{send: func(m ConsoleMessage) {
			stream.send(StreamMessage{Type: "console", Console: &m})
		}})

	rt, err := newRaytracer(req, logger, renderer.WithTileCallback(func(e renderer.TileEvent) {
		imageData, err := imageToBase64PNG(e.Tile.Image)
		if err != nil {
			logger.Error().Err(err).Msg("failed to encode tile")
			return
		}
		stream.send(StreamMessage{
			Type:       "tile",
			TileNumber: e.TileNumber,
			TotalTiles: e.TotalTiles,
			StartRow:   e.Tile.StartRow,
			Rows:       e.Tile.Image.Height,
			Width:      e.Tile.Image.Width,
			ImageData:  imageData,
		})
	}))
	if err != nil {
		stream.send(StreamMessage{Type: "error", Message: err.Error()})
		return
	}

	stream.send(StreamMessage{Type: "start", Width: req.Width, Height: req.Height})

	_, stats, err := rt.Render()
	if err != nil {
		stream.send(StreamMessage{Type: "error", Message: err.Error()})
		return
	}
	stream.send(StreamMessage{Type: "complete", Width: req.Width, Height: req.Height, Stats: statsFrom(stats)})

	stream.mu.Lock()
	conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render complete"))
	stream.mu.Unlock()
}
