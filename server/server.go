// Package server exposes the game over a websocket. Each connection
// gets its own engine, so sessions are isolated and the protocol stays
// a strict request/response: one command in, one response out.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kmoss/dungeoneer/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// Command is the client-to-server message.
type Command struct {
	Command string `json:"command"`
}

// Response is the server-to-client message sent after every command.
type Response struct {
	Output    string `json:"output"`
	Turn      int    `json:"turn"`
	Room      string `json:"room"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"maxHealth"`
	Level     int    `json:"level"`
	Gold      int    `json:"gold"`
	GameOver  bool   `json:"gameOver"`
	Victory   bool   `json:"victory"`
	Error     string `json:"error,omitempty"`
}

// NewSessionFunc builds a fresh engine for one connection.
type NewSessionFunc func() (*engine.Engine, error)

// Server serves game sessions over websocket connections.
type Server struct {
	newSession NewSessionFunc
	upgrader   websocket.Upgrader
}

// New creates a Server that starts each connection with newSession.
func New(newSession NewSessionFunc) *Server {
	return &Server{
		newSession: newSession,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the HTTP handler serving the /play endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	return mux
}

// ListenAndServe runs the server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	eng, err := s.newSession()
	if err != nil {
		log.Printf("session: %v", err)
		s.writeResponse(conn, Response{Error: "failed to start session"})
		return
	}

	conn.SetReadLimit(maxMessageSize)

	// Greet with the starting room so the client has something to react to.
	turn := 0
	if err := s.writeResponse(conn, s.responseFor(eng, eng.Step("look"), turn)); err != nil {
		return
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read: %v", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			if err := s.writeResponse(conn, Response{Error: "invalid message: expected {\"command\": ...}"}); err != nil {
				return
			}
			continue
		}
		if cmd.Command == "" {
			if err := s.writeResponse(conn, Response{Error: "empty command"}); err != nil {
				return
			}
			continue
		}

		turn++
		out := eng.Step(cmd.Command)
		if err := s.writeResponse(conn, s.responseFor(eng, out, turn)); err != nil {
			return
		}

		if eng.State.IsGameOver || !eng.State.Player.IsAlive {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (s *Server) responseFor(eng *engine.Engine, output string, turn int) Response {
	gs := eng.State
	return Response{
		Output:    output,
		Turn:      turn,
		Room:      gs.Player.CurrentRoom,
		Health:    gs.Player.Health,
		MaxHealth: gs.Player.MaxHealth,
		Level:     gs.Player.Level,
		Gold:      gs.Player.Gold,
		GameOver:  gs.IsGameOver,
		Victory:   gs.Victory,
	}
}

func (s *Server) writeResponse(conn *websocket.Conn, resp Response) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(resp)
}
