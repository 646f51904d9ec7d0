// Package gateway bridges the room change feed to browser clients. Each
// socket carries one room subscription: the client gets the current
// document on connect, then every full updated row as writes land.
package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	roomRepo "github.com/quizden/quizden/internal/repositories/room"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Server serves the feed gateway HTTP surface
type Server struct {
	config   *Config
	upgrader websocket.Upgrader
}

// Config holds configuration for the feed gateway
type Config struct {
	// RoomRepo supplies point reads and feed subscriptions
	RoomRepo roomRepo.Repository

	Log zerolog.Logger
}

// New creates a new feed gateway server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RoomRepo == nil {
		return nil, errors.New("room repository cannot be nil")
	}

	return &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Room codes are the only credential; origins are not checked
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}, nil
}

// Routes builds the gateway router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/rooms", s.handleListRooms)
	r.Get("/rooms/{code}/feed", s.handleFeed)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleListRooms returns the codes of all live rooms
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	out, err := s.config.RoomRepo.ListActiveCodes(r.Context(), &roomRepo.ListActiveCodesInput{})
	if err != nil {
		s.config.Log.Error().Err(err).Msg("failed to list active rooms")
		http.Error(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"codes": out.Codes})
}

// handleFeed upgrades the connection and relays the room's change feed
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	room, err := s.config.RoomRepo.GetRoom(r.Context(), &roomRepo.GetRoomInput{Code: code})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		s.config.Log.Error().Err(err).Str("room", code).Msg("failed to read room")
		http.Error(w, "failed to read room", http.StatusInternalServerError)
		return
	}

	sub, err := s.config.RoomRepo.Subscribe(r.Context(), &roomRepo.SubscribeInput{Code: code})
	if err != nil {
		s.config.Log.Error().Err(err).Str("room", code).Msg("failed to subscribe to room feed")
		http.Error(w, "failed to subscribe", http.StatusInternalServerError)
		return
	}
	defer func() { _ = sub.Close() }()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		return
	}
	defer func() { _ = conn.Close() }()

	// The read side only services close and pong frames
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.writeSnapshot(conn, room); err != nil {
		return
	}

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case update, ok := <-sub.Updates():
			if !ok {
				return
			}
			if err := s.writeSnapshot(conn, update); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) writeSnapshot(conn *websocket.Conn, snapshot any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(snapshot)
}
