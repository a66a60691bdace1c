package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
)

type sessionUseCase interface {
	CreateSession(ctx context.Context, clientID, mode string) (*entity.Match, error)
	GetSession(ctx context.Context, id string) (*entity.Match, error)

	MakeTurn(ctx context.Context, id, mark string, cell int) (*entity.Match, error)
	AdvisorTurn(ctx context.Context, id string, turnsPlayed int) (*entity.Match, int, error)

	ResetSession(ctx context.Context, id string) (*entity.Match, error)
	SwitchMode(ctx context.Context, id, mode string) (*entity.Match, error)
}

type scoreUseCase interface {
	GetTally(ctx context.Context, clientID string) (*entity.ScoreTally, error)
}

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	scores   scoreUseCase

	// advisorDelay paces the computer move so a human perceives thinking.
	advisorDelay time.Duration
	scheduler    *Scheduler

	handlers map[string]func(ctx context.Context, message *Message, c *conn) error
}

func New(logger *slog.Logger, sessions sessionUseCase, scores scoreUseCase, advisorDelay time.Duration) *Server {
	server := &Server{
		logger:       logger,
		sessions:     sessions,
		scores:       scores,
		advisorDelay: advisorDelay,
		scheduler:    NewScheduler(),

		handlers: make(map[string]func(context.Context, *Message, *conn) error),
	}

	server.handlers["connect"] = server.handleConnect
	server.handlers["session:new"] = server.handleNewSession
	server.handlers["session:turn"] = server.handleSessionTurn
	server.handlers["session:reset"] = server.handleSessionReset
	server.handlers["session:mode"] = server.handleSessionMode

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if req.Header.Get("Upgrade") != "websocket" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	key := req.Header.Get("Sec-WebSocket-Key")
	acceptKey := generateAcceptKey(key)

	writer.Header().Set("Upgrade", "websocket")
	writer.Header().Set("Connection", "Upgrade")
	writer.Header().Set("Sec-WebSocket-Accept", acceptKey)
	writer.WriteHeader(http.StatusSwitchingProtocols)

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking", "error", http.StatusText(http.StatusInternalServerError))
		return
	}

	netConn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer netConn.Close()

	c := newConn(bufrw)

	// pending computer moves must not write to a closed connection; only
	// this connection's moves are dropped, other clients keep theirs
	defer that.cancelScheduled(c)

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// cancelScheduled - drops the pending advisor moves scheduled by this
// connection.
func (that *Server) cancelScheduled(c *conn) {
	for _, id := range c.trackedSessions() {
		that.scheduler.Cancel(id)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		reqBody, err := that.readRequest(c.bufrw)
		if errors.Is(err, errConnClosed) {
			log.Info("client closed the connection")
			return nil
		}

		if err != nil {
			log.Error("error reading message", "error", err)
			return err
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "error", err, "action", message.Action)
		}
	}
}
