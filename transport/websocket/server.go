package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type gameUseCase interface {
	State(ctx context.Context) (tictactoe.State, error)
	MakeMove(ctx context.Context, cell int) (tictactoe.State, error)
	JumpTo(ctx context.Context, step int) (tictactoe.State, error)
	ToggleSort(ctx context.Context) (tictactoe.State, error)
	Subscribe() (<-chan tictactoe.State, func())
}

// Server is the live channel of the page: it receives intents and pushes the re-rendered tree.
type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	renderer *view.Renderer
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, message *Message) error
}

func New(logger *slog.Logger, game gameUseCase, renderer *view.Renderer) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		game:     game,
		renderer: renderer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},

		handlers: make(map[string]func(context.Context, *Message) error),
	}

	server.handlers[actionBoardClick] = server.handleBoardClick
	server.handlers[actionHistoryJump] = server.handleHistoryJump
	server.handlers[actionHistorySort] = server.handleHistorySort

	return server
}

// connection serialises writes, gorilla allows a single concurrent writer.
type connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *connection) send(msg Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) ping() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ServeHTTP - upgrades the connection to WebSocket and serves it until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	ctx := req.Context()
	client := &connection{conn: conn}

	// subscribe before the first render so no update is missed in between
	updates, unsubscribe := that.game.Subscribe()
	defer unsubscribe()

	state, err := that.game.State(ctx)
	if err != nil {
		log.Error("failed to get game state", "error", err)
		return
	}

	if err = that.sendRender(client, state); err != nil {
		log.Error("failed to send initial render", "error", err)
		return
	}

	done := make(chan struct{})
	defer close(done)

	go that.pushUpdates(client, updates, done)

	if err = that.handleMessages(ctx, client); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// pushUpdates - sends every new state to the client and keeps the connection alive.
func (that *Server) pushUpdates(client *connection, updates <-chan tictactoe.State, done <-chan struct{}) {
	log := that.logger.With("method", "pushUpdates")

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case state, ok := <-updates:
			if !ok {
				return
			}

			if err := that.sendRender(client, state); err != nil {
				log.Error("failed to push state", "error", err)
				return
			}
		case <-ticker.C:
			if err := client.ping(); err != nil {
				log.Error("failed to ping client", "error", err)
				return
			}
		case <-done:
			return
		}
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, client *connection) error {
	log := that.logger.With("method", "handleMessages")

	if err := client.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := client.conn.ReadJSON(&message); err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		if err := that.processMessage(ctx, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)

			if sendErr := that.sendError(client, message.Action, err); sendErr != nil {
				return sendErr
			}
		}
	}
}

func (that *Server) processMessage(ctx context.Context, msg *Message) error {
	if handler, ok := that.handlers[msg.Action]; ok {
		return handler(ctx, msg)
	}

	return fmt.Errorf("%w: %s", apperror.ErrUnknownAction, msg.Action)
}

func (that *Server) sendRender(client *connection, state tictactoe.State) error {
	model := view.Build(state)

	html, err := that.renderer.RootString(model)
	if err != nil {
		return fmt.Errorf("failed to render state: %w", err)
	}

	msg, err := newMessage(actionRender, RenderPayload{HTML: html, Status: model.Status})
	if err != nil {
		return err
	}

	return client.send(msg)
}

func (that *Server) sendError(client *connection, action string, cause error) error {
	msg, err := newMessage(action, ErrorPayload{Error: cause.Error()})
	if err != nil {
		return err
	}

	return client.send(msg)
}
