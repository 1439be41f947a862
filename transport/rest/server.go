package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/matryer/way"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	State(ctx context.Context) (tictactoe.State, error)
	MakeMove(ctx context.Context, cell int) (tictactoe.State, error)
	JumpTo(ctx context.Context, step int) (tictactoe.State, error)
	ToggleSort(ctx context.Context) (tictactoe.State, error)
}

type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	renderer *view.Renderer
	live     http.Handler
}

// New - live serves the /ws route.
func New(logger *slog.Logger, game gameUseCase, renderer *view.Renderer, live http.Handler) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		game:     game,
		renderer: renderer,
		live:     live,
	}
}

func (that *Server) Routes() http.Handler {
	router := way.NewRouter()

	router.HandleFunc(http.MethodGet, "/", that.handleIndex)
	router.HandleFunc(http.MethodGet, "/ping", that.handlePing)
	router.HandleFunc(http.MethodGet, "/state", that.handleState)
	router.HandleFunc(http.MethodPost, "/move/:cell", that.handleMove)
	router.HandleFunc(http.MethodPost, "/jump/:step", that.handleJump)
	router.HandleFunc(http.MethodPost, "/sort", that.handleSort)
	router.Handle(http.MethodGet, "/ws", that.live)

	return router
}

// Start - serves the routes on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
