package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
	"github.com/rocketscienceinc/tictactoe-history/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	stateRepo, closeStore, err := newStateRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("could not load templates: %w", err)
	}

	gameManager := usecase.NewGameManager(logger, stateRepo)

	defer func() {
		// the game lives only as long as the process
		if resetErr := gameManager.Reset(context.Background()); resetErr != nil {
			log.Error("could not reset game state", "error", resetErr)
		}
	}()

	wsServer := websocket.New(logger, gameManager, renderer)
	httpServer := rest.New(logger, gameManager, renderer, wsServer)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "store", conf.Store)

	if err = httpServer.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newStateRepository - picks the store driver from config. The returned func releases it.
func newStateRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.StateRepository, func(), error) {
	switch conf.Store {
	case config.StoreMemory:
		return repository.NewMemoryStateRepository(), func() {}, nil

	case config.StoreRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" || conf.Redis.Port == "" {
			return nil, nil, ErrAddrNotFound
		}

		instanceID, err := pkg.GenerateInstanceID()
		if err != nil {
			return nil, nil, err
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("Using redis storage", "addr", redisAddrString, "instance", instanceID)

		closeStore := func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRedisStateRepository(redisStorage, instanceID, conf.Redis.TTL), closeStore, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStore, conf.Store)
	}
}
