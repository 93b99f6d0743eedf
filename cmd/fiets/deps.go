package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/glabrego/fiets-cli/internal/app"
	"github.com/glabrego/fiets-cli/internal/config"
	"github.com/glabrego/fiets-cli/internal/fiets"
	"github.com/glabrego/fiets-cli/internal/logging"
	"github.com/glabrego/fiets-cli/internal/storage"
)

// runtime is everything a command needs once configuration is resolved.
type runtime struct {
	cfg     config.Config
	logger  logging.Logger
	service *app.Service
	closers []io.Closer
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// opener builds the runtime for a command. Tests swap it for one backed by
// fakes.
type opener func(ctx context.Context, configPath string) (*runtime, error)

func defaultOpener(ctx context.Context, configPath string) (*runtime, error) {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logFile, err := logging.Open(logging.Config{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, logger: logger, closers: []io.Closer{logFile}}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	rt.closers = append(rt.closers, repo)

	initCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := repo.CheckWritable(initCtx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("database is not writable: %w", err)
	}

	client, err := fiets.NewClient(cfg.ServerURL, &http.Client{
		Timeout: cfg.RequestTimeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	})
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.service = app.NewService(client, repo, cfg.FetchLimit, logger)
	logger.Info("runtime ready", "server", cfg.ServerURL, "db", cfg.DBPath)
	return rt, nil
}
