package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gobarber/internal/client/client"
	"github.com/dmitrijs2005/gobarber/internal/client/config"
	"github.com/dmitrijs2005/gobarber/internal/client/services"
	"github.com/dmitrijs2005/gobarber/internal/client/session"
	"github.com/dmitrijs2005/gobarber/internal/client/storage"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

// NewAppFromConfig opens storage, builds the REST client, the services and
// the session store from cfg, and starts restoring the persisted session.
// Call Close when done.
func NewAppFromConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	kv, err := storage.Open(ctx, storage.Options{
		Backend:   cfg.StorageBackend,
		SQLiteDSN: cfg.SQLiteDSN,
		RedisAddr: cfg.RedisAddr,
		RedisDB:   cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, client.Options{
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("create api client: %w", err)
	}

	auth := services.NewAuthService(api, logger)
	store := session.New(auth, kv, session.Options{
		KeyPrefix: cfg.KeyPrefix,
		Tokens:    api,
		Logger:    logger,
	})
	profile := services.NewProfileService(api, store, logger)

	store.Start(ctx)

	app := NewApp(store, auth, profile, logger)
	app.closer = kv
	return app, nil
}

// Close releases the storage opened by NewAppFromConfig.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
