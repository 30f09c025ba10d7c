package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mybank/internal/buildinfo"
	"github.com/dmitrijs2005/mybank/internal/client/cli"
	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/config"
	"github.com/dmitrijs2005/mybank/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeStore()

	c, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(cfg, c, store, logger)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "console stopped", "error", err)
	}

}

// openStore opens the session store selected by cfg.StoreDriver.
func openStore(ctx context.Context, cfg *config.Config) (metadata.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		rdb, err := metadata.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewRedisRepository(rdb, metadata.DefaultRedisPrefix), closer(rdb), nil
	default:
		db, err := client.InitDatabase(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewSQLiteRepository(db), closer(db), nil
	}
}

func closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}
}
