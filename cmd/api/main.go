package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"issuetracker/internal/config"
	"issuetracker/internal/database"
	"issuetracker/internal/router"
	"issuetracker/pkg/logger"
)

func main() {
	// config + logger
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	l := logger.New(cfg.Env)

	// store
	store, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store open failed")
	}
	defer store.Close()

	// http
	r := router.New(l, store, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("shutdown")
	}
	l.Info().Msg("shutdown complete")
}
