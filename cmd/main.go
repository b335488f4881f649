package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	gommon "github.com/labstack/gommon/log"

	"oracle/pkg/config"
	"oracle/pkg/inference"
	"oracle/pkg/prompt"
	"oracle/pkg/server"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer done()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}
	log.SetLevel(cfg.LogLevel)

	inf, err := inference.New(ctx, cfg)
	if err != nil {
		log.Fatal("failed creating inferencer", "provider", cfg.Provider, "error", err)
	}
	log.Info("using model", "provider", cfg.Provider, "model", cfg.Model, "base_url", cfg.BaseURL)

	srv, err := server.NewServer(inf, prompt.New(cfg.PromptsDir), cfg.RequestTimeout)
	if err != nil {
		log.Fatal("failed creating server", "error", err)
	}
	srv.Echo.Logger.SetLevel(echoLevel(cfg.LogLevel))

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
		close(finishedShutDown)
	}()

	if err := srv.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-finishedShutDown
}

func echoLevel(l log.Level) gommon.Lvl {
	switch {
	case l <= log.DebugLevel:
		return gommon.DEBUG
	case l <= log.InfoLevel:
		return gommon.INFO
	case l <= log.WarnLevel:
		return gommon.WARN
	default:
		return gommon.ERROR
	}
}
