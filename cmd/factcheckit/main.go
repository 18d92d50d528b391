// Command factcheckit runs the claim verification API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/factcheckit/factcheckit/internal/api"
	"github.com/factcheckit/factcheckit/internal/bot"
	"github.com/factcheckit/factcheckit/internal/config"
	"github.com/factcheckit/factcheckit/internal/database"
	"github.com/factcheckit/factcheckit/internal/llm"
	"github.com/factcheckit/factcheckit/internal/verify"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	generateConfig := flag.Bool("generate-config", false, "write a sample configuration file and exit")
	flag.Parse()

	if *generateConfig {
		if err := config.GenerateSample(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sample configuration written to %s\n", *configPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Logging)

	provider, err := llm.NewProvider(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize LLM provider")
	}
	log.Info().Str("provider", provider.Name()).Msg("LLM provider initialized")

	store, err := database.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer store.Close()

	engine := verify.NewEngine(cfg, provider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telegram.Enabled {
		tgBot, err := bot.New(cfg.Telegram.BotToken, engine)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start Telegram bot")
		}
		go tgBot.Run(ctx)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(cfg, engine, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
