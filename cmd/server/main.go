package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mdcommunity/mdbots-api/bots/postgres"
	"github.com/mdcommunity/mdbots-api/discord"
	"github.com/mdcommunity/mdbots-api/internal/config"
	"github.com/mdcommunity/mdbots-api/internal/monitor"
	"github.com/mdcommunity/mdbots-api/server"
	"github.com/mdcommunity/mdbots-api/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	if err := postgres.Migrate(c.GetDatabaseDSN()); err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}

	pool, err := pgxpool.New(context.Background(), c.GetDatabaseDSN())
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	srv := &http.Server{
		Addr: c.GetPort(),
		Handler: server.New(c, server.Dependencies{
			Codec:    token.NewCodec(c),
			Provider: discord.NewClient(c),
			BotDir:   discord.NewBotClient(c),
			Bots:     postgres.NewRepo(pool),
			Monitor:  monitor.New(c.GetErrorWebhookURL()),
		}),
	}

	go listenAndServe(srv)
	waitForStopSignal()
	return shutdown(srv)
}

func setupLogging(c config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func listenAndServe(srv *http.Server) {
	log.Info().Str("addr", srv.Addr).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
