package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/app"
	"github.com/studyhub-app/studyhub-go/internal/config"
	"github.com/studyhub-app/studyhub-go/keyval"
	"github.com/studyhub-app/studyhub-go/notifications"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running client: %s\n", err)
	}
	log.Printf("Client stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	displayAppname(cfg.AppName)

	logger := newLogger(cfg.Debug)

	if err := os.MkdirAll(filepath.Dir(cfg.StateFile), 0o700); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}
	store, err := keyval.OpenFile(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("keyval.OpenFile: %w", err)
	}

	studyhub := app.New(cfg, store, app.WithLogger(logger))
	if studyhub.Session.LoggedIn() {
		user := studyhub.Session.User()
		logger.Info().Str("user", user.Name).Str("role", user.Role).Msg("session restored")
	} else {
		logger.Info().Msg("no active session")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if studyhub.Session.LoggedIn() {
		poller := notifications.NewPoller(studyhub.Notifications, cfg.PollInterval, logger)
		go poller.Run(ctx)
	}

	waitForStopSignal()
	return nil
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
