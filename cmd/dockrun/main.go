package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gofrs/flock"

	"github.com/chess10kp/dockrun/internal/cli"
	"github.com/chess10kp/dockrun/internal/config"
	"github.com/chess10kp/dockrun/internal/core"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	app := cli.New(launch)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return ExitGeneralError
	}
	return ExitSuccess
}

func launch(cfg *config.Config, logFile string) error {
	if logFile != "" {
		f, err := os.OpenFile(config.ExpandPath(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	lock := flock.New(cli.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire process lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another %s instance is already running", config.AppName)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Printf("Warning: failed to release process lock: %v", err)
		}
	}()

	app, err := core.NewApp(cfg)
	if err != nil {
		return err
	}
	return app.Run()
}
