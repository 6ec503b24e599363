package main

import (
	"context"
	"os"

	"github.com/quickfindr/devtool/internal/config"
	"github.com/quickfindr/devtool/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.InitLogger(logger.DefaultConfig()).Error("failed to load configuration", "error", err)
		PrintError("%v", err)
		os.Exit(1)
	}

	initLogger(cfg)
	ctx := logger.WithRunID(context.Background(), logger.GenerateRunID())

	registry := newRegistry(&Env{Cfg: cfg, Log: logger.FromContext(ctx)})
	os.Exit(run(registry, os.Args[1:]))
}

// run dispatches args to a command and returns the process exit code
func run(r *Registry, args []string) int {
	if len(args) < 1 {
		r.PrintHelp()
		return 1
	}

	switch args[0] {
	case "help", "-h", "--help":
		r.PrintHelp()
		return 0
	}

	cmd, ok := r.Get(args[0])
	if !ok {
		PrintError("Unknown command: %s", args[0])
		r.PrintHelp()
		return 1
	}

	r.env.Log = r.env.Log.With(logger.AttrKeyCommand, cmd.Name())
	if err := cmd.Run(args[1:]); err != nil {
		r.env.Log.Debug("command failed", "error", err)
		PrintError("%s: %v", cmd.Name(), err)
		return 1
	}
	r.env.Log.Debug("command finished")
	return 0
}

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Determine if we should add source info (only in dev)
	addSource := cfg.Environment == logger.EnvironmentDev && cfg.LogLevel == "debug"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
