package main

import (
	"fmt"
	"os"

	"github.com/MikaStiebitz/Git-Gud/config"
	"github.com/MikaStiebitz/Git-Gud/utils/logging"
	"go.uber.org/zap"
)

// Entry point of the application - pick the mode from the first argument.
func main() {
	mode := "play"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	// Step 1 - configuration and logging
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitgud: %v\n", err)
		os.Exit(1)
	}
	if mode != "serve" && cfg.Logging.Level == "info" {
		// Info logs would interleave with the prompt
		cfg.Logging.Level = "warn"
	}
	if err := logging.Init(cfg.LoggingConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "gitgud: logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logging.Sync() }()

	// Step 2 - dispatch
	switch mode {
	case "play":
		// Interactive terminal for a single learner
		err = runTerminal(cfg)
	case "exec":
		// Run the remaining arguments as one input line
		err = runExec(cfg, os.Args[2:])
	case "serve":
		// HTTP and WebSocket server for the browser terminal
		err = runServer(cfg)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Printf("gitgud: '%s' is not a gitgud command. See 'gitgud help'.\n", mode)
		usage()
		os.Exit(1)
	}

	if err != nil {
		logging.L().Error("gitgud failed", zap.String("mode", mode), zap.Error(err))
		fmt.Fprintf(os.Stderr, "gitgud: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: gitgud [play | exec <line> | serve | help]")
	fmt.Println("   play    start the interactive Git terminal (default)")
	fmt.Println("   exec    run one input line, e.g. gitgud exec \"git init; git status\"")
	fmt.Println("   serve   serve the terminal over HTTP and WebSocket")
}
