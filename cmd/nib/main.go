// cmd/nib/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	stlog "log" // logger is not ready until the config is loaded
	"os"
	"path/filepath"

	"github.com/bethropolis/nib/internal/app"
	"github.com/bethropolis/nib/internal/config"
	"github.com/bethropolis/nib/internal/logger"
)

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	args, err := flags.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		stlog.Fatalf("Failed to parse flags: %v", err)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		os.Exit(0)
	}
	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Printf("Warning: %v (using defaults)", err)
	}

	// --- Logger Initialization ---
	logOutput, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	logger.SetFilterDebug(*flags.DebugLog)
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s", config.AppName, config.Version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create and Run App ---
	nibApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		closeLog()
		stlog.Fatalf("%s: %v", config.AppName, err)
	}

	if err := nibApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		stlog.Fatalf("%s: %v", config.AppName, err)
	}

	logger.Infof("%s finished.", config.AppName)
}

// openLog opens the configured log destination. "-" is stderr; an empty
// path means nib.log in the user cache directory.
func openLog(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return io.Discard, func() {}, nil
		}
		dir := filepath.Join(cacheDir, config.AppName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("'%s': %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
