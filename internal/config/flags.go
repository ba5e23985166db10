// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values; only visited flags override.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	DebugLog        *bool
	Flavor          *string
	Backend         *string
	EscapeTimeout   *int
	UndoDepth       *int
	ReadOnly        *bool
	SystemClipboard *bool
	ThemeFile       *string
}

// DefineFlags registers every flag on fs.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.set = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Trace the logger filtering decisions on stderr")
	f.Flavor = fs.String("flavor", "", "Editor flavor (keymap and help lines)")
	f.Backend = fs.String("backend", "", "Terminal backend: ansi or tcell")
	f.EscapeTimeout = fs.Int("escape-timeout", 0, "Milliseconds to wait after ESC before treating it as a key")
	f.UndoDepth = fs.Int("undo-depth", 0, "Maximum number of undoable edits kept")
	f.ReadOnly = fs.Bool("readonly", false, "Open the file read-only")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.ThemeFile = fs.String("theme", "", "Path to a TOML theme file")
}

// ParseFlags defines the flags on fs, parses args and returns the
// remaining non-flag arguments (the file path).
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ApplyOverrides updates cfg with values from flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "flavor":
			if *f.Flavor != "" {
				cfg.Editor.Flavor = *f.Flavor
			}
		case "backend":
			if *f.Backend != "" {
				cfg.Editor.Backend = *f.Backend
			}
		case "escape-timeout":
			if *f.EscapeTimeout > 0 {
				cfg.Editor.EscapeTimeoutMs = *f.EscapeTimeout
			}
		case "undo-depth":
			if *f.UndoDepth > 0 {
				cfg.Editor.UndoDepth = *f.UndoDepth
			}
		case "readonly":
			cfg.Editor.ReadOnly = *f.ReadOnly
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "theme":
			cfg.Editor.ThemeFile = *f.ThemeFile
		}
	})
}

// splitCommaList splits "a, b,,c" into [a b c].
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
