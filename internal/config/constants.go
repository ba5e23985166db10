package config

import "time"

// Base application details
const AppName = "nib"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "nib.log"
const Version = "0.3.0"

// Editor defaults
const DefaultFlavor = "simple"
const DefaultTitle = "Nib"
const DefaultEscapeTimeout = 100 * time.Millisecond
const DefaultUndoDepth = 500
const DefaultCursorDepth = 100
const SystemClipboard = true

// Backends
const BackendANSI = "ansi"
const BackendTcell = "tcell"
