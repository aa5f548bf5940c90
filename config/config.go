// Package config loads smith's project configuration and owns the debug
// log handle. Configuration lives in smith.toml at the project root with
// SMITH_* environment overrides, so credentials never get read ad hoc deep
// inside backend code.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the per-project configuration file, looked up at the
// git root.
const ConfigFileName = "smith.toml"

// ProjectConfig is the read-only configuration consumed by the rest of the
// application.
type ProjectConfig struct {
	Provider        string `toml:"provider"`
	Model           string `toml:"model"`
	MaxContext      int    `toml:"max_context"`
	MaxOutputTokens int64  `toml:"max_output_tokens"`
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
}

var Debug = false
var DebugLog *log.Logger

// Load reads smith.toml from dir, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(dir string) (ProjectConfig, error) {
	cfg := Default()

	path := filepath.Join(dir, ConfigFileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) {
			return ProjectConfig{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *ProjectConfig) applyEnvOverrides() {
	if v := os.Getenv("SMITH_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("SMITH_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("SMITH_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("SMITH_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SMITH_MAX_CONTEXT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxContext = n
		}
	}
	if v := os.Getenv("SMITH_MAX_OUTPUT_TOKENS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxOutputTokens = n
		}
	}
}

// CheckDebug reports whether debug logging is requested via SMITH_DEBUG.
func CheckDebug() bool {
	debug := os.Getenv("SMITH_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog opens the debug log in the project root when SMITH_DEBUG is
// set. The file may contain prompts and tool output, hence 0600.
func InitDebugLog(dir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dir, ".smith.log")

	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (SMITH_DEBUG=%s) ===", os.Getenv("SMITH_DEBUG"))
}
