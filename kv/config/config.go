package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
)

// Config holds the runtime settings of the memkv driver.
type Config struct {
	LogLevel string `toml:"log-level"`

	// Prompt shown by the interactive shell.
	ShellPrompt string `toml:"shell-prompt"`
	// File the shell persists its input history to. Empty disables history.
	HistoryFile string `toml:"history-file"`

	// Number of pairs a shell scan returns when no limit is given.
	ScanDefaultLimit int `toml:"scan-default-limit"`
}

func (c *Config) Validate() error {
	if c.ScanDefaultLimit <= 0 {
		return fmt.Errorf("scan-default-limit must be greater than 0")
	}
	return nil
}

func getLogLevel() (logLevel string) {
	logLevel = "info"
	if l := os.Getenv("LOG_LEVEL"); len(l) != 0 {
		logLevel = l
	}
	return
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:         getLogLevel(),
		ShellPrompt:      "memkv» ",
		HistoryFile:      "/tmp/memkv_history",
		ScanDefaultLimit: 256,
	}
}

func NewTestConfig() *Config {
	return &Config{
		LogLevel:         getLogLevel(),
		ShellPrompt:      "» ",
		HistoryFile:      "",
		ScanDefaultLimit: 16,
	}
}

// FromTOMLFile overlays settings from a TOML file onto c.
func (c *Config) FromTOMLFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return errors.Trace(err)
	}
	return c.Validate()
}
