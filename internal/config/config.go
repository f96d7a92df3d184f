// Package config loads the HCL configuration shared by the showdown
// commands and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/showdown/internal/game"
)

// Config is the complete configuration file.
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Table    *TableSettings  `hcl:"table,block"`
	Equity   *EquitySettings `hcl:"equity,block"`
	Server   *ServerSettings `hcl:"server,block"`
}

// TableSettings configures hands dealt by the deal command.
type TableSettings struct {
	Players       int    `hcl:"players,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	Seed          *int64 `hcl:"seed,optional"`
}

// EquitySettings configures equity calculations.
type EquitySettings struct {
	Iterations int `hcl:"iterations,optional"`
	Workers    int `hcl:"workers,optional"`
}

// ServerSettings configures the evaluation server.
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

const (
	DefaultPlayers       = 2
	DefaultStartingChips = 1000
	DefaultIterations    = 10000
	DefaultAddress       = "localhost"
	DefaultPort          = 8080
	DefaultLogLevel      = "info"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; values absent from the file are filled in the same way.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Table.Players == 0 {
		c.Table.Players = DefaultPlayers
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = DefaultStartingChips
	}
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = game.DefaultSmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = game.DefaultBigBlind
	}

	if c.Equity == nil {
		c.Equity = &EquitySettings{}
	}
	if c.Equity.Iterations == 0 {
		c.Equity.Iterations = DefaultIterations
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	t := c.Table
	if t.Players < game.MinPlayers || t.Players > game.MaxPlayers {
		return fmt.Errorf("table: players must be between %d and %d", game.MinPlayers, game.MaxPlayers)
	}
	if t.SmallBlind <= 0 {
		return fmt.Errorf("table: small blind must be positive")
	}
	if t.BigBlind < t.SmallBlind {
		return fmt.Errorf("table: big blind must not be less than small blind")
	}
	if t.StartingChips < t.BigBlind {
		return fmt.Errorf("table: starting chips must cover the big blind")
	}

	if c.Equity.Iterations <= 0 {
		return fmt.Errorf("equity: iterations must be positive")
	}
	if c.Equity.Workers < 0 {
		return fmt.Errorf("equity: workers must not be negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	return nil
}

// ServerAddress returns the host:port the server listens on.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
