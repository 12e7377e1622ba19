// Zaparoo Core
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-tools/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-tools/pkg/validation"
	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "ZAPAROO_TOOLS_CFG"
)

type Values struct {
	Paths        Paths   `toml:"paths"`
	Sandbox      Sandbox `toml:"sandbox"`
	ConfigSchema int     `toml:"config_schema"`
	DebugLogging bool    `toml:"debug_logging"`
}

// Paths overrides the default locations. Empty values use the defaults.
type Paths struct {
	Home      string `toml:"home,omitempty"`
	ToolsFile string `toml:"tools_file,omitempty"`
	LogDir    string `toml:"log_dir,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Sandbox: Sandbox{
		Mode: SandboxAuto,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	return NewConfigAt(cfgPath, defaults)
}

// NewConfigAt loads the config file at an explicit path, ignoring CfgEnv.
// A missing file is created from defaults.
//
//nolint:gocritic // config struct copied for immutability
func NewConfigAt(cfgPath string, defaults Values) (*Instance, error) {
	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := validation.DefaultValidator.Validate(newVals); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Home is the directory Heroic and Flatpak data are looked up under.
func (c *Instance) Home() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Paths.Home != "" {
		return c.vals.Paths.Home
	}
	return xdg.Home
}

func (c *Instance) SetHome(home string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Paths.Home = home
}

// ToolsFile is the path of the JSON tools list.
func (c *Instance) ToolsFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Paths.ToolsFile != "" {
		return c.vals.Paths.ToolsFile
	}
	return filepath.Join(DefaultDataDir(), ToolsFile)
}

func (c *Instance) SetToolsFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Paths.ToolsFile = path
}

func (c *Instance) LogDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Paths.LogDir != "" {
		return c.vals.Paths.LogDir
	}
	return filepath.Join(DefaultDataDir(), LogsDir)
}
