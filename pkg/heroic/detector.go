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

// Package heroic reads Heroic Games Launcher's on-disk configuration to find
// installed games, their Wine prefixes and matching Proton builds.
//
// Every call re-reads the filesystem. Missing files are a normal outcome and
// malformed files are logged and skipped, nothing here returns an error.
package heroic

import (
	"encoding/json"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-tools/pkg/flatpak"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Detector locates Heroic's configuration under a home directory.
type Detector struct {
	Fs   afero.Fs
	Home string
}

// NewDetector returns a Detector reading the OS filesystem under home.
func NewDetector(home string) *Detector {
	return &Detector{
		Fs:   afero.NewOsFs(),
		Home: home,
	}
}

// FlatpakConfigRoot is Heroic's config directory for the Flatpak build.
func (d *Detector) FlatpakConfigRoot() string {
	return filepath.Join(flatpak.AppPath(d.Home, flatpak.HeroicID), "config", "heroic")
}

// NativeConfigRoot is Heroic's config directory for a native install.
func (d *Detector) NativeConfigRoot() string {
	return filepath.Join(d.Home, ".config", "heroic")
}

func (d *Detector) exists(path string) bool {
	_, err := d.Fs.Stat(path)
	return err == nil
}

// ConfigRoot returns the first existing config directory, checking the
// Flatpak location before the native one.
func (d *Detector) ConfigRoot() (string, bool) {
	if root := d.FlatpakConfigRoot(); d.exists(root) {
		return root, true
	}
	if root := d.NativeConfigRoot(); d.exists(root) {
		return root, true
	}
	return "", false
}

// IsInstalled reports whether a Heroic config directory exists.
func (d *Detector) IsInstalled() bool {
	_, ok := d.ConfigRoot()
	return ok
}

// IsFlatpak reports whether the resolved config root is the Flatpak one.
func (d *Detector) IsFlatpak() bool {
	root, ok := d.ConfigRoot()
	return ok && root == d.FlatpakConfigRoot()
}

// ToolsRoot returns the directory holding Heroic's Proton builds.
func (d *Detector) ToolsRoot() (string, bool) {
	root, ok := d.ConfigRoot()
	if !ok {
		return "", false
	}

	if root == d.FlatpakConfigRoot() {
		flatpakTools := filepath.Join(
			flatpak.AppPath(d.Home, flatpak.HeroicID),
			"config", "heroic", "tools", "proton",
		)
		if d.exists(flatpakTools) {
			return flatpakTools, true
		}
	}

	tools := filepath.Join(root, "tools", "proton")
	if d.exists(tools) {
		return tools, true
	}
	return "", false
}

// DetectGames lists installed games across the Epic, GOG and Amazon stores,
// in that order. Returns an empty slice when Heroic is not installed.
func (d *Detector) DetectGames() []GameInfo {
	root, ok := d.ConfigRoot()
	if !ok {
		log.Debug().Msg("Heroic config directory not found")
		return []GameInfo{}
	}

	perStore := make([][]GameInfo, len(Stores))
	var g errgroup.Group
	for i, store := range Stores {
		g.Go(func() error {
			perStore[i] = d.detectStore(root, store)
			return nil
		})
	}
	_ = g.Wait()

	games := make([]GameInfo, 0)
	for _, found := range perStore {
		games = append(games, found...)
	}

	log.Debug().Msgf("detected %d Heroic games", len(games))
	return games
}

type installedEntry struct {
	AppName *string `json:"appName"`
	Title   *string `json:"title"`
}

func (d *Detector) detectStore(root string, store Store) []GameInfo {
	path := store.ManifestPath(root)
	games := make([]GameInfo, 0)

	data, err := afero.ReadFile(d.Fs, path)
	if err != nil {
		log.Debug().Str("store", string(store)).Msgf("Heroic installed list not readable: %s", path)
		return games
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Debug().Err(err).Str("store", string(store)).
			Msg("Heroic installed list is not a JSON array")
		return games
	}

	for _, raw := range entries {
		var entry installedEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			log.Debug().Err(err).Str("store", string(store)).Msg("skipping malformed installed entry")
			continue
		}
		if entry.AppName == nil {
			continue
		}

		info, ok := d.parseGameConfig(root, *entry.AppName)
		if !ok {
			continue
		}
		if entry.Title != nil {
			info.Title = *entry.Title
		}
		info.Store = store
		games = append(games, info)
	}

	log.Debug().Msgf("detected %d games from %s store", len(games), store)
	return games
}

// GetGameConfig reads GamesConfig/<appName>.json under the config root.
func (d *Detector) GetGameConfig(appName string) (GameInfo, bool) {
	root, ok := d.ConfigRoot()
	if !ok {
		return GameInfo{}, false
	}
	return d.parseGameConfig(root, appName)
}

type wineVersion struct {
	Name *string `json:"name"`
}

type gameConfig struct {
	InstallPath *string      `json:"install_path"` //nolint:tagliatelle // External JSON format from Heroic
	WinePrefix  *string      `json:"winePrefix"`
	WineVersion *wineVersion `json:"wineVersion"`
}

func (c gameConfig) complete() bool {
	return c.InstallPath != nil && c.WinePrefix != nil
}

func (d *Detector) parseGameConfig(root, appName string) (GameInfo, bool) {
	path := filepath.Join(root, "GamesConfig", appName+".json")

	data, err := afero.ReadFile(d.Fs, path)
	if err != nil {
		log.Debug().Msgf("Heroic game config not found: %s", path)
		return GameInfo{}, false
	}

	var cfg gameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Debug().Err(err).Str("appName", appName).Msg("failed to parse Heroic game config")
		return GameInfo{}, false
	}

	// Heroic itself nests settings under the app name.
	if !cfg.complete() {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(data, &nested); err == nil {
			if inner, ok := nested[appName]; ok {
				var innerCfg gameConfig
				if err := json.Unmarshal(inner, &innerCfg); err == nil && innerCfg.complete() {
					cfg = innerCfg
				}
			}
		}
	}

	if cfg.InstallPath == nil {
		log.Debug().Str("appName", appName).Msg("Heroic config missing install_path")
		return GameInfo{}, false
	}
	if cfg.WinePrefix == nil {
		log.Debug().Str("appName", appName).Msg("Heroic config missing winePrefix")
		return GameInfo{}, false
	}

	info := GameInfo{
		AppName:     appName,
		InstallPath: *cfg.InstallPath,
		WinePrefix:  *cfg.WinePrefix,
	}
	if cfg.WineVersion != nil && cfg.WineVersion.Name != nil {
		info.WineVersion = *cfg.WineVersion.Name
	}

	if info.WineVersion != "" {
		if tools, ok := d.ToolsRoot(); ok {
			info.ProtonPath, _ = FindProtonPath(d.Fs, info.WineVersion, tools)
		}
	}

	return info, true
}
