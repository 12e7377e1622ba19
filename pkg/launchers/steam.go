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

package launchers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
)

// ErrManifestNotFound is returned when a steamapps directory has no manifest
// for the requested app.
var ErrManifestNotFound = errors.New("steam app manifest not found")

// AppManifest holds the fields of appmanifest_<id>.acf used here.
type AppManifest struct {
	Name       string
	InstallDir string
	AppID      int
}

// ReadAppManifest parses the manifest for appID in steamAppsDir.
func ReadAppManifest(steamAppsDir string, appID int) (AppManifest, error) {
	manifestPath := filepath.Join(steamAppsDir, fmt.Sprintf("appmanifest_%d.acf", appID))

	//nolint:gosec // Safe: reads Steam manifest files
	f, err := os.Open(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return AppManifest{}, fmt.Errorf("%w: %s", ErrManifestNotFound, manifestPath)
		}
		return AppManifest{}, fmt.Errorf("failed to open app manifest: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing app manifest")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		return AppManifest{}, fmt.Errorf("failed to parse app manifest %d: %w", appID, err)
	}
	m = lowerKeys(m)

	appState, ok := m["appstate"].(map[string]any)
	if !ok {
		return AppManifest{}, fmt.Errorf("AppState not found in manifest %d", appID)
	}

	name, _ := appState["name"].(string)
	installDir, _ := appState["installdir"].(string)

	if idStr, ok := appState["appid"].(string); ok {
		if id, err := strconv.Atoi(idStr); err == nil && id != appID {
			log.Warn().Int("appID", appID).Int("manifestAppID", id).
				Msg("app manifest reports a different app id")
		}
	}

	return AppManifest{
		AppID:      appID,
		Name:       name,
		InstallDir: installDir,
	}, nil
}

// SteamConfigFromManifest builds a SteamConfig for appID from a steamapps
// directory supplied by the caller. The install path is
// common/<installdir> and the Proton prefix is compatdata/<appID>.
func SteamConfigFromManifest(steamAppsDir string, appID int) (SteamConfig, error) {
	manifest, err := ReadAppManifest(steamAppsDir, appID)
	if err != nil {
		return SteamConfig{}, err
	}

	installPath := ""
	if manifest.InstallDir != "" {
		installPath = filepath.Join(steamAppsDir, "common", manifest.InstallDir)
	}
	prefix := filepath.Join(steamAppsDir, "compatdata", strconv.Itoa(appID))

	log.Debug().
		Int("appID", appID).
		Str("install", installPath).
		Str("prefix", prefix).
		Msg("resolved steam launcher config")

	return NewSteamConfig(appID, installPath, prefix), nil
}

// lowerKeys lowercases keys recursively, VDF keys are case-insensitive.
func lowerKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = lowerKeys(nested)
		}
		result[strings.ToLower(k)] = v
	}
	return result
}
