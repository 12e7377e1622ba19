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

// Package flatpak holds the Flatpak app ids and wrapper commands used when
// either this application or a launched runtime is sandboxed.
package flatpak

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Common Flatpak app IDs.
const (
	SteamID        = "com.valvesoftware.Steam"
	HeroicID       = "com.heroicgameslauncher.hgl"
	ProtontricksID = "com.github.Matoking.protontricks"
)

// HostSpawn escapes the sandbox so the command runs on the host.
const HostSpawn = "flatpak-spawn --host"

// InfoFile exists at the root of every running Flatpak sandbox.
const InfoFile = "/.flatpak-info"

// IDEnv is set by Flatpak to the app id inside a sandbox.
const IDEnv = "FLATPAK_ID"

// RunCommand returns the "flatpak run" invocation for appID, with an
// optional --command override.
func RunCommand(appID, command string) string {
	if command == "" {
		return "flatpak run " + appID
	}
	return "flatpak run --command=" + command + " " + appID
}

// AppPath returns the per-user data directory of a Flatpak app.
func AppPath(home, appID string) string {
	return filepath.Join(home, ".var", "app", appID)
}

// InSandbox reports whether the current process runs inside Flatpak.
func InSandbox(fs afero.Fs) bool {
	if os.Getenv(IDEnv) != "" {
		return true
	}
	if _, err := fs.Stat(InfoFile); err != nil {
		return false
	}
	log.Debug().Msg("flatpak info file found, running sandboxed")
	return true
}
