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

package heroic

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// FindProtonPath resolves the Proton directory for a Wine version inside
// toolsRoot. A subdirectory named exactly version wins. Otherwise the first
// subdirectory, in name order, whose name contains version is returned.
// Scan errors are logged and treated as no match.
func FindProtonPath(fs afero.Fs, version, toolsRoot string) (string, bool) {
	if toolsRoot == "" || version == "" {
		return "", false
	}
	if ok, _ := afero.DirExists(fs, toolsRoot); !ok {
		return "", false
	}

	exact := filepath.Join(toolsRoot, version)
	if ok, _ := afero.DirExists(fs, exact); ok {
		return exact, true
	}

	entries, err := afero.ReadDir(fs, toolsRoot)
	if err != nil {
		log.Debug().Err(err).Str("dir", toolsRoot).Msg("error scanning proton directory")
		return "", false
	}

	for _, entry := range entries {
		if !strings.Contains(entry.Name(), version) {
			continue
		}
		path := filepath.Join(toolsRoot, entry.Name())
		// ReadDir does not follow symlinks, Stat does.
		if entry.IsDir() {
			return path, true
		}
		if ok, _ := afero.DirExists(fs, path); ok {
			return path, true
		}
	}

	log.Debug().Str("version", version).Msg("no matching proton installation found")
	return "", false
}
