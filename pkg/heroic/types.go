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

	"github.com/ZaparooProject/zaparoo-tools/pkg/launchers"
)

// Store is a distribution back-end managed by Heroic.
type Store string

const (
	StoreEpic   Store = "epic"
	StoreGOG    Store = "gog"
	StoreAmazon Store = "amazon"
)

// Stores lists the back-ends in the order their games are reported.
var Stores = []Store{StoreEpic, StoreGOG, StoreAmazon}

// ManifestPath returns the installed.json path for the store under a Heroic
// config root.
func (s Store) ManifestPath(configRoot string) string {
	var dir string
	switch s {
	case StoreEpic:
		dir = "store"
	case StoreGOG:
		dir = "gog_store"
	case StoreAmazon:
		dir = "amazon_store"
	default:
		dir = string(s) + "_store"
	}
	return filepath.Join(configRoot, dir, "installed.json")
}

// GameInfo is what the detector knows about one installed Heroic game.
type GameInfo struct {
	// AppName is the store-unique id, e.g. "Croc" for an Epic game.
	AppName string
	Title   string
	// Store is the back-end whose manifest listed the game. Empty when the
	// game was looked up directly by app name.
	Store       Store
	InstallPath string
	// WinePrefix contains the pfx subdirectory.
	WinePrefix string
	// WineVersion is free-form, e.g. "GE-Proton9-2".
	WineVersion string
	// ProtonPath is the resolved Proton directory or empty.
	ProtonPath string
}

// LauncherConfig converts the game into the launcher abstraction. flatpak
// reports whether Heroic itself is the Flatpak build.
func (g GameInfo) LauncherConfig(flatpak bool) launchers.HeroicConfig {
	return launchers.HeroicConfig{
		AppName: g.AppName,
		Install: g.InstallPath,
		Prefix:  g.WinePrefix,
		Version: g.WineVersion,
		Proton:  g.ProtonPath,
		Flatpak: flatpak,
	}
}
