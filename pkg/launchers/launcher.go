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

// Package launchers models the third-party launcher that owns a game: where
// the game is installed and how its Windows environment is set up.
//
// Config is sealed to the two variants in this package. Code that needs to
// branch on the variant must go through Visit, so adding a launcher changes
// Visit's signature and every consumer fails to compile until updated.
package launchers

import (
	"fmt"
	"strconv"
)

// Type identifies the launcher that owns a game. The integer values are
// persisted and must keep their declaration order.
type Type int

const (
	TypeSteam Type = iota
	TypeHeroic
)

// SteamWineVersion is the version string reported for Steam games, whose
// Proton build is managed by Steam itself.
const SteamWineVersion = "steam"

func (t Type) String() string {
	switch t {
	case TypeSteam:
		return "steam"
	case TypeHeroic:
		return "heroic"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared launcher types.
func (t Type) Valid() bool {
	return t == TypeSteam || t == TypeHeroic
}

// ParseType maps a launcher name to its Type. Anything other than "heroic"
// is treated as Steam, matching how older tool files were written.
func ParseType(s string) Type {
	if s == "heroic" {
		return TypeHeroic
	}
	return TypeSteam
}

// Config is a read-only view of a game's launcher facts.
type Config interface {
	// Type returns the launcher variant.
	Type() Type
	// Identifier is the numeric app id for Steam and the app name for Heroic.
	Identifier() string
	// InstallPath is the game's installation directory.
	InstallPath() string
	// WinePrefix is the Proton prefix for Steam and Heroic's winePrefix
	// (the directory containing pfx) for Heroic.
	WinePrefix() string
	// WineVersion is the Wine/Proton build name, e.g. "GE-Proton9-2".
	WineVersion() string
	// ProtonPath is the Proton installation directory, if known.
	ProtonPath() string
	// IsFlatpak reports whether the launcher itself runs under Flatpak.
	IsFlatpak() bool

	sealed()
}

// SteamConfig describes a game owned by Steam.
type SteamConfig struct {
	Install string
	Prefix  string
	AppID   int
}

// NewSteamConfig builds a SteamConfig. The install path and Proton prefix
// come from the caller's own Steam library discovery.
func NewSteamConfig(appID int, installPath, protonPrefix string) SteamConfig {
	return SteamConfig{
		AppID:   appID,
		Install: installPath,
		Prefix:  protonPrefix,
	}
}

func (SteamConfig) Type() Type { return TypeSteam }

func (c SteamConfig) Identifier() string { return strconv.Itoa(c.AppID) }

func (c SteamConfig) InstallPath() string { return c.Install }

func (c SteamConfig) WinePrefix() string { return c.Prefix }

func (SteamConfig) WineVersion() string { return SteamWineVersion }

// ProtonPath is always empty, Steam resolves Proton internally.
func (SteamConfig) ProtonPath() string { return "" }

// IsFlatpak is always false. It describes the game's launcher, not whether
// this application is sandboxed.
func (SteamConfig) IsFlatpak() bool { return false }

func (SteamConfig) sealed() {}

// HeroicConfig describes a game owned by Heroic Games Launcher. All values
// are returned exactly as given, usually straight from the Heroic detector.
type HeroicConfig struct {
	AppName string
	Install string
	Prefix  string
	Version string
	Proton  string
	Flatpak bool
}

func (HeroicConfig) Type() Type { return TypeHeroic }

func (c HeroicConfig) Identifier() string { return c.AppName }

func (c HeroicConfig) InstallPath() string { return c.Install }

func (c HeroicConfig) WinePrefix() string { return c.Prefix }

func (c HeroicConfig) WineVersion() string { return c.Version }

func (c HeroicConfig) ProtonPath() string { return c.Proton }

func (c HeroicConfig) IsFlatpak() bool { return c.Flatpak }

func (HeroicConfig) sealed() {}

// Visit dispatches on the concrete variant of cfg. A nil cfg returns the
// zero value of T.
func Visit[T any](cfg Config, onSteam func(SteamConfig) T, onHeroic func(HeroicConfig) T) T {
	switch c := cfg.(type) {
	case SteamConfig:
		return onSteam(c)
	case *SteamConfig:
		return onSteam(*c)
	case HeroicConfig:
		return onHeroic(c)
	case *HeroicConfig:
		return onHeroic(*c)
	default:
		var zero T
		return zero
	}
}
