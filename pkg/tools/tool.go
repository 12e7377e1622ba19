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

// Package tools holds the Tool model: a declarative description of how to
// run an executable, Steam app or Heroic game, the synthesis of that
// description into a shell command line, and its JSON persistence format.
//
// A Tool is a plain value. Nothing in this package mutates a Tool after
// construction, so Tools can be shared freely between goroutines.
package tools

import (
	"github.com/ZaparooProject/zaparoo-tools/pkg/launchers"
)

// Tool describes one launchable tool.
type Tool struct {
	// CommandOverride, when non-empty, replaces every structured field
	// below: the command is this string as written.
	CommandOverride string

	Name     string
	IconPath string

	ExecutablePath   string
	WorkingDirectory string
	// Arguments are appended as written, without quoting.
	Arguments            string
	EnvironmentVariables EnvVars

	// PrefixPath is the Wine prefix for RuntimeWine and the Proton compat
	// data path for Heroic games run through RuntimeProtontricks.
	PrefixPath string

	// ProtontricksArguments are appended as written after --appid, only for
	// non-Heroic Protontricks tools.
	ProtontricksArguments string

	// LauncherIdentifier is the Heroic app name. Unused for Steam.
	LauncherIdentifier string
	// ProtonPath is the Proton directory, only used by Heroic tools.
	ProtonPath string

	Runtime      Runtime
	LauncherType launchers.Type
	SteamAppID   int

	// UseFlatpakRuntime invokes Steam or Protontricks through flatpak run
	// instead of the host binary.
	UseFlatpakRuntime bool
}

// NewCommandTool creates a tool that runs command as written.
func NewCommandTool(name, iconPath, command string) Tool {
	return Tool{
		Name:            name,
		IconPath:        iconPath,
		Runtime:         RuntimeNative,
		CommandOverride: command,
	}
}

// NewNativeTool creates a tool that runs a host executable directly.
func NewNativeTool(
	name, iconPath, executablePath, workingDirectory string,
	env EnvVars,
	arguments string,
) Tool {
	return Tool{
		Name:                 name,
		IconPath:             iconPath,
		Runtime:              RuntimeNative,
		ExecutablePath:       executablePath,
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: env.Clone(),
		Arguments:            arguments,
	}
}

// NewWineTool creates a tool that runs a Windows executable through Wine.
func NewWineTool(
	name, iconPath, executablePath, prefixPath, workingDirectory string,
	env EnvVars,
	arguments string,
) Tool {
	return Tool{
		Name:                 name,
		IconPath:             iconPath,
		Runtime:              RuntimeWine,
		ExecutablePath:       executablePath,
		PrefixPath:           prefixPath,
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: env.Clone(),
		Arguments:            arguments,
	}
}

// NewProtontricksTool creates a tool that runs an executable inside the
// Proton prefix of a Steam app through protontricks-launch.
func NewProtontricksTool(
	name, iconPath, executablePath string,
	useFlatpak bool,
	steamAppID int,
	workingDirectory string,
	env EnvVars,
	arguments, protontricksArguments string,
) Tool {
	return Tool{
		Name:                  name,
		IconPath:              iconPath,
		Runtime:               RuntimeProtontricks,
		LauncherType:          launchers.TypeSteam,
		ExecutablePath:        executablePath,
		UseFlatpakRuntime:     useFlatpak,
		SteamAppID:            steamAppID,
		WorkingDirectory:      workingDirectory,
		EnvironmentVariables:  env.Clone(),
		Arguments:             arguments,
		ProtontricksArguments: protontricksArguments,
	}
}

// NewSteamTool creates a tool that launches a Steam app by id.
func NewSteamTool(name, iconPath string, steamAppID int, useFlatpak bool) Tool {
	return Tool{
		Name:              name,
		IconPath:          iconPath,
		Runtime:           RuntimeSteam,
		SteamAppID:        steamAppID,
		UseFlatpakRuntime: useFlatpak,
	}
}

// NewHeroicTool creates a tool that runs an executable with the Proton build
// and prefix of a Heroic game. protontricksArguments are stored but not
// used when building the command.
func NewHeroicTool(
	name, iconPath, executablePath string,
	game launchers.HeroicConfig,
	workingDirectory string,
	env EnvVars,
	arguments, protontricksArguments string,
) Tool {
	return Tool{
		Name:                  name,
		IconPath:              iconPath,
		Runtime:               RuntimeProtontricks,
		LauncherType:          launchers.TypeHeroic,
		LauncherIdentifier:    game.Identifier(),
		ExecutablePath:        executablePath,
		PrefixPath:            game.WinePrefix(),
		ProtonPath:            game.ProtonPath(),
		WorkingDirectory:      workingDirectory,
		EnvironmentVariables:  env.Clone(),
		Arguments:             arguments,
		ProtontricksArguments: protontricksArguments,
	}
}

// IsManual reports whether the tool runs CommandOverride as written.
func (t Tool) IsManual() bool {
	return t.CommandOverride != ""
}

// IsHeroic reports whether the command is built from the Heroic game's
// Proton setup rather than protontricks-launch.
func (t Tool) IsHeroic() bool {
	return t.LauncherType == launchers.TypeHeroic && t.Runtime == RuntimeProtontricks
}

// Launcher projects the tool's launcher fields onto launchers.Config. The
// tool does not record install paths or Wine versions, those stay empty.
func (t Tool) Launcher() launchers.Config {
	if t.LauncherType == launchers.TypeHeroic {
		return launchers.HeroicConfig{
			AppName: t.LauncherIdentifier,
			Prefix:  t.PrefixPath,
			Proton:  t.ProtonPath,
		}
	}
	return launchers.NewSteamConfig(t.SteamAppID, "", t.PrefixPath)
}
