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

package tools

import (
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-tools/pkg/flatpak"
)

const (
	steamBinary        = "steam"
	protontricksLaunch = "protontricks-launch"
	wineBinary         = "wine"

	envCompatDataPath     = "STEAM_COMPAT_DATA_PATH"
	envCompatClientPath   = "STEAM_COMPAT_CLIENT_INSTALL_PATH"
	envWinePrefix         = "WINEPREFIX"
	compatClientInstallTo = "/usr"
)

// Quote wraps s in double quotes unless it already starts and ends with one.
// Quote(Quote(s)) == Quote(s).
func Quote(s string) string {
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s
	}
	return `"` + s + `"`
}

// commandLine collects space-separated command words.
type commandLine struct {
	words     []string
	sandboxed bool
}

func (c *commandLine) add(words ...string) {
	for _, w := range words {
		if w != "" {
			c.words = append(c.words, w)
		}
	}
}

func (c *commandLine) chdir(dir string) {
	if dir == "" {
		return
	}
	if c.sandboxed {
		c.add("--directory=" + Quote(dir))
		return
	}
	c.add("cd " + Quote(dir) + ";")
}

func (c *commandLine) env(vars EnvVars) {
	for _, v := range vars {
		assignment := v.Variable + "=" + Quote(v.Value)
		if c.sandboxed {
			assignment = "--env=" + assignment
		}
		c.add(assignment)
	}
}

func (c *commandLine) String() string {
	return strings.Join(c.words, " ")
}

// BuildCommand synthesizes the shell command line for the tool. sandboxed
// means this application runs inside Flatpak: the command is routed through
// flatpak-spawn, the working directory and environment become its flags.
// The result is meant for a shell, it embeds quoting and "cd ...;" prefixes.
func (t Tool) BuildCommand(sandboxed bool) string {
	if t.CommandOverride != "" {
		if sandboxed {
			return flatpak.HostSpawn + " " + t.CommandOverride
		}
		return t.CommandOverride
	}

	cmd := &commandLine{sandboxed: sandboxed}
	if sandboxed {
		cmd.add(flatpak.HostSpawn)
	}

	switch {
	case t.Runtime == RuntimeSteam:
		t.steamCommand(cmd)
	case t.IsHeroic():
		t.heroicCommand(cmd)
	default:
		t.executableCommand(cmd)
	}

	return cmd.String()
}

func (t Tool) steamCommand(cmd *commandLine) {
	if t.UseFlatpakRuntime {
		cmd.add(flatpak.RunCommand(flatpak.SteamID, ""))
	} else {
		cmd.add(steamBinary)
	}
	cmd.add("-applaunch", strconv.Itoa(t.SteamAppID))
}

func (t Tool) heroicCommand(cmd *commandLine) {
	cmd.chdir(t.WorkingDirectory)
	cmd.env(EnvVars{
		{Variable: envCompatDataPath, Value: t.PrefixPath},
		{Variable: envCompatClientPath, Value: compatClientInstallTo},
	})
	cmd.env(t.EnvironmentVariables)

	proton := t.ProtonPath + "/proton"
	cmd.add(Quote(proton), "run", Quote(t.ExecutablePath))
	cmd.add(t.Arguments)
}

func (t Tool) executableCommand(cmd *commandLine) {
	cmd.chdir(t.WorkingDirectory)
	cmd.env(t.EnvironmentVariables)
	if t.Runtime == RuntimeWine && t.PrefixPath != "" {
		cmd.env(EnvVars{{Variable: envWinePrefix, Value: t.PrefixPath}})
	}

	switch t.Runtime {
	case RuntimeWine:
		cmd.add(wineBinary)
	case RuntimeProtontricks:
		if t.UseFlatpakRuntime {
			cmd.add(flatpak.RunCommand(flatpak.ProtontricksID, protontricksLaunch))
		} else {
			cmd.add(protontricksLaunch)
		}
		cmd.add("--appid", strconv.Itoa(t.SteamAppID))
		cmd.add(t.ProtontricksArguments)
	case RuntimeNative, RuntimeSteam:
	}

	cmd.add(Quote(t.ExecutablePath))
	cmd.add(t.Arguments)
}
