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

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ZaparooProject/zaparoo-tools/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-tools/pkg/tools"
	"github.com/olekukonko/tablewriter"
)

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// launcherFacts lists a launcher config as label, value pairs.
func launcherFacts(cfg launchers.Config) [][2]string {
	common := func() [][2]string {
		return [][2]string{
			{"Launcher", cfg.Type().String()},
			{"Identifier", cfg.Identifier()},
			{"Install path", orDash(cfg.InstallPath())},
			{"Wine prefix", orDash(cfg.WinePrefix())},
			{"Wine version", orDash(cfg.WineVersion())},
		}
	}

	return launchers.Visit(cfg,
		func(launchers.SteamConfig) [][2]string {
			return common()
		},
		func(c launchers.HeroicConfig) [][2]string {
			return append(common(),
				[2]string{"Proton path", orDash(c.ProtonPath())},
				[2]string{"Flatpak", yesNo(c.IsFlatpak())},
			)
		},
	)
}

func printFacts(w io.Writer, facts [][2]string) {
	width := 0
	for _, f := range facts {
		width = max(width, len(f[0]))
	}
	for _, f := range facts {
		_, _ = fmt.Fprintf(w, "%-*s  %s\n", width+1, f[0]+":", f[1])
	}
}

// launcherSummary is the one-cell description used in tool listings.
func launcherSummary(t tools.Tool) string {
	if t.IsManual() {
		return "manual"
	}
	if t.Runtime != tools.RuntimeProtontricks && t.Runtime != tools.RuntimeSteam {
		return "-"
	}
	return launchers.Visit(t.Launcher(),
		func(c launchers.SteamConfig) string {
			return "steam " + strconv.Itoa(c.AppID)
		},
		func(c launchers.HeroicConfig) string {
			return "heroic " + c.AppName
		},
	)
}
