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

	"github.com/ZaparooProject/zaparoo-tools/pkg/heroic"
	"github.com/spf13/cobra"
)

func newHeroicCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heroic",
		Short: "Inspect games installed through Heroic Games Launcher",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show where Heroic's configuration was found",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				d := a.detector()
				root, ok := d.ConfigRoot()
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Heroic is not installed")
					return nil
				}
				toolsRoot, _ := d.ToolsRoot()
				printFacts(cmd.OutOrStdout(), [][2]string{
					{"Config root", root},
					{"Tools root", orDash(toolsRoot)},
					{"Flatpak", yesNo(d.IsFlatpak())},
				})
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List installed Heroic games",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				games := a.detector().DetectGames()
				if len(games) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No Heroic games found")
					return nil
				}
				rows := make([][]string, 0, len(games))
				for _, g := range games {
					rows = append(rows, []string{
						string(g.Store), g.AppName, orDash(g.Title), orDash(g.WineVersion), orDash(g.ProtonPath),
					})
				}
				renderTable(cmd.OutOrStdout(), []string{"Store", "App name", "Title", "Wine version", "Proton"}, rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <appName>",
			Short: "Show the Wine setup of one Heroic game",
			Args:  usageArgs(cobra.ExactArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				game, err := a.heroicGame(args[0])
				if err != nil {
					return err
				}
				d := a.detector()
				printFacts(cmd.OutOrStdout(), launcherFacts(game.LauncherConfig(d.IsFlatpak())))
				return nil
			},
		},
	)

	return cmd
}

func (a *app) heroicGame(appName string) (heroic.GameInfo, error) {
	d := a.detector()
	if !d.IsInstalled() {
		return heroic.GameInfo{}, fmt.Errorf("heroic is not installed under %s", d.Home)
	}
	game, ok := d.GetGameConfig(appName)
	if !ok {
		return heroic.GameInfo{}, fmt.Errorf("no heroic game config for %q", appName)
	}
	return game, nil
}
