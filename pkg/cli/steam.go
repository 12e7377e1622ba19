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
	"path/filepath"
	"strconv"

	"github.com/ZaparooProject/zaparoo-tools/pkg/flatpak"
	"github.com/ZaparooProject/zaparoo-tools/pkg/launchers"
	"github.com/spf13/cobra"
)

// steamAppsDirs are the default library locations under home, native first.
func steamAppsDirs(home string) []string {
	return []string{
		filepath.Join(home, ".local", "share", "Steam", "steamapps"),
		filepath.Join(flatpak.AppPath(home, flatpak.SteamID), ".local", "share", "Steam", "steamapps"),
	}
}

func parseAppID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, wrapUsageError(fmt.Errorf("invalid steam app id: %q", s))
	}
	return id, nil
}

func newSteamCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steam",
		Short: "Inspect games installed through Steam",
	}

	var library string
	show := &cobra.Command{
		Use:   "show <appID>",
		Short: "Show the install path and Proton prefix of a Steam app",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseAppID(args[0])
			if err != nil {
				return err
			}

			dirs := steamAppsDirs(a.cfg.Home())
			if library != "" {
				dirs = []string{library}
			}

			var lastErr error
			for _, dir := range dirs {
				cfg, err := launchers.SteamConfigFromManifest(dir, appID)
				if err != nil {
					lastErr = err
					continue
				}
				printFacts(cmd.OutOrStdout(), launcherFacts(cfg))
				return nil
			}
			return lastErr
		},
	}
	show.Flags().StringVar(&library, "library", "", "steamapps directory to read the manifest from")

	cmd.AddCommand(show)
	return cmd
}
