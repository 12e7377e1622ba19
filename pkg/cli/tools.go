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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-tools/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-tools/pkg/tools"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) findTool(name string) (tools.Tool, error) {
	result, err := a.store().Load()
	if err != nil {
		return tools.Tool{}, err
	}
	tool, ok := tools.Find(result.Tools, name)
	if !ok {
		return tools.Tool{}, fmt.Errorf("%w: %s", tools.ErrToolNotFound, name)
	}
	return tool, nil
}

// parseEnv turns VAR=value flags into EnvVars, keeping flag order.
func parseEnv(pairs []string) (tools.EnvVars, error) {
	var env tools.EnvVars
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, wrapUsageError(fmt.Errorf("invalid environment variable %q, want VAR=value", p))
		}
		env = env.Set(k, v)
	}
	return env, nil
}

type toolFlags struct {
	name    string
	icon    string
	exe     string
	workdir string
	args    []string
	env     []string
}

func (f *toolFlags) register(cmd *cobra.Command, withExe bool) {
	cmd.Flags().StringVar(&f.name, "name", "", "Tool name")
	cmd.Flags().StringVar(&f.icon, "icon", "", "Icon path")
	_ = cmd.MarkFlagRequired("name")
	if !withExe {
		return
	}
	cmd.Flags().StringVar(&f.exe, "exe", "", "Executable path")
	cmd.Flags().StringVar(&f.workdir, "workdir", "", "Working directory")
	cmd.Flags().StringArrayVar(&f.args, "arg", nil, "Argument passed to the executable (repeatable)")
	cmd.Flags().StringArrayVar(&f.env, "env", nil, "Environment variable as VAR=value (repeatable)")
	_ = cmd.MarkFlagRequired("exe")
}

func newToolsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Manage and launch saved tools",
	}

	cmd.AddCommand(
		newToolsListCommand(a),
		&cobra.Command{
			Use:   "command <name>",
			Short: "Print the command line a tool runs",
			Args:  usageArgs(cobra.ExactArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				tool, err := a.findTool(args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), tool.BuildCommand(a.sandboxed()))
				return nil
			},
		},
		newToolsShowCommand(a),
		&cobra.Command{
			Use:   "launch <name>",
			Short: "Start a tool without waiting for it to exit",
			Args:  usageArgs(cobra.ExactArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				tool, err := a.findTool(args[0])
				if err != nil {
					return err
				}
				line := tool.BuildCommand(a.sandboxed())
				log.Info().Str("tool", tool.Name).Str("command", line).Msg("launching tool")

				err = a.deps.Executor.Start(cmd.Context(), command.StartOptions{Detach: true},
					command.Shell, command.ShellArgs(line)...)
				if err != nil {
					return fmt.Errorf("failed to launch %s: %w", tool.Name, err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a saved tool",
			Args:  usageArgs(cobra.ExactArgs(1)),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.store().Remove(args[0])
			},
		},
		newAddCommandCommand(a),
		newAddNativeCommand(a),
		newAddWineCommand(a),
		newAddProtontricksCommand(a),
		newAddSteamCommand(a),
		newAddHeroicCommand(a),
	)

	return cmd
}

func newToolsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved tools",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.store().Load()
			if err != nil {
				return err
			}
			for _, s := range result.Skipped {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "skipped entry %d: %v\n", s.Index, s.Err)
			}
			if len(result.Tools) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tools saved")
				return nil
			}

			rows := make([][]string, 0, len(result.Tools))
			for _, t := range result.Tools {
				rows = append(rows, []string{t.Name, t.Runtime.String(), launcherSummary(t)})
			}
			renderTable(cmd.OutOrStdout(), []string{"Name", "Runtime", "Launcher"}, rows)
			return nil
		},
	}
}

// argumentWords renders a raw arguments string as the words a shell
// would split it into.
func argumentWords(raw string) string {
	if raw == "" {
		return "-"
	}
	words, err := tools.SplitArguments(raw)
	if err != nil {
		log.Debug().Err(err).Str("arguments", raw).Msg("arguments do not split into words")
		return raw + " (unbalanced quotes)"
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strconv.Quote(w)
	}
	return strings.Join(quoted, " ")
}

func envSummary(env tools.EnvVars) string {
	if len(env) == 0 {
		return "-"
	}
	pairs := make([]string, len(env))
	for i, v := range env {
		pairs[i] = v.Variable + "=" + v.Value
	}
	return strings.Join(pairs, ", ")
}

func newToolsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved tool's settings and command line",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := a.findTool(args[0])
			if err != nil {
				return err
			}

			facts := [][2]string{
				{"Name", tool.Name},
				{"Runtime", tool.Runtime.String()},
			}
			if tool.IsManual() {
				facts = append(facts, [2]string{"Command", tool.CommandOverride})
			} else {
				facts = append(facts,
					[2]string{"Executable", orDash(tool.ExecutablePath)},
					[2]string{"Working dir", orDash(tool.WorkingDirectory)},
					[2]string{"Arguments", argumentWords(tool.Arguments)},
					[2]string{"Environment", envSummary(tool.EnvironmentVariables)},
				)
				switch tool.Runtime {
				case tools.RuntimeWine:
					facts = append(facts, [2]string{"Wine prefix", orDash(tool.PrefixPath)})
				case tools.RuntimeProtontricks, tools.RuntimeSteam:
					if tool.Runtime == tools.RuntimeProtontricks && !tool.IsHeroic() {
						facts = append(facts, [2]string{
							"Protontricks args", argumentWords(tool.ProtontricksArguments),
						})
					}
					facts = append(facts, launcherFacts(tool.Launcher())...)
				case tools.RuntimeNative:
				}
			}
			facts = append(facts, [2]string{"Command line", tool.BuildCommand(a.sandboxed())})

			printFacts(cmd.OutOrStdout(), facts)
			return nil
		},
	}
}

func (a *app) addTool(cmd *cobra.Command, tool tools.Tool) error {
	if err := a.store().Add(tool); err != nil {
		if errors.Is(err, tools.ErrDuplicateName) {
			return wrapUsageError(err)
		}
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", tool.Name)
	return nil
}

func newAddCommandCommand(a *app) *cobra.Command {
	var f toolFlags
	var line string
	cmd := &cobra.Command{
		Use:   "add-command",
		Short: "Save a tool that runs a command line as written",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.addTool(cmd, tools.NewCommandTool(f.name, f.icon, line))
		},
	}
	f.register(cmd, false)
	cmd.Flags().StringVar(&line, "command", "", "Command line to run")
	_ = cmd.MarkFlagRequired("command")
	return cmd
}

func newAddNativeCommand(a *app) *cobra.Command {
	var f toolFlags
	cmd := &cobra.Command{
		Use:   "add-native",
		Short: "Save a tool that runs a host executable",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := parseEnv(f.env)
			if err != nil {
				return err
			}
			return a.addTool(cmd, tools.NewNativeTool(
				f.name, f.icon, f.exe, f.workdir, env, tools.JoinArguments(f.args...)))
		},
	}
	f.register(cmd, true)
	return cmd
}

func newAddWineCommand(a *app) *cobra.Command {
	var f toolFlags
	var prefix string
	cmd := &cobra.Command{
		Use:   "add-wine",
		Short: "Save a tool that runs a Windows executable through Wine",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := parseEnv(f.env)
			if err != nil {
				return err
			}
			return a.addTool(cmd, tools.NewWineTool(
				f.name, f.icon, f.exe, prefix, f.workdir, env, tools.JoinArguments(f.args...)))
		},
	}
	f.register(cmd, true)
	cmd.Flags().StringVar(&prefix, "prefix", "", "Wine prefix")
	return cmd
}

func newAddProtontricksCommand(a *app) *cobra.Command {
	var f toolFlags
	var useFlatpak bool
	var ptArgs []string
	cmd := &cobra.Command{
		Use:   "add-protontricks <appID>",
		Short: "Save a tool that runs inside a Steam game's Proton prefix",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			env, err := parseEnv(f.env)
			if err != nil {
				return err
			}
			return a.addTool(cmd, tools.NewProtontricksTool(
				f.name, f.icon, f.exe, useFlatpak, appID, f.workdir, env,
				tools.JoinArguments(f.args...), tools.JoinArguments(ptArgs...)))
		},
	}
	f.register(cmd, true)
	cmd.Flags().BoolVar(&useFlatpak, "flatpak-runtime", false, "Use the Flatpak build of Protontricks")
	cmd.Flags().StringArrayVar(&ptArgs, "protontricks-arg", nil, "Argument passed to protontricks-launch (repeatable)")
	return cmd
}

func newAddSteamCommand(a *app) *cobra.Command {
	var f toolFlags
	var useFlatpak bool
	cmd := &cobra.Command{
		Use:   "add-steam <appID>",
		Short: "Save a tool that launches a Steam app",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			return a.addTool(cmd, tools.NewSteamTool(f.name, f.icon, appID, useFlatpak))
		},
	}
	f.register(cmd, false)
	cmd.Flags().BoolVar(&useFlatpak, "flatpak-runtime", false, "Use the Flatpak build of Steam")
	return cmd
}

func newAddHeroicCommand(a *app) *cobra.Command {
	var f toolFlags
	cmd := &cobra.Command{
		Use:   "add-heroic <appName>",
		Short: "Save a tool that runs with a Heroic game's Proton build and prefix",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := parseEnv(f.env)
			if err != nil {
				return err
			}
			game, err := a.heroicGame(args[0])
			if err != nil {
				return err
			}
			if game.ProtonPath == "" {
				log.Warn().Str("appName", game.AppName).Str("wineVersion", game.WineVersion).
					Msg("no proton build found for game")
			}
			launcher := game.LauncherConfig(a.detector().IsFlatpak())
			return a.addTool(cmd, tools.NewHeroicTool(
				f.name, f.icon, f.exe, launcher, f.workdir, env,
				tools.JoinArguments(f.args...), ""))
		},
	}
	f.register(cmd, true)
	return cmd
}
