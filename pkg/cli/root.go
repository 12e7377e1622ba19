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

// Package cli is the zaparoo-tools command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaparooProject/zaparoo-tools/pkg/config"
	"github.com/ZaparooProject/zaparoo-tools/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-tools/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-tools/pkg/heroic"
	"github.com/ZaparooProject/zaparoo-tools/pkg/tools"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Deps are the collaborators commands reach the outside world through.
type Deps struct {
	Fs          afero.Fs
	Executor    command.Executor
	InitLogging func(logDir string, debug bool, writers ...io.Writer) error
}

// DefaultDeps uses the OS filesystem, real processes and file logging.
func DefaultDeps() Deps {
	return Deps{
		Fs:          afero.NewOsFs(),
		Executor:    &command.RealExecutor{},
		InitLogging: helpers.InitLogging,
	}
}

// app is the state shared by every command after the root pre-run.
type app struct {
	deps Deps
	cfg  *config.Instance

	configPath string
	home       string
	sandbox    string
	verbose    bool
}

func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Instance
		err error
	)
	if a.configPath != "" {
		cfg, err = config.NewConfigAt(a.configPath, config.BaseDefaults)
	} else {
		cfg, err = config.NewConfig(config.DefaultConfigDir(), config.BaseDefaults)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if a.home != "" {
		cfg.SetHome(a.home)
	}
	if cmd.Flags().Changed("sandbox") {
		if err := cfg.SetSandboxMode(a.sandbox); err != nil {
			return wrapUsageError(err)
		}
	}

	var writers []io.Writer
	if a.verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
	}
	if err := a.deps.InitLogging(cfg.LogDir(), a.verbose || cfg.DebugLogging(), writers...); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}

	log.Debug().
		Str("config", cfg.Path()).
		Str("home", cfg.Home()).
		Str("sandbox", cfg.SandboxMode()).
		Msg("config loaded")

	a.cfg = cfg
	return nil
}

func (a *app) detector() *heroic.Detector {
	return &heroic.Detector{Fs: a.deps.Fs, Home: a.cfg.Home()}
}

func (a *app) store() *tools.Store {
	return tools.NewStore(a.cfg.ToolsFile())
}

func (a *app) sandboxed() bool {
	return a.cfg.Sandboxed(a.deps.Fs)
}

// NewRootCommand builds the command tree around deps.
func NewRootCommand(deps Deps) *cobra.Command {
	a := &app{deps: deps}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Build and launch Wine, Proton and Steam tools",
		Long:          "Manage a list of tools that run executables natively, through Wine, inside a Steam game's Proton prefix or with a Heroic game's Proton build.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return wrapUsageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file path (also reads "+config.CfgEnv+")")
	flags.StringVar(&a.home, "home", "", "Home directory launchers are looked up under")
	flags.StringVar(&a.sandbox, "sandbox", config.SandboxAuto, "Flatpak host escape: auto, always or never")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging to stderr")

	root.AddCommand(newHeroicCommand(a), newSteamCommand(a), newToolsCommand(a))
	return root
}

// Execute runs the command tree with the default dependencies. Usage
// errors print the failing command's usage before returning.
func Execute(ctx context.Context) error {
	root := NewRootCommand(DefaultDeps())
	err := root.ExecuteContext(ctx)
	if err != nil && isUsageError(err) {
		if cmd, _, findErr := root.Find(os.Args[1:]); findErr == nil && cmd != nil {
			_ = cmd.Usage()
		} else {
			_ = root.Usage()
		}
	}
	//nolint:wrapcheck // errors are already wrapped by the commands
	return err
}

type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func wrapUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if validate == nil {
			return nil
		}
		if err := validate(cmd, args); err != nil {
			return wrapUsageError(err)
		}
		return nil
	}
}

func isUsageError(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}

	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command ")
}
