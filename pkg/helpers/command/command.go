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

// Package command runs synthesized tool command lines. Executor abstracts
// exec.Command so launches can be mocked in tests.
package command

import (
	"context"
	"os"
	"os/exec"
)

// Shell is the interpreter tool command lines are handed to. The lines
// embed quoting, "cd ...;" prefixes and variable assignments, so they must
// go through a shell rather than being split into argv.
const Shell = "sh"

// ShellArgs returns the arguments that run line through Shell.
func ShellArgs(line string) []string {
	return []string{"-c", line}
}

// StartOptions configures how a started process is attached to this one.
type StartOptions struct {
	// Env is appended to the current environment.
	Env []string
	// Detach puts the process in its own process group so terminal
	// signals sent to this program do not reach it, and lets it outlive
	// ctx. Process groups are skipped where unsupported.
	Detach bool
}

type Executor interface {
	// Run executes a command and waits for it to complete.
	// Returns an error if the command fails to start or exits with non-zero status.
	Run(ctx context.Context, name string, args ...string) error

	// Output runs a command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start starts a command without waiting for it to complete (fire-and-forget).
	// Returns an error if the command fails to start.
	Start(ctx context.Context, opts StartOptions, name string, args ...string) error
}

// RealExecutor runs commands on the host.
type RealExecutor struct{}

//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Start(ctx context.Context, opts StartOptions, name string, args ...string) error {
	if opts.Detach {
		// Cancelling ctx would kill the child, a detached tool keeps running.
		ctx = context.WithoutCancel(ctx)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Detach {
		cmd.SysProcAttr = detachAttr()
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap in the background so a long-running tool never becomes a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
