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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigAt_WritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", CfgFile)

	cfg, err := NewConfigAt(path, BaseDefaults)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, SandboxAuto, cfg.SandboxMode())
	assert.False(t, cfg.DebugLogging())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "config_schema = 1")
}

func TestLoad_FileValuesOverDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), CfgFile)
	content := `config_schema = 1
debug_logging = true

[paths]
home = '/home/deck'
tools_file = '/data/tools.json'

[sandbox]
mode = 'never'
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewConfigAt(path, BaseDefaults)
	require.NoError(t, err)

	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, "/home/deck", cfg.Home())
	assert.Equal(t, "/data/tools.json", cfg.ToolsFile())
	assert.Equal(t, filepath.Join(DefaultDataDir(), LogsDir), cfg.LogDir())
	assert.Equal(t, SandboxNever, cfg.SandboxMode())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "schema_mismatch", content: "config_schema = 2\n"},
		{name: "invalid_toml", content: "config_schema = \n"},
		{name: "invalid_sandbox_mode", content: "config_schema = 1\n[sandbox]\nmode = 'sometimes'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), CfgFile)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := NewConfigAt(path, BaseDefaults)
			require.Error(t, err)
		})
	}

	t.Run("path_not_set", func(t *testing.T) {
		t.Parallel()
		cfg := &Instance{}
		require.Error(t, cfg.Load())
		require.Error(t, cfg.Save())
	})
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), CfgFile)
	cfg, err := NewConfigAt(path, BaseDefaults)
	require.NoError(t, err)

	cfg.SetHome("/home/u")
	cfg.SetToolsFile("/t/tools.json")
	require.NoError(t, cfg.SetSandboxMode(SandboxAlways))
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfigAt(path, BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, "/home/u", reloaded.Home())
	assert.Equal(t, "/t/tools.json", reloaded.ToolsFile())
	assert.Equal(t, SandboxAlways, reloaded.SandboxMode())
}

func TestSandboxed(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	fs := afero.NewMemMapFs()

	require.NoError(t, cfg.SetSandboxMode(SandboxAlways))
	assert.True(t, cfg.Sandboxed(fs))

	require.NoError(t, cfg.SetSandboxMode(SandboxNever))
	require.NoError(t, afero.WriteFile(fs, "/.flatpak-info", []byte("[Application]"), 0o600))
	assert.False(t, cfg.Sandboxed(fs))

	require.Error(t, cfg.SetSandboxMode("sometimes"))
	assert.Equal(t, SandboxNever, cfg.SandboxMode())
}

func TestSandboxed_AutoDetectsInfoFile(t *testing.T) {
	if os.Getenv("FLATPAK_ID") != "" {
		t.Skip("running inside flatpak")
	}
	t.Parallel()

	cfg := &Instance{}
	fs := afero.NewMemMapFs()
	assert.False(t, cfg.Sandboxed(fs))

	require.NoError(t, afero.WriteFile(fs, "/.flatpak-info", []byte("[Application]"), 0o600))
	assert.True(t, cfg.Sandboxed(fs))
}
