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
	"encoding/json"
	"testing"

	"github.com/ZaparooProject/zaparoo-tools/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-tools/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const currentDoc = `{
	"name": "Trainer",
	"icon_path": "/icons/t.png",
	"executable_path": "/tools/trainer.exe",
	"runtime": 2,
	"use_flatpak_runtime": true,
	"prefix_path": "",
	"steam_app_id": 489830,
	"working_directory": "/tools",
	"environment_variables": [
		{"variable": "B", "value": "2"},
		{"variable": "A", "value": "1"}
	],
	"arguments": "-x",
	"protontricks_arguments": "--no-bwrap",
	"command": "",
	"launcher_type": 0,
	"launcher_identifier": "",
	"proton_path": ""
}`

func TestDetectSchema(t *testing.T) {
	t.Parallel()

	schema, err := DetectSchema([]byte(currentDoc))
	require.NoError(t, err)
	assert.Equal(t, SchemaCurrent, schema)

	schema, err = DetectSchema([]byte(`{"name": "Old", "icon_path": "", "command": "ls"}`))
	require.NoError(t, err)
	assert.Equal(t, SchemaLegacy, schema)

	_, err = DetectSchema([]byte(`[1, 2]`))
	require.ErrorIs(t, err, ErrInvalidDocument)

	_, err = DetectSchema([]byte(`null`))
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestFromDocument_Current(t *testing.T) {
	t.Parallel()

	tool, err := FromDocument([]byte(currentDoc))
	require.NoError(t, err)

	assert.Equal(t, "Trainer", tool.Name)
	assert.Equal(t, "/icons/t.png", tool.IconPath)
	assert.Equal(t, RuntimeProtontricks, tool.Runtime)
	assert.True(t, tool.UseFlatpakRuntime)
	assert.Equal(t, 489830, tool.SteamAppID)
	assert.Equal(t, "/tools", tool.WorkingDirectory)
	assert.Equal(t, Env("B", "2", "A", "1"), tool.EnvironmentVariables)
	assert.Equal(t, "-x", tool.Arguments)
	assert.Equal(t, "--no-bwrap", tool.ProtontricksArguments)
	assert.Equal(t, launchers.TypeSteam, tool.LauncherType)
	assert.False(t, tool.IsManual())
}

func TestFromDocument_CurrentFailures(t *testing.T) {
	t.Parallel()

	mutate := func(t *testing.T, key string, value any) []byte {
		t.Helper()
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(currentDoc), &doc))
		if value == nil {
			delete(doc, key)
		} else {
			doc[key] = value
		}
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		value any
		name  string
		key   string
	}{
		{name: "missing_name", key: "name"},
		{name: "missing_executable_path", key: "executable_path"},
		{name: "missing_steam_app_id", key: "steam_app_id"},
		{name: "missing_runtime", key: "runtime"},
		{name: "missing_command", key: "command"},
		{name: "runtime_out_of_range", key: "runtime", value: 9},
		{name: "runtime_wrong_type", key: "runtime", value: true},
		{name: "steam_app_id_string", key: "steam_app_id", value: "489830"},
		{name: "flatpak_wrong_type", key: "use_flatpak_runtime", value: "yes"},
		{name: "launcher_type_out_of_range", key: "launcher_type", value: 5},
		{name: "env_not_array", key: "environment_variables", value: map[string]any{"A": "1"}},
		{name: "env_entry_without_variable", key: "environment_variables",
			value: []any{map[string]any{"value": "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := FromDocument(mutate(t, tt.key, tt.value))
			require.ErrorIs(t, err, ErrInvalidDocument)
		})
	}

	t.Run("reports_field_errors", func(t *testing.T) {
		t.Parallel()
		_, err := FromDocument(mutate(t, "icon_path", nil))

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "icon_path", verr.Fields[0].Field)
		assert.Equal(t, "required", verr.Fields[0].Tag)
	})

	t.Run("environment_variables_optional", func(t *testing.T) {
		t.Parallel()
		tool, err := FromDocument(mutate(t, "environment_variables", nil))
		require.NoError(t, err)
		assert.Empty(t, tool.EnvironmentVariables)
	})

	t.Run("runtime_by_name", func(t *testing.T) {
		t.Parallel()
		tool, err := FromDocument(mutate(t, "runtime", "wine"))
		require.NoError(t, err)
		assert.Equal(t, RuntimeWine, tool.Runtime)
	})
}

func TestFromDocument_Legacy(t *testing.T) {
	t.Parallel()

	t.Run("defaults_to_native", func(t *testing.T) {
		t.Parallel()
		tool, err := FromDocument([]byte(`{"name": "Old", "icon_path": "/i.png", "command": "ls -la"}`))
		require.NoError(t, err)

		assert.Equal(t, RuntimeNative, tool.Runtime)
		assert.Equal(t, "Old", tool.Name)
		assert.Equal(t, "/i.png", tool.IconPath)
		assert.Equal(t, "ls -la", tool.CommandOverride)
		assert.Equal(t, launchers.TypeSteam, tool.LauncherType)
	})

	t.Run("missing_guaranteed_keys_are_empty", func(t *testing.T) {
		t.Parallel()
		tool, err := FromDocument([]byte(`{}`))
		require.NoError(t, err)
		assert.Equal(t, Tool{}, tool)
	})

	tests := []struct {
		name    string
		runtime string
		want    Runtime
	}{
		{name: "runtime_string", runtime: `"protontricks"`, want: RuntimeProtontricks},
		{name: "runtime_int", runtime: `1`, want: RuntimeWine},
		{name: "runtime_unknown_string", runtime: `"dosbox"`, want: RuntimeNative},
		{name: "runtime_unknown_int", runtime: `42`, want: RuntimeNative},
		{name: "runtime_null", runtime: `null`, want: RuntimeNative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tool, err := FromDocument([]byte(`{"name": "x", "runtime": ` + tt.runtime + `}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tool.Runtime)
		})
	}

	t.Run("optional_fields", func(t *testing.T) {
		t.Parallel()
		tool, err := FromDocument([]byte(`{
			"name": "x",
			"executable_path": "/a.exe",
			"working_directory": "/w",
			"arguments": "-a",
			"protontricks_arguments": "-p",
			"proton_path": "/proton"
		}`))
		require.NoError(t, err)

		assert.Equal(t, "/a.exe", tool.ExecutablePath)
		assert.Equal(t, "/w", tool.WorkingDirectory)
		assert.Equal(t, "-a", tool.Arguments)
		assert.Equal(t, "-p", tool.ProtontricksArguments)
		assert.Equal(t, "/proton", tool.ProtonPath)
	})

	t.Run("invalid_launcher_type_is_steam", func(t *testing.T) {
		t.Parallel()
		tool, err := FromDocument([]byte(`{"name": "x", "launcher_type": 7}`))
		require.NoError(t, err)
		assert.Equal(t, launchers.TypeSteam, tool.LauncherType)
	})

	t.Run("wrong_type_fails", func(t *testing.T) {
		t.Parallel()
		_, err := FromDocument([]byte(`{"name": 5}`))
		require.ErrorIs(t, err, ErrInvalidDocument)
	})
}

func TestFromDocument_LauncherPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       string
		wantIdent string
		wantType  launchers.Type
	}{
		{
			name:      "string_launcher",
			doc:       `{"launcher": "heroic", "appName": "Croc"}`,
			wantType:  launchers.TypeHeroic,
			wantIdent: "Croc",
		},
		{
			name:      "typed_keys_win",
			doc:       `{"launcher": "heroic", "launcher_type": 0, "appName": "Croc", "launcher_identifier": "Other"}`,
			wantType:  launchers.TypeSteam,
			wantIdent: "Other",
		},
		{
			name:      "unknown_launcher_name_is_steam",
			doc:       `{"launcher": "lutris"}`,
			wantType:  launchers.TypeSteam,
			wantIdent: "",
		},
	}

	for _, tt := range tests {
		t.Run("legacy_"+tt.name, func(t *testing.T) {
			t.Parallel()
			tool, err := FromDocument([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, tool.LauncherType)
			assert.Equal(t, tt.wantIdent, tool.LauncherIdentifier)
		})
	}

	t.Run("current_typed_keys_win", func(t *testing.T) {
		t.Parallel()
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(currentDoc), &doc))
		doc["launcher"] = "heroic"
		doc["appName"] = "Croc"
		doc["launcher_identifier"] = "Other"
		data, err := json.Marshal(doc)
		require.NoError(t, err)

		tool, err := FromDocument(data)
		require.NoError(t, err)
		assert.Equal(t, launchers.TypeSteam, tool.LauncherType)
		assert.Equal(t, "Other", tool.LauncherIdentifier)
	})
}

func TestToDocument(t *testing.T) {
	t.Parallel()

	t.Run("empty_env_is_array", func(t *testing.T) {
		t.Parallel()
		data, err := json.Marshal(NewSteamTool("Skyrim", "", 489830, false))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.JSONEq(t, `[]`, string(raw["environment_variables"]))
		assert.JSONEq(t, `3`, string(raw["runtime"]))
		assert.JSONEq(t, `false`, string(raw["use_flatpak_runtime"]))
	})

	t.Run("integer_codes", func(t *testing.T) {
		t.Parallel()
		game := launchers.HeroicConfig{AppName: "Croc", Prefix: "/pfx", Proton: "/proton"}
		doc := NewHeroicTool("Mod", "", "/mod.exe", game, "", Env("A", "1"), "", "").ToDocument()

		assert.Equal(t, RuntimeProtontricks, doc.Runtime)
		assert.Equal(t, launchers.TypeHeroic, doc.LauncherType)
		assert.Equal(t, "Croc", doc.LauncherIdentifier)
		assert.Equal(t, "/pfx", doc.PrefixPath)
		assert.Equal(t, "/proton", doc.ProtonPath)
		assert.Equal(t, []EnvVar{{Variable: "A", Value: "1"}}, doc.EnvironmentVariables)
	})
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		tool := drawTool(t)
		tool.CommandOverride = rapid.String().Draw(t, "override")

		data, err := json.Marshal(tool)
		require.NoError(t, err)

		got, err := FromDocument(data)
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	})
}

func TestTool_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var list []Tool
	err := json.Unmarshal([]byte(`[`+currentDoc+`, {"name": "Old", "command": "ls"}]`), &list)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Trainer", list[0].Name)
	assert.Equal(t, "ls", list[1].CommandOverride)

	err = json.Unmarshal([]byte(`[{"name": "x", "use_flatpak_runtime": false}]`), &list)
	require.ErrorIs(t, err, ErrInvalidDocument)
}
