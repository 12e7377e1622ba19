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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "tools.json"))

	result, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, result.Tools)
	assert.Empty(t, result.Tools)
	assert.Empty(t, result.Skipped)
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tools.json")
	store := NewStore(path)

	saved := []Tool{
		NewSteamTool("Skyrim", "/icons/s.png", 489830, true),
		NewWineTool("Setup", "", "/games/setup.exe", "/pfx", "/games", Env("A", "1", "B", "2"), "-q"),
		NewCommandTool("Shell", "", "echo hi"),
	}
	require.NoError(t, store.Save(saved))

	result, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, result.Tools)
	assert.Empty(t, result.Skipped)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(data, &docs))
	require.Len(t, docs, 3)
	assert.Contains(t, docs[0], "use_flatpak_runtime")
}

func TestStore_LoadSkipsInvalidEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tools.json")
	content := `[
		{"name": "Old", "icon_path": "", "command": "ls"},
		{"name": "Broken", "use_flatpak_runtime": false},
		"not an object"
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	result, err := NewStore(path).Load()
	require.NoError(t, err)

	require.Len(t, result.Tools, 1)
	assert.Equal(t, "Old", result.Tools[0].Name)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 1, result.Skipped[0].Index)
	assert.ErrorIs(t, result.Skipped[0].Err, ErrInvalidDocument)
	assert.Equal(t, 2, result.Skipped[1].Index)
}

func TestStore_LoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tools.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "not a list"}`), 0o600))

	_, err := NewStore(path).Load()
	require.Error(t, err)
}

func TestStore_AddRemove(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "tools.json"))

	require.NoError(t, store.Add(NewSteamTool("Skyrim", "", 489830, false)))
	require.NoError(t, store.Add(NewCommandTool("Shell", "", "echo hi")))

	err := store.Add(NewCommandTool("Shell", "", "echo again"))
	require.ErrorIs(t, err, ErrDuplicateName)

	result, err := store.Load()
	require.NoError(t, err)
	require.Len(t, result.Tools, 2)

	require.NoError(t, store.Remove("Skyrim"))
	require.ErrorIs(t, store.Remove("Skyrim"), ErrToolNotFound)

	result, err = store.Load()
	require.NoError(t, err)
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "Shell", result.Tools[0].Name)
}

func TestFind(t *testing.T) {
	t.Parallel()

	list := []Tool{NewCommandTool("a", "", "x"), NewCommandTool("b", "", "y")}

	got, ok := Find(list, "b")
	assert.True(t, ok)
	assert.Equal(t, "y", got.CommandOverride)

	_, ok = Find(list, "c")
	assert.False(t, ok)
}
