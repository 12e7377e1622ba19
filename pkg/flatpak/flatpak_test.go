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

package flatpak

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "flatpak run com.valvesoftware.Steam", RunCommand(SteamID, ""))
	assert.Equal(t,
		"flatpak run --command=protontricks-launch com.github.Matoking.protontricks",
		RunCommand(ProtontricksID, "protontricks-launch"),
	)
}

func TestAppPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		filepath.Join("/home/u", ".var", "app", HeroicID),
		AppPath("/home/u", HeroicID),
	)
}

func TestInSandbox(t *testing.T) {
	// Cannot run in parallel due to env modification
	t.Run("info_file_present", func(t *testing.T) {
		t.Setenv(IDEnv, "")
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, InfoFile, []byte("[Application]\n"), 0o600))

		assert.True(t, InSandbox(fs))
	})

	t.Run("env_set", func(t *testing.T) {
		t.Setenv(IDEnv, "org.example.Tools")

		assert.True(t, InSandbox(afero.NewMemMapFs()))
	})

	t.Run("not_sandboxed", func(t *testing.T) {
		t.Setenv(IDEnv, "")

		assert.False(t, InSandbox(afero.NewMemMapFs()))
	})
}
