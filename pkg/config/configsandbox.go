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
	"fmt"

	"github.com/ZaparooProject/zaparoo-tools/pkg/flatpak"
	"github.com/spf13/afero"
)

const (
	SandboxAuto   = "auto"
	SandboxAlways = "always"
	SandboxNever  = "never"
)

type Sandbox struct {
	Mode string `toml:"mode" validate:"omitempty,oneof=auto always never"`
}

func (c *Instance) SandboxMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Sandbox.Mode == "" {
		return SandboxAuto
	}
	return c.vals.Sandbox.Mode
}

func (c *Instance) SetSandboxMode(mode string) error {
	switch mode {
	case SandboxAuto, SandboxAlways, SandboxNever:
	default:
		return fmt.Errorf("invalid sandbox mode: %q", mode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Sandbox.Mode = mode
	return nil
}

// Sandboxed reports whether generated commands must escape a Flatpak
// sandbox. In auto mode this is detected from fs.
func (c *Instance) Sandboxed(fs afero.Fs) bool {
	switch c.SandboxMode() {
	case SandboxAlways:
		return true
	case SandboxNever:
		return false
	default:
		return flatpak.InSandbox(fs)
	}
}
