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

import "fmt"

// Runtime is the execution strategy of a Tool. The integer values are
// persisted and must keep their declaration order.
type Runtime int

const (
	RuntimeNative Runtime = iota
	RuntimeWine
	RuntimeProtontricks
	RuntimeSteam
)

var runtimeNames = map[Runtime]string{
	RuntimeNative:       "native",
	RuntimeWine:         "wine",
	RuntimeProtontricks: "protontricks",
	RuntimeSteam:        "steam",
}

func (r Runtime) String() string {
	if name, ok := runtimeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Runtime(%d)", int(r))
}

// Valid reports whether r is one of the declared runtimes.
func (r Runtime) Valid() bool {
	_, ok := runtimeNames[r]
	return ok
}

// ParseRuntime maps a runtime name to its Runtime. Unknown names map to
// RuntimeNative with ok set to false.
func ParseRuntime(name string) (Runtime, bool) {
	for r, n := range runtimeNames {
		if n == name {
			return r, true
		}
	}
	return RuntimeNative, false
}
