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

// EnvVar is a single environment variable assignment.
type EnvVar struct {
	Variable string `json:"variable"`
	Value    string `json:"value"`
}

// EnvVars is an ordered set of environment variables. Iteration order is
// the order variables were first set, so commands and documents built from
// the same value are always identical.
type EnvVars []EnvVar

// Env builds EnvVars from alternating variable, value pairs. A trailing
// variable without a value is ignored.
func Env(pairs ...string) EnvVars {
	var env EnvVars
	for i := 0; i+1 < len(pairs); i += 2 {
		env = env.Set(pairs[i], pairs[i+1])
	}
	return env
}

// Set returns a copy of e with variable set to value. An existing variable
// keeps its position.
func (e EnvVars) Set(variable, value string) EnvVars {
	out := make(EnvVars, len(e), len(e)+1)
	copy(out, e)
	for i := range out {
		if out[i].Variable == variable {
			out[i].Value = value
			return out
		}
	}
	return append(out, EnvVar{Variable: variable, Value: value})
}

// Get returns the value of variable.
func (e EnvVars) Get(variable string) (string, bool) {
	for _, v := range e {
		if v.Variable == variable {
			return v.Value, true
		}
	}
	return "", false
}

// Clone returns an independent copy of e. An empty set clones to nil.
func (e EnvVars) Clone() EnvVars {
	if len(e) == 0 {
		return nil
	}
	out := make(EnvVars, len(e))
	copy(out, e)
	return out
}
