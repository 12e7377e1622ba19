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
	"fmt"

	"github.com/kballard/go-shellquote"
)

// JoinArguments formats args as a raw argument string with POSIX shell
// quoting, for callers that hold an argument list rather than a string.
func JoinArguments(args ...string) string {
	return shellquote.Join(args...)
}

// SplitArguments splits a raw argument string back into words. It fails on
// unterminated quotes or a trailing escape.
func SplitArguments(arguments string) ([]string, error) {
	words, err := shellquote.Split(arguments)
	if err != nil {
		return nil, fmt.Errorf("failed to split arguments %q: %w", arguments, err)
	}
	return words, nil
}
