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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-tools/pkg/helpers/syncutil"
	"github.com/dchest/safefile"
	"github.com/rs/zerolog/log"
)

var (
	// ErrDuplicateName is returned when adding a tool whose name is taken.
	ErrDuplicateName = errors.New("a tool with this name already exists")
	// ErrToolNotFound is returned when no tool has the requested name.
	ErrToolNotFound = errors.New("tool not found")
)

// SkippedEntry records a tools file entry that could not be decoded.
type SkippedEntry struct {
	Err   error
	Index int
}

// LoadResult is the outcome of reading a tools file.
type LoadResult struct {
	Tools   []Tool
	Skipped []SkippedEntry
}

// Store persists a list of tools as a JSON array at a fixed path. Reads
// accept both document schemas, writes always use the current one.
type Store struct {
	path string
	mu   syncutil.Mutex
}

// NewStore returns a Store for the tools file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the tools file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads every tool in the file. A missing file is an empty list.
// Entries that fail to decode are skipped and reported in the result.
func (s *Store) Load() (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (LoadResult, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", s.path).Msg("tools file not found")
		return LoadResult{Tools: []Tool{}}, nil
	} else if err != nil {
		return LoadResult{}, fmt.Errorf("failed to read tools file: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return LoadResult{}, fmt.Errorf("failed to parse tools file %s: %w", s.path, err)
	}

	result := LoadResult{Tools: make([]Tool, 0, len(entries))}
	for i, entry := range entries {
		tool, err := FromDocument(entry)
		if err != nil {
			log.Warn().Err(err).
				Str("path", s.path).
				Int("index", i).
				Msg("skipping invalid tool entry")
			result.Skipped = append(result.Skipped, SkippedEntry{Index: i, Err: err})
			continue
		}
		result.Tools = append(result.Tools, tool)
	}

	log.Debug().
		Str("path", s.path).
		Int("tools", len(result.Tools)).
		Int("skipped", len(result.Skipped)).
		Msg("loaded tools file")
	return result, nil
}

// Save replaces the file with tools, written atomically.
func (s *Store) Save(tools []Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(tools)
}

func (s *Store) save(tools []Tool) error {
	docs := make([]Document, len(tools))
	for i, t := range tools {
		docs[i] = t.ToDocument()
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tools: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create tools directory: %w", err)
	}

	f, err := safefile.Create(s.path, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create tools file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Msg("error closing tools file")
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write tools file: %w", err)
	}
	if err := f.Commit(); err != nil {
		return fmt.Errorf("failed to commit tools file: %w", err)
	}

	log.Info().Str("path", s.path).Int("tools", len(tools)).Msg("saved tools file")
	return nil
}

// Add appends tool to the file. Names must be unique.
func (s *Store) Add(tool Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := Find(result.Tools, tool.Name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, tool.Name)
	}
	if len(result.Skipped) > 0 {
		log.Warn().
			Int("skipped", len(result.Skipped)).
			Msg("invalid tool entries will be dropped on save")
	}
	return s.save(append(result.Tools, tool))
}

// Remove deletes the tool called name from the file.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.load()
	if err != nil {
		return err
	}

	kept := make([]Tool, 0, len(result.Tools))
	for _, t := range result.Tools {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(result.Tools) {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return s.save(kept)
}

// Find returns the first tool called name.
func Find(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
