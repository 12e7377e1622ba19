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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-tools/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-tools/pkg/validation"
)

// ErrInvalidDocument is wrapped by every error returned from FromDocument.
var ErrInvalidDocument = errors.New("invalid tool document")

// Schema identifies the layout of a persisted tool document.
type Schema int

const (
	// SchemaLegacy predates launcher support. Only name, icon_path and
	// command are guaranteed.
	SchemaLegacy Schema = iota
	// SchemaCurrent carries every field and is the only schema written.
	SchemaCurrent
)

func (s Schema) String() string {
	if s == SchemaCurrent {
		return "current"
	}
	return "legacy"
}

// schemaMarker is only present in current-schema documents.
const schemaMarker = "use_flatpak_runtime"

// Document is the current persisted form of a Tool.
//
//nolint:tagliatelle // persisted format shared with older releases
type Document struct {
	Name                  string         `json:"name"`
	IconPath              string         `json:"icon_path"`
	ExecutablePath        string         `json:"executable_path"`
	PrefixPath            string         `json:"prefix_path"`
	WorkingDirectory      string         `json:"working_directory"`
	Arguments             string         `json:"arguments"`
	ProtontricksArguments string         `json:"protontricks_arguments"`
	Command               string         `json:"command"`
	LauncherIdentifier    string         `json:"launcher_identifier"`
	ProtonPath            string         `json:"proton_path"`
	EnvironmentVariables  []EnvVar       `json:"environment_variables"`
	Runtime               Runtime        `json:"runtime"`
	SteamAppID            int            `json:"steam_app_id"`
	LauncherType          launchers.Type `json:"launcher_type"`
	UseFlatpakRuntime     bool           `json:"use_flatpak_runtime"`
}

// ToDocument converts the tool into the current schema.
func (t Tool) ToDocument() Document {
	env := make([]EnvVar, len(t.EnvironmentVariables))
	copy(env, t.EnvironmentVariables)

	return Document{
		Name:                  t.Name,
		IconPath:              t.IconPath,
		ExecutablePath:        t.ExecutablePath,
		Runtime:               t.Runtime,
		UseFlatpakRuntime:     t.UseFlatpakRuntime,
		PrefixPath:            t.PrefixPath,
		SteamAppID:            t.SteamAppID,
		WorkingDirectory:      t.WorkingDirectory,
		EnvironmentVariables:  env,
		Arguments:             t.Arguments,
		ProtontricksArguments: t.ProtontricksArguments,
		Command:               t.CommandOverride,
		LauncherType:          t.LauncherType,
		LauncherIdentifier:    t.LauncherIdentifier,
		ProtonPath:            t.ProtonPath,
	}
}

// MarshalJSON encodes the tool in the current schema.
func (t Tool) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(t.ToDocument())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool %q: %w", t.Name, err)
	}
	return data, nil
}

// UnmarshalJSON decodes either schema, see FromDocument.
func (t *Tool) UnmarshalJSON(data []byte) error {
	tool, err := FromDocument(data)
	if err != nil {
		return err
	}
	*t = tool
	return nil
}

// DetectSchema reports which schema a tool document uses.
func DetectSchema(data []byte) (Schema, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return SchemaLegacy, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if keys == nil {
		return SchemaLegacy, fmt.Errorf("%w: document is null", ErrInvalidDocument)
	}
	if _, ok := keys[schemaMarker]; ok {
		return SchemaCurrent, nil
	}
	return SchemaLegacy, nil
}

// FromDocument decodes a tool document written in either schema. Legacy
// documents are read leniently. Current documents must carry every
// structured field with the right type.
func FromDocument(data []byte) (Tool, error) {
	schema, err := DetectSchema(data)
	if err != nil {
		return Tool{}, err
	}

	var tool Tool
	switch schema {
	case SchemaCurrent:
		var doc currentDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return Tool{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		tool, err = doc.toTool()
	case SchemaLegacy:
		var doc legacyDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return Tool{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		tool, err = doc.toTool()
	}
	if err != nil {
		return Tool{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return tool, nil
}

// runtimeValue accepts a runtime written as a name or an integer code.
type runtimeValue struct {
	name *string
	code *int
}

func (r *runtimeValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.name = &name
		return nil
	}
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("runtime must be a string or integer: %w", err)
	}
	r.code = &code
	return nil
}

func (r *runtimeValue) set() bool {
	return r != nil && (r.name != nil || r.code != nil)
}

// lenient resolves the runtime, falling back to native for anything unknown.
func (r *runtimeValue) lenient() Runtime {
	if !r.set() {
		return RuntimeNative
	}
	if r.name != nil {
		rt, _ := ParseRuntime(*r.name)
		return rt
	}
	if rt := Runtime(*r.code); rt.Valid() {
		return rt
	}
	return RuntimeNative
}

// strict resolves the runtime, rejecting unknown integer codes.
func (r *runtimeValue) strict() (Runtime, error) {
	if r.code != nil {
		if rt := Runtime(*r.code); rt.Valid() {
			return rt, nil
		}
		return RuntimeNative, fmt.Errorf("unknown runtime code %d", *r.code)
	}
	return r.lenient(), nil
}

// launcherFields are shared by both schemas. The string keys are older
// aliases. The typed keys are applied after them and win when both are set.
//
//nolint:tagliatelle // persisted format shared with older releases
type launcherFields struct {
	Launcher           *string `json:"launcher"`
	LauncherType       *int    `json:"launcher_type"`
	AppName            *string `json:"appName"`
	LauncherIdentifier *string `json:"launcher_identifier"`
	ProtonPath         *string `json:"proton_path"`
}

func (l launcherFields) apply(t *Tool, strict bool) error {
	if l.Launcher != nil {
		t.LauncherType = launchers.ParseType(*l.Launcher)
	}
	if l.LauncherType != nil {
		lt := launchers.Type(*l.LauncherType)
		switch {
		case lt.Valid():
			t.LauncherType = lt
		case strict:
			return fmt.Errorf("unknown launcher_type %d", *l.LauncherType)
		default:
			t.LauncherType = launchers.TypeSteam
		}
	}
	if l.AppName != nil {
		t.LauncherIdentifier = *l.AppName
	}
	if l.LauncherIdentifier != nil {
		t.LauncherIdentifier = *l.LauncherIdentifier
	}
	if l.ProtonPath != nil {
		t.ProtonPath = *l.ProtonPath
	}
	return nil
}

// legacyDocument is the schema written before launcher support.
//
//nolint:tagliatelle // persisted format shared with older releases
type legacyDocument struct {
	Runtime *runtimeValue `json:"runtime"`
	launcherFields        `validate:"-"`
	Name                  string `json:"name"`
	IconPath              string `json:"icon_path"`
	Command               string `json:"command"`
	ExecutablePath        string `json:"executable_path"`
	WorkingDirectory      string `json:"working_directory"`
	Arguments             string `json:"arguments"`
	ProtontricksArguments string `json:"protontricks_arguments"`
}

func (d legacyDocument) toTool() (Tool, error) {
	t := Tool{
		Name:                  d.Name,
		IconPath:              d.IconPath,
		CommandOverride:       d.Command,
		ExecutablePath:        d.ExecutablePath,
		WorkingDirectory:      d.WorkingDirectory,
		Arguments:             d.Arguments,
		ProtontricksArguments: d.ProtontricksArguments,
		Runtime:               d.Runtime.lenient(),
	}
	if err := d.apply(&t, false); err != nil {
		return Tool{}, err
	}
	return t, nil
}

type envPair struct {
	Variable *string `json:"variable" validate:"required"`
	Value    string  `json:"value"`
}

// currentDocument mirrors Document with every required key as a pointer so
// a missing key can be told apart from a zero value.
//
//nolint:tagliatelle // persisted format shared with older releases
type currentDocument struct {
	Name                  *string       `json:"name" validate:"required"`
	IconPath              *string       `json:"icon_path" validate:"required"`
	ExecutablePath        *string       `json:"executable_path" validate:"required"`
	Runtime               *runtimeValue `json:"runtime" validate:"required"`
	UseFlatpakRuntime     *bool         `json:"use_flatpak_runtime" validate:"required"`
	PrefixPath            *string       `json:"prefix_path" validate:"required"`
	SteamAppID            *int          `json:"steam_app_id" validate:"required"`
	WorkingDirectory      *string       `json:"working_directory" validate:"required"`
	Arguments             *string       `json:"arguments" validate:"required"`
	ProtontricksArguments *string       `json:"protontricks_arguments" validate:"required"`
	Command               *string       `json:"command" validate:"required"`
	launcherFields        `validate:"-"`
	// Older writers omitted the key when there were no variables.
	EnvironmentVariables []envPair `json:"environment_variables" validate:"dive"`
}

func (d currentDocument) toTool() (Tool, error) {
	if err := validation.DefaultValidator.Validate(d); err != nil {
		return Tool{}, err
	}
	if !d.Runtime.set() {
		return Tool{}, errors.New("runtime is required")
	}

	runtime, err := d.Runtime.strict()
	if err != nil {
		return Tool{}, err
	}
	var env EnvVars
	for _, pair := range d.EnvironmentVariables {
		env = env.Set(*pair.Variable, pair.Value)
	}

	t := Tool{
		Name:                  *d.Name,
		IconPath:              *d.IconPath,
		ExecutablePath:        *d.ExecutablePath,
		Runtime:               runtime,
		UseFlatpakRuntime:     *d.UseFlatpakRuntime,
		PrefixPath:            *d.PrefixPath,
		SteamAppID:            *d.SteamAppID,
		WorkingDirectory:      *d.WorkingDirectory,
		EnvironmentVariables:  env,
		Arguments:             *d.Arguments,
		ProtontricksArguments: *d.ProtontricksArguments,
		CommandOverride:       *d.Command,
	}
	if err := d.apply(&t, true); err != nil {
		return Tool{}, err
	}
	return t, nil
}
