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

package helpers

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// CreateFiles creates empty files under basePath. Names may contain
// subdirectories, which are created as needed.
func (h *FSHelper) CreateFiles(basePath string, names ...string) error {
	if err := h.Fs.MkdirAll(basePath, 0o750); err != nil {
		return fmt.Errorf("failed to create base directory %s: %w", basePath, err)
	}

	for _, name := range names {
		p := filepath.Join(basePath, name)
		if err := h.Fs.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", p, err)
		}
		if err := afero.WriteFile(h.Fs, p, []byte{}, 0o600); err != nil {
			return fmt.Errorf("failed to create file %s: %w", p, err)
		}
	}
	return nil
}

// CreateConfigFile writes a TOML config file with the current schema
// version followed by body.
func (h *FSHelper) CreateConfigFile(path, body string) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for config file: %w", err)
	}

	data := "config_schema = 1\n\n" + body
	if err := afero.WriteFile(h.Fs, path, []byte(data), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CreateMediaDirectory creates a small media library with near-duplicate
// names spread over a few folders.
func (h *FSHelper) CreateMediaDirectory(basePath string) error {
	folders := map[string][]string{
		"":         {"Holiday 2019 (1).jpg", "Holiday 2019 (2).jpg", "notes.txt"},
		"Movies":   {"Movie Part 1.mp4", "Movie Part 2.mp4", "Documentary.mkv"},
		"Reports":  {"Report_Final.txt", "Report_Final_v2.txt"},
		".thumbs":  {"Holiday 2019 (1).jpg"},
		"Archived": {},
	}

	for folder, names := range folders {
		if err := h.CreateFiles(filepath.Join(basePath, folder), names...); err != nil {
			return err
		}
	}
	return nil
}
