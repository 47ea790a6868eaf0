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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/ZaparooProject/namematch/pkg/helpers"
	"github.com/ZaparooProject/namematch/pkg/helpers/syncutil"
	"github.com/ZaparooProject/namematch/pkg/report"
	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "NAMEMATCH_CFG"
)

type Values struct {
	Output       Output `toml:"output"`
	Match        Match  `toml:"match"`
	Scan         Scan   `toml:"scan"`
	ConfigSchema int    `toml:"config_schema"`
	DebugLogging bool   `toml:"debug_logging"`
}

type Match struct {
	Algorithm    string  `toml:"algorithm"`
	EditDistance string  `toml:"edit_distance" validate:"oneof=edlib agnivade none"`
	Threshold    float64 `toml:"threshold" validate:"gte=0,lte=1"`
	MaxMatches   int     `toml:"max_matches" validate:"gt=0"`
	Workers      int     `toml:"workers" validate:"gte=0"`
}

type Scan struct {
	Suffixes       []string `toml:"suffixes,omitempty,multiline" validate:"dive,required"`
	Ignore         []string `toml:"ignore,omitempty,multiline" validate:"dive,regex"`
	ignoreRe       []*regexp.Regexp
	Recursive      bool `toml:"recursive"`
	IncludeDirs    bool `toml:"include_dirs"`
	IncludeHidden  bool `toml:"include_hidden"`
	StripExtension bool `toml:"strip_extension"`
	FollowSymlinks bool `toml:"follow_symlinks"`
}

type Output struct {
	Format     string `toml:"format" validate:"output_format"`
	Color      string `toml:"color" validate:"color_mode"`
	PartVideos string `toml:"part_videos" validate:"part_videos"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Match: Match{
		Algorithm:    "difflib",
		EditDistance: "edlib",
		Threshold:    0.6,
		MaxMatches:   5,
	},
	Output: Output{
		Format:     report.FormatText,
		Color:      report.ColorAuto,
		PartVideos: report.PartVideosSkip,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// DefaultPath returns the config file location: $NAMEMATCH_CFG if set,
// otherwise config.toml in the XDG config directory.
func DefaultPath() string {
	if p := os.Getenv(CfgEnv); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName, CfgFile)
}

// NewConfig loads the config file at cfgPath, writing one with the given
// defaults first if it does not exist yet.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(cfgPath string, defaults Values) (*Instance, error) {
	if cfgPath == "" {
		cfgPath = DefaultPath()
	}
	log.Debug().Msgf("config path: %s", cfgPath)

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := validateValues(&newVals); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.cfgPath, err)
	}

	newVals.Scan.ignoreRe, err = helpers.CachedCompileAll(newVals.Scan.Ignore)
	if err != nil {
		return fmt.Errorf("invalid scan ignore pattern: %w", err)
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the current values, including any overrides applied
// with the setters since the last Load.
func (c *Instance) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return validateValues(&c.vals)
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) Algorithm() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Match.Algorithm
}

func (c *Instance) SetAlgorithm(alg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Match.Algorithm = alg
}

func (c *Instance) EditDistance() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Match.EditDistance
}

func (c *Instance) SetEditDistance(provider string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Match.EditDistance = provider
}

func (c *Instance) Threshold() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Match.Threshold
}

func (c *Instance) SetThreshold(threshold float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Match.Threshold = threshold
}

func (c *Instance) MaxMatches() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Match.MaxMatches
}

func (c *Instance) SetMaxMatches(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Match.MaxMatches = n
}

func (c *Instance) Workers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Match.Workers
}

func (c *Instance) SetWorkers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Match.Workers = n
}

func (c *Instance) Suffixes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Scan.Suffixes)
}

func (c *Instance) SetSuffixes(suffixes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Scan.Suffixes = slices.Clone(suffixes)
}

// IgnorePatterns returns the compiled scan ignore patterns. Entries are
// matched against candidate names.
func (c *Instance) IgnorePatterns() []*regexp.Regexp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Scan.ignoreRe)
}

func (c *Instance) Recursive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scan.Recursive
}

func (c *Instance) SetRecursive(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Scan.Recursive = enabled
}

func (c *Instance) IncludeDirs() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scan.IncludeDirs
}

func (c *Instance) IncludeHidden() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scan.IncludeHidden
}

func (c *Instance) StripExtension() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scan.StripExtension
}

func (c *Instance) SetStripExtension(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Scan.StripExtension = enabled
}

func (c *Instance) FollowSymlinks() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scan.FollowSymlinks
}

func (c *Instance) OutputFormat() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Output.Format
}

func (c *Instance) SetOutputFormat(format string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Output.Format = format
}

func (c *Instance) Color() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Output.Color
}

func (c *Instance) SetColor(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Output.Color = mode
}

func (c *Instance) PartVideos() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Output.PartVideos
}

func (c *Instance) SetPartVideos(policy string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Output.PartVideos = policy
}
