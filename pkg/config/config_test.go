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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaparooProject/namematch/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), CfgFile)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestNewConfigCreatesDefaultFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", CfgFile)

	cfg, err := NewConfig(path, BaseDefaults)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config should be written")

	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, "difflib", cfg.Algorithm())
	assert.InDelta(t, 0.6, cfg.Threshold(), 1e-9)
	assert.Equal(t, 5, cfg.MaxMatches())
	assert.Equal(t, "edlib", cfg.EditDistance())
	assert.Equal(t, report.FormatText, cfg.OutputFormat())
	assert.Equal(t, report.ColorAuto, cfg.Color())
	assert.Equal(t, report.PartVideosSkip, cfg.PartVideos())
	assert.False(t, cfg.Recursive())
	assert.Empty(t, cfg.Suffixes())
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
config_schema = 1
debug_logging = true

[match]
algorithm = "tokenized"
threshold = 0.75

[scan]
suffixes = [".mp4", ".mkv"]
ignore = ['^\._', '(?i)^thumbs\.db$']
recursive = true
strip_extension = true

[output]
part_videos = "show"
`)

	cfg, err := NewConfig(path, BaseDefaults)
	require.NoError(t, err)

	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, "tokenized", cfg.Algorithm())
	assert.InDelta(t, 0.75, cfg.Threshold(), 1e-9)
	assert.Equal(t, 5, cfg.MaxMatches(), "missing keys keep defaults")
	assert.Equal(t, []string{".mp4", ".mkv"}, cfg.Suffixes())
	assert.True(t, cfg.Recursive())
	assert.True(t, cfg.StripExtension())
	assert.Equal(t, report.PartVideosShow, cfg.PartVideos())

	patterns := cfg.IgnorePatterns()
	require.Len(t, patterns, 2)
	assert.True(t, patterns[0].MatchString("._Movie.mp4"))
	assert.True(t, patterns[1].MatchString("Thumbs.db"))
}

func TestLoadSchemaMismatch(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config_schema = 99\n")

	_, err := NewConfig(path, BaseDefaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version mismatch")
}

func TestLoadMalformedToml(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config_schema = \n[match\n")

	_, err := NewConfig(path, BaseDefaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{
			name:    "threshold above one",
			body:    "[match]\nthreshold = 1.5\n",
			field:   "match.threshold",
			message: "match.threshold must be at most 1",
		},
		{
			name:    "negative threshold",
			body:    "[match]\nthreshold = -0.5\n",
			field:   "match.threshold",
			message: "match.threshold must be at least 0",
		},
		{
			name:    "zero max matches",
			body:    "[match]\nmax_matches = 0\n",
			field:   "match.max_matches",
			message: "match.max_matches must be greater than 0",
		},
		{
			name:    "unknown edit distance provider",
			body:    "[match]\nedit_distance = \"hamming\"\n",
			field:   "match.edit_distance",
			message: "match.edit_distance must be one of: edlib, agnivade, none",
		},
		{
			name:    "unknown output format",
			body:    "[output]\nformat = \"xml\"\n",
			field:   "output.format",
			message: "output.format must be one of: text, table, json, csv",
		},
		{
			name:    "empty suffix",
			body:    "[scan]\nsuffixes = [\".mp4\", \"\"]\n",
			field:   "scan.suffixes[1]",
			message: "scan.suffixes[1] must not be empty",
		},
		{
			name:    "invalid ignore regex",
			body:    "[scan]\nignore = [\"(\"]\n",
			field:   "scan.ignore[0]",
			message: `scan.ignore[0] must be a valid regex pattern, got "("`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, "config_schema = 1\n"+tt.body)

			_, err := NewConfig(path, BaseDefaults)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
			assert.Equal(t, tt.message, ve.Fields[0].Message)
		})
	}
}

func TestSettersAndValidate(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(filepath.Join(t.TempDir(), CfgFile), BaseDefaults)
	require.NoError(t, err)

	cfg.SetAlgorithm("lev")
	cfg.SetEditDistance("agnivade")
	cfg.SetThreshold(0.8)
	cfg.SetMaxMatches(3)
	cfg.SetWorkers(2)
	cfg.SetSuffixes([]string{".txt"})
	cfg.SetRecursive(true)
	cfg.SetStripExtension(true)
	cfg.SetOutputFormat(report.FormatJSON)
	cfg.SetColor(report.ColorNever)
	cfg.SetPartVideos(report.PartVideosShow)
	cfg.SetDebugLogging(true)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "lev", cfg.Algorithm())
	assert.Equal(t, "agnivade", cfg.EditDistance())
	assert.InDelta(t, 0.8, cfg.Threshold(), 1e-9)
	assert.Equal(t, 3, cfg.MaxMatches())
	assert.Equal(t, 2, cfg.Workers())
	assert.Equal(t, []string{".txt"}, cfg.Suffixes())
	assert.True(t, cfg.Recursive())
	assert.True(t, cfg.StripExtension())
	assert.Equal(t, report.FormatJSON, cfg.OutputFormat())
	assert.Equal(t, report.ColorNever, cfg.Color())
	assert.Equal(t, report.PartVideosShow, cfg.PartVideos())
	assert.True(t, cfg.DebugLogging())

	cfg.SetThreshold(2)
	cfg.SetMaxMatches(-1)
	err = cfg.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestValidateAcceptsReporterValues(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(filepath.Join(t.TempDir(), CfgFile), BaseDefaults)
	require.NoError(t, err)

	for _, format := range report.Formats() {
		cfg.SetOutputFormat(format)
		require.NoError(t, cfg.Validate(), format)
	}
	for _, mode := range report.ColorModes() {
		cfg.SetColor(mode)
		require.NoError(t, cfg.Validate(), mode)
	}
	for _, policy := range report.PartVideoPolicies() {
		cfg.SetPartVideos(policy)
		require.NoError(t, cfg.Validate(), policy)
	}

	cfg.SetColor("sometimes")
	cfg.SetPartVideos("hide")
	err = cfg.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, "output.color", ve.Fields[0].Field)
	assert.Equal(t, "output.color must be one of: auto, always, never", ve.Fields[0].Message)
	assert.Equal(t, "output.part_videos", ve.Fields[1].Field)
	assert.Equal(t, "output.part_videos must be one of: skip, show", ve.Fields[1].Message)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), CfgFile)
	cfg, err := NewConfig(path, BaseDefaults)
	require.NoError(t, err)

	cfg.SetThreshold(0.9)
	cfg.SetSuffixes([]string{".mkv"})
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfig(path, BaseDefaults)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, reloaded.Threshold(), 1e-9)
	assert.Equal(t, []string{".mkv"}, reloaded.Suffixes())
}

func TestDefaultPath(t *testing.T) {
	// Note: Cannot use t.Parallel() because t.Setenv modifies the process environment
	custom := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(CfgEnv, custom)
	assert.Equal(t, custom, DefaultPath())

	t.Setenv(CfgEnv, "")
	assert.True(t, strings.HasSuffix(DefaultPath(), filepath.Join(AppName, CfgFile)))
}
