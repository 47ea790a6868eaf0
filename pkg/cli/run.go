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

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ZaparooProject/namematch/pkg/config"
	"github.com/ZaparooProject/namematch/pkg/editdist"
	"github.com/ZaparooProject/namematch/pkg/matcher"
	"github.com/ZaparooProject/namematch/pkg/report"
	"github.com/ZaparooProject/namematch/pkg/scanner"
	"github.com/rs/zerolog/log"
)

// Stats describes one completed run.
type Stats struct {
	Summary    report.Summary
	Candidates int
	ScanTime   time.Duration
	MatchTime  time.Duration
}

// MatchOptions resolves the matcher options from the config. An unknown
// algorithm name falls back to the block matcher and is reported through
// the returned flag.
func MatchOptions(cfg *config.Instance) (opts matcher.Options, known bool, err error) {
	dist, err := editdist.Resolve(cfg.EditDistance())
	if err != nil {
		return opts, false, fmt.Errorf("error resolving edit distance provider: %w", err)
	}

	alg, known := matcher.ParseAlgorithm(cfg.Algorithm())

	opts = matcher.Options{
		Distancer:  dist,
		Algorithm:  alg,
		Threshold:  cfg.Threshold(),
		MaxMatches: cfg.MaxMatches(),
		Workers:    cfg.Workers(),
	}
	return opts, known, nil
}

// ScanOptions maps the [scan] config section to scanner options.
func ScanOptions(cfg *config.Instance) *scanner.Options {
	return &scanner.Options{
		Suffixes:       cfg.Suffixes(),
		Ignore:         cfg.IgnorePatterns(),
		Recursive:      cfg.Recursive(),
		IncludeDirs:    cfg.IncludeDirs(),
		IncludeHidden:  cfg.IncludeHidden(),
		StripExtension: cfg.StripExtension(),
		FollowSymlinks: cfg.FollowSymlinks(),
	}
}

// Run scans dir, finds similar names and writes the report to app.Out.
func (app *App) Run(ctx context.Context, cfg *config.Instance, dir string) (Stats, error) {
	var stats Stats

	opts, known, err := MatchOptions(cfg)
	if err != nil {
		return stats, err
	}
	if !known {
		log.Warn().Msgf("unknown algorithm %q, using %s", cfg.Algorithm(), opts.Algorithm)
		_, _ = fmt.Fprintf(app.Err, "Warning: unknown algorithm %q, using %s\n", cfg.Algorithm(), opts.Algorithm)
	}
	if err := opts.Check(); err != nil {
		log.Error().Err(err).Stringer("algorithm", opts.Algorithm).Msg("invalid match options")
		return stats, fmt.Errorf("error checking match options: %w", err)
	}

	reporter, err := report.New(app.Out, report.Options{
		Format:     cfg.OutputFormat(),
		Color:      cfg.Color(),
		PartVideos: cfg.PartVideos(),
	})
	if err != nil {
		return stats, fmt.Errorf("error creating reporter: %w", err)
	}

	start := app.Clock.Now()
	candidates, err := scanner.New(app.Fs).Scan(ctx, dir, ScanOptions(cfg))
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("error scanning directory")
		return stats, fmt.Errorf("error scanning %s: %w", dir, err)
	}
	stats.Candidates = len(candidates)
	stats.ScanTime = app.Clock.Since(start)
	log.Info().
		Str("dir", dir).
		Int("candidates", stats.Candidates).
		Dur("elapsed", stats.ScanTime).
		Msg("scan finished")

	start = app.Clock.Now()
	rep, err := matcher.FindSimilar(ctx, candidates, opts)
	if err != nil {
		log.Error().Err(err).Stringer("algorithm", opts.Algorithm).Msg("error finding similar names")
		return stats, fmt.Errorf("error finding similar names: %w", err)
	}
	stats.MatchTime = app.Clock.Since(start)
	log.Info().
		Stringer("algorithm", opts.Algorithm).
		Int("sources", len(rep.Results)).
		Int("matches", rep.MatchCount()).
		Dur("elapsed", stats.MatchTime).
		Msg("matching finished")

	stats.Summary, err = reporter.Write(&rep)
	if err != nil {
		return stats, fmt.Errorf("error writing report: %w", err)
	}
	log.Debug().
		Int("sources", stats.Summary.Sources).
		Int("matches", stats.Summary.Matches).
		Int("skipped_parts", stats.Summary.SkippedParts).
		Msg("report written")

	return stats, nil
}
