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

// Package matcher finds candidates whose names resemble each other. Every
// candidate is compared against every other one with the selected
// algorithm and the strongest matches above a threshold are reported.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/ZaparooProject/namematch/pkg/editdist"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultThreshold  = 0.6
	DefaultMaxMatches = 5
)

var (
	// ErrMissingCapability is returned when the selected algorithm needs an
	// edit distance provider and none was injected.
	ErrMissingCapability = errors.New("missing capability")
	// ErrInvalidConfiguration is returned for out of range options.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Candidate is a filesystem entry considered for matching. Name is the
// string that gets compared, normally the last element of Path.
type Candidate struct {
	Path  string
	Name  string
	IsDir bool
}

// Match is a candidate similar to a source, with its similarity score.
// For the tokenized algorithm the score is the fraction of the source's
// tokens the match shares.
type Match struct {
	Candidate Candidate
	Score     float64
}

// Result holds the matches found for one source candidate.
type Result struct {
	Source  Candidate
	Matches []Match
}

// Report is the outcome of one FindSimilar call. Results only contains
// sources with at least one match, in input order.
type Report struct {
	Results    []Result
	Threshold  float64
	MaxMatches int
	Algorithm  Algorithm
}

// MatchCount returns the total number of matches across all results.
func (r *Report) MatchCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Matches)
	}
	return n
}

// Options configures a FindSimilar call.
type Options struct {
	// Distancer is required by AlgorithmLevenshtein.
	Distancer  editdist.Distancer
	Algorithm  Algorithm
	Threshold  float64
	MaxMatches int
	// Workers bounds how many sources are matched concurrently. Zero uses
	// one worker per CPU.
	Workers int
}

// DefaultOptions returns the block matcher with the default threshold and
// match limit, and the default edit distance provider injected.
func DefaultOptions() Options {
	return Options{
		Algorithm:  AlgorithmDifflib,
		Threshold:  DefaultThreshold,
		MaxMatches: DefaultMaxMatches,
		Distancer:  editdist.Edlib,
	}
}

// Validate checks option ranges. It does not check capabilities.
func (o *Options) Validate() error {
	if math.IsNaN(o.Threshold) || o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v must be between 0 and 1", ErrInvalidConfiguration, o.Threshold)
	}
	if o.MaxMatches <= 0 {
		return fmt.Errorf("%w: max matches %d must be greater than 0", ErrInvalidConfiguration, o.MaxMatches)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfiguration, o.Workers)
	}
	return nil
}

// Check validates the options and confirms the selected algorithm has the
// capabilities it needs, without matching anything.
func (o *Options) Check() error {
	if err := o.Validate(); err != nil {
		return err
	}
	_, err := newStrategy(o)
	return err
}

// CandidatesFromNames wraps bare names as candidates whose path is the
// name itself.
func CandidatesFromNames(names []string) []Candidate {
	out := make([]Candidate, len(names))
	for i, name := range names {
		out[i] = Candidate{Path: name, Name: name}
	}
	return out
}

// FindSimilar compares every candidate's name against all the others and
// returns the matches that reach the threshold. A candidate is never
// matched with itself, but distinct candidates with the same name match
// each other. Options are validated and the strategy is built before any
// matching starts.
func FindSimilar(ctx context.Context, candidates []Candidate, opts Options) (Report, error) {
	report := Report{
		Algorithm:  opts.Algorithm,
		Threshold:  opts.Threshold,
		MaxMatches: opts.MaxMatches,
	}

	if err := opts.Validate(); err != nil {
		return report, err
	}
	strat, err := newStrategy(&opts)
	if err != nil {
		return report, err
	}

	if len(candidates) == 0 {
		return report, nil
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	perSource := make([][]Match, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("matching %q: %w", names[i], err)
			}
			perSource[i] = matchSource(strat, candidates, names, i, &opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("similarity pass cancelled: %w", err)
	}

	for i, matches := range perSource {
		if len(matches) == 0 {
			continue
		}
		report.Results = append(report.Results, Result{
			Source:  candidates[i],
			Matches: matches,
		})
	}

	log.Debug().
		Stringer("algorithm", opts.Algorithm).
		Int("candidates", len(candidates)).
		Int("sources", len(report.Results)).
		Int("matches", report.MatchCount()).
		Msg("similarity pass complete")

	return report, nil
}

// matchSource runs the strategy for candidates[src] against every other
// candidate and maps pool indexes back to candidates.
func matchSource(strat strategy, candidates []Candidate, names []string, src int, opts *Options) []Match {
	pool := make([]string, 0, len(names)-1)
	poolIdx := make([]int, 0, len(names)-1)
	for j, name := range names {
		if j == src {
			continue
		}
		pool = append(pool, name)
		poolIdx = append(poolIdx, j)
	}

	found := strat.match(names[src], pool, opts.Threshold, opts.MaxMatches)
	if len(found) == 0 {
		return nil
	}

	matches := make([]Match, len(found))
	for k, s := range found {
		matches[k] = Match{
			Candidate: candidates[poolIdx[s.index]],
			Score:     s.score,
		}
	}
	return matches
}
