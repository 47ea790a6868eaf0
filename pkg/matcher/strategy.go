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

package matcher

import (
	"cmp"
	"fmt"
	"slices"
)

// scored is a pool index paired with its similarity to the target.
type scored struct {
	index int
	score float64
}

// strategy shortlists the pool entries similar to target. The pool never
// contains the target itself. Implementations are pure and safe to call
// concurrently.
type strategy interface {
	match(target string, pool []string, threshold float64, maxMatches int) []scored
}

func newStrategy(opts *Options) (strategy, error) {
	switch opts.Algorithm {
	case AlgorithmDifflib:
		return blockMatcher{}, nil
	case AlgorithmLevenshtein:
		if opts.Distancer == nil {
			return nil, fmt.Errorf(
				"%w: %s requires an edit distance provider, set [match] edit_distance to edlib or agnivade",
				ErrMissingCapability, opts.Algorithm,
			)
		}
		return editDistanceMatcher{dist: opts.Distancer}, nil
	case AlgorithmTokenized:
		return tokenMatcher{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfiguration, int(opts.Algorithm))
	}
}

// rankDescending sorts by score, highest first, keeping pool order for
// equal scores.
func rankDescending(matches []scored) {
	slices.SortStableFunc(matches, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
}

func truncate(matches []scored, maxMatches int) []scored {
	if len(matches) > maxMatches {
		return matches[:maxMatches]
	}
	return matches
}
