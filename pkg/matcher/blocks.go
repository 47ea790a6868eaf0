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
	"github.com/pmezard/go-difflib/difflib"
)

// blockMatcher scores pool entries with the matching-blocks ratio 2*M/T,
// where M is the total size of the longest-first matching blocks between
// the two names and T is their combined length.
type blockMatcher struct{}

func (blockMatcher) match(target string, pool []string, threshold float64, maxMatches int) []scored {
	if len(pool) == 0 {
		return nil
	}

	// The target is the second sequence so its index is built once and
	// reused for every pool entry.
	sm := newSequenceMatcher(nil, splitRunes(target))

	var matches []scored
	for i, name := range pool {
		sm.SetSeq1(splitRunes(name))

		// Both quick ratios are upper bounds on Ratio.
		if sm.RealQuickRatio() < threshold || sm.QuickRatio() < threshold {
			continue
		}

		ratio := sm.Ratio()
		if ratio >= threshold {
			matches = append(matches, scored{index: i, score: ratio})
		}
	}

	rankDescending(matches)
	return truncate(matches, maxMatches)
}

// BlockRatio returns the matching-blocks similarity of a and b in [0, 1].
// Two empty strings are identical and score 1.
func BlockRatio(a, b string) float64 {
	return newSequenceMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// newSequenceMatcher disables the autojunk heuristic, which would otherwise
// ignore frequent runes in names of 200 runes or more.
func newSequenceMatcher(a, b []string) *difflib.SequenceMatcher {
	return difflib.NewMatcherWithJunk(a, b, false, nil)
}

// splitRunes turns s into one element per rune, the unit difflib compares.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
