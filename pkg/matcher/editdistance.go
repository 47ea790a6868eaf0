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
	"unicode/utf8"

	"github.com/ZaparooProject/namematch/pkg/editdist"
)

// editDistanceMatcher scores pool entries by normalized edit distance.
type editDistanceMatcher struct {
	dist editdist.Distancer
}

func (m editDistanceMatcher) match(target string, pool []string, threshold float64, maxMatches int) []scored {
	if len(pool) == 0 {
		return nil
	}

	all := make([]scored, len(pool))
	for i, name := range pool {
		all[i] = scored{index: i, score: NormalizedSimilarity(m.dist, target, name)}
	}
	rankDescending(all)

	matches := all[:0]
	for _, s := range all {
		if s.score < threshold {
			// sorted, nothing further can qualify
			break
		}
		matches = append(matches, s)
	}

	return truncate(matches, maxMatches)
}

// NormalizedSimilarity returns 1 - d/max(len(a), len(b), 1), lengths
// counted in runes, so identical strings score 1.
func NormalizedSimilarity(d editdist.Distancer, a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b), 1)
	return 1 - float64(d.Distance(a, b))/float64(longest)
}
