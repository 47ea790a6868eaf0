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
	"regexp"
)

// minSharedTokens is the number of tokens a candidate must share with the
// target, exclusive, before the overlap fraction is even considered.
const minSharedTokens = 1

var tokenSeparators = regexp.MustCompile(`[\s\p{Z}\-_()]+`)

// Tokenize splits a name on runs of whitespace (including Unicode spaces
// such as NBSP and the ideographic space), hyphens, underscores and
// parentheses. Tokens are case-sensitive and empty tokens are dropped.
func Tokenize(name string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range tokenSeparators.Split(name, -1) {
		if tok == "" {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// tokenMatcher accepts pool entries that share more than one token with
// the target and cover at least threshold of the target's tokens. Matches
// keep pool order; they are not ranked.
type tokenMatcher struct{}

func (tokenMatcher) match(target string, pool []string, threshold float64, maxMatches int) []scored {
	targetTokens := Tokenize(target)
	if len(targetTokens) == 0 {
		return nil
	}

	var matches []scored
	for i, name := range pool {
		shared := sharedTokens(targetTokens, Tokenize(name))
		if shared <= minSharedTokens {
			continue
		}

		fraction := float64(shared) / float64(len(targetTokens))
		if fraction < threshold {
			continue
		}

		matches = append(matches, scored{index: i, score: fraction})
		if len(matches) == maxMatches {
			break
		}
	}

	return matches
}

func sharedTokens(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}
