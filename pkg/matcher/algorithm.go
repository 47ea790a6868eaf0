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
	"fmt"
	"strings"
)

// Algorithm selects one of the similarity strategies.
type Algorithm int

const (
	// AlgorithmDifflib scores names by longest matching blocks.
	AlgorithmDifflib Algorithm = iota
	// AlgorithmLevenshtein scores names by normalized edit distance.
	AlgorithmLevenshtein
	// AlgorithmTokenized scores names by shared separator-delimited tokens.
	AlgorithmTokenized
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmDifflib:
		return "difflib"
	case AlgorithmLevenshtein:
		return "levenshtein"
	case AlgorithmTokenized:
		return "tokenized"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Algorithms returns every supported algorithm in a fixed order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmDifflib, AlgorithmLevenshtein, AlgorithmTokenized}
}

// ParseAlgorithm maps user input to an Algorithm by case-insensitive
// substring: "lev" selects levenshtein, "token" selects tokenized and
// "diff" selects difflib. Anything else falls back to difflib with ok set
// to false so the caller can warn about it. Empty input is the default and
// reports ok.
func ParseAlgorithm(s string) (alg Algorithm, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case lower == "":
		return AlgorithmDifflib, true
	case strings.Contains(lower, "lev"):
		return AlgorithmLevenshtein, true
	case strings.Contains(lower, "token"):
		return AlgorithmTokenized, true
	case strings.Contains(lower, "diff"):
		return AlgorithmDifflib, true
	default:
		return AlgorithmDifflib, false
	}
}
