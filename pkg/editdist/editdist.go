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

// Package editdist provides the edit-distance primitives used by the
// normalized edit-distance matcher. A provider is resolved by name once at
// startup and injected into the matcher.
package editdist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/hbollon/go-edlib"
)

const (
	ProviderEdlib    = "edlib"
	ProviderAgnivade = "agnivade"
	ProviderNone     = "none"
)

var ErrUnknownProvider = errors.New("unknown edit distance provider")

// Distancer returns the Levenshtein distance between two strings, counted
// in runes.
type Distancer interface {
	Distance(a, b string) int
}

// Func adapts a plain distance function to the Distancer interface.
type Func func(a, b string) int

func (f Func) Distance(a, b string) int {
	return f(a, b)
}

var (
	// Edlib is backed by go-edlib and is the default provider.
	Edlib Distancer = Func(edlib.LevenshteinDistance)
	// Agnivade is backed by agnivade/levenshtein.
	Agnivade Distancer = Func(levenshtein.ComputeDistance)
)

// Providers lists the names accepted by Resolve.
func Providers() []string {
	return []string{ProviderEdlib, ProviderAgnivade, ProviderNone}
}

// Resolve maps a provider name to its Distancer. An empty name selects the
// default provider. ProviderNone disables the capability and returns a nil
// Distancer with no error; callers that need edit distance must treat that
// as a missing capability.
func Resolve(name string) (Distancer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderEdlib:
		return Edlib, nil
	case ProviderAgnivade:
		return Agnivade, nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)",
			ErrUnknownProvider, name, strings.Join(Providers(), ", "))
	}
}
