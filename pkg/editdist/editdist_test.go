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

package editdist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantNil bool
		wantErr bool
	}{
		{name: "empty selects default", input: ""},
		{name: "edlib", input: "edlib"},
		{name: "case and whitespace ignored", input: "  AgniVade "},
		{name: "none disables capability", input: "none", wantNil: true},
		{name: "unknown provider", input: "hamming", wantNil: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := Resolve(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownProvider)
			} else {
				require.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, d)
			} else {
				assert.NotNil(t, d)
			}
		})
	}
}

func TestProvidersKnownDistances(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"same", "same", 0},
		{"Movie Part 1", "Movie Part 2", 1},
		{"café", "cafe", 1},
	}

	for _, provider := range []Distancer{Edlib, Agnivade} {
		for _, c := range cases {
			assert.Equal(t, c.want, provider.Distance(c.a, c.b), "%q vs %q", c.a, c.b)
		}
	}
}

// TestPropertyProvidersAgree verifies both providers compute the same distance.
func TestPropertyProvidersAgree(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-zA-Z0-9 _.-]{0,20}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-zA-Z0-9 _.-]{0,20}`).Draw(t, "b")

		if Edlib.Distance(a, b) != Agnivade.Distance(a, b) {
			t.Fatalf("providers disagree on %q vs %q", a, b)
		}
	})
}
