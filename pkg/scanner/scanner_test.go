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

package scanner

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/ZaparooProject/namematch/pkg/matcher"
	"github.com/ZaparooProject/namematch/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	h := helpers.NewMemoryFS()
	require.NoError(t, h.CreateFiles("/media"))
	require.NoError(t, h.CreateFiles("/", files...))
	return h.Fs
}

func paths(cs []matcher.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Path)
	}
	return out
}

func names(cs []matcher.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

var testTree = []string{
	"/media/a.mp4",
	"/media/B.MP4",
	"/media/notes.txt",
	"/media/.hidden.mp4",
	"/media/sub/c.mp4",
	"/media/.cache/d.mp4",
}

func TestScan_NonRecursive(t *testing.T) {
	t.Parallel()

	s := New(newMemFs(t, testTree...))
	got, err := s.Scan(context.Background(), "/media", &Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/media/B.MP4", "/media/a.mp4", "/media/notes.txt"}, paths(got))
	for _, c := range got {
		assert.False(t, c.IsDir)
	}
}

func TestScan_SuffixFilterIgnoresCase(t *testing.T) {
	t.Parallel()

	s := New(newMemFs(t, testTree...))
	got, err := s.Scan(context.Background(), "/media", &Options{Suffixes: []string{".mp4"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"B.MP4", "a.mp4"}, names(got))
}

func TestScan_IncludeDirs(t *testing.T) {
	t.Parallel()

	s := New(newMemFs(t, testTree...))
	got, err := s.Scan(context.Background(), "/media", &Options{
		Suffixes:    []string{".mp4"},
		IncludeDirs: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/media/B.MP4", "/media/a.mp4", "/media/sub"}, paths(got))
	assert.True(t, got[2].IsDir)
}

func TestScan_IncludeHidden(t *testing.T) {
	t.Parallel()

	s := New(newMemFs(t, testTree...))
	got, err := s.Scan(context.Background(), "/media", &Options{
		Suffixes:      []string{".mp4"},
		IncludeHidden: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{".hidden.mp4", "B.MP4", "a.mp4"}, names(got))
}

func TestScan_RecursiveMemFs(t *testing.T) {
	t.Parallel()

	s := New(newMemFs(t, testTree...))
	got, err := s.Scan(context.Background(), "/media", &Options{
		Suffixes:  []string{".mp4"},
		Recursive: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/media/B.MP4", "/media/a.mp4", "/media/sub/c.mp4"}, paths(got))
}

func TestScan_MediaDirectory(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	require.NoError(t, h.CreateMediaDirectory("/media"))

	got, err := New(h.Fs).Scan(context.Background(), "/media", &Options{
		Recursive:   true,
		IncludeDirs: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/media/Archived",
		"/media/Holiday 2019 (1).jpg",
		"/media/Holiday 2019 (2).jpg",
		"/media/Movies",
		"/media/Movies/Documentary.mkv",
		"/media/Movies/Movie Part 1.mp4",
		"/media/Movies/Movie Part 2.mp4",
		"/media/Reports",
		"/media/Reports/Report_Final.txt",
		"/media/Reports/Report_Final_v2.txt",
		"/media/notes.txt",
	}, paths(got))
}

func TestScan_StripExtension(t *testing.T) {
	t.Parallel()

	s := New(newMemFs(t, testTree...))
	got, err := s.Scan(context.Background(), "/media", &Options{
		Suffixes:       []string{".mp4"},
		StripExtension: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "a"}, names(got))
	assert.Equal(t, "/media/a.mp4", got[1].Path)
}

func TestScan_Ignore(t *testing.T) {
	t.Parallel()

	s := New(newMemFs(t, testTree...))
	got, err := s.Scan(context.Background(), "/media", &Options{
		Ignore: []*regexp.Regexp{regexp.MustCompile(`(?i)\.mp4$`)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"notes.txt"}, names(got))
}

func TestScan_NormalizesNames(t *testing.T) {
	t.Parallel()

	decomposed := "/media/cafe\u0301.mp4"
	s := New(newMemFs(t, decomposed))
	got, err := s.Scan(context.Background(), "/media", &Options{})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "caf\u00e9.mp4", got[0].Name)
	assert.Equal(t, decomposed, got[0].Path)
}

func TestScan_Errors(t *testing.T) {
	t.Parallel()

	s := New(newMemFs(t, testTree...))

	_, err := s.Scan(context.Background(), "/media/a.mp4", &Options{})
	require.ErrorIs(t, err, ErrNotDirectory)

	_, err = s.Scan(context.Background(), "/missing", &Options{})
	require.ErrorIs(t, err, ErrNotDirectory)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(newMemFs(t, testTree...))
	for _, recursive := range []bool{false, true} {
		_, err := s.Scan(ctx, "/media", &Options{Recursive: recursive})
		require.ErrorIs(t, err, context.Canceled)
	}
}

func TestScan_RecursiveOsFs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	h := helpers.NewOSFS()
	require.NoError(t, h.CreateFiles(root,
		"x1.mkv", "sub/x2.mkv", "sub/deeper/x3.MKV", ".git/x4.mkv", "readme.md"))

	s := New(h.Fs)
	got, err := s.Scan(context.Background(), root, &Options{
		Suffixes:    []string{".mkv"},
		Recursive:   true,
		IncludeDirs: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "sub"),
		filepath.Join(root, "sub", "deeper"),
		filepath.Join(root, "sub", "deeper", "x3.MKV"),
		filepath.Join(root, "sub", "x2.mkv"),
		filepath.Join(root, "x1.mkv"),
	}, paths(got))
}

func TestDeriveName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base  string
		want  string
		strip bool
	}{
		{base: "Movie Part 1.mp4", want: "Movie Part 1.mp4"},
		{base: "Movie Part 1.mp4", strip: true, want: "Movie Part 1"},
		{base: "archive.tar.gz", strip: true, want: "archive.tar"},
		{base: ".profile", strip: true, want: ".profile"},
		{base: "noext", strip: true, want: "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DeriveName(tt.base, tt.strip))
		})
	}
}

func TestHasSuffix(t *testing.T) {
	t.Parallel()

	assert.True(t, HasSuffix("anything", nil))
	assert.True(t, HasSuffix("clip.MP4", []string{".txt", ".mp4"}))
	assert.False(t, HasSuffix("clip.mp4.part", []string{".mp4"}))
}
