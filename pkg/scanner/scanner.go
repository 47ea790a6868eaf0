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

// Package scanner gathers the candidates to compare from a directory,
// applying the suffix, hidden, directory and ignore filters before any
// matching happens.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/ZaparooProject/namematch/pkg/helpers/syncutil"
	"github.com/ZaparooProject/namematch/pkg/matcher"
	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

var ErrNotDirectory = errors.New("not a directory")

type Options struct {
	// Suffixes keeps only names ending in one of these, compared
	// case-insensitively. Empty keeps everything.
	Suffixes []string
	// Ignore drops names matching any of these patterns.
	Ignore         []*regexp.Regexp
	Recursive      bool
	IncludeDirs    bool
	IncludeHidden  bool
	StripExtension bool
	FollowSymlinks bool
}

type Scanner struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// Scan lists the candidates under root sorted by path. Recursive scans of
// the OS filesystem use fastwalk; other filesystems use afero.Walk.
func (s *Scanner) Scan(ctx context.Context, root string, opts *Options) ([]matcher.Candidate, error) {
	root = filepath.Clean(root)

	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotDirectory, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var candidates []matcher.Candidate
	switch {
	case !opts.Recursive:
		candidates, err = s.scanDir(ctx, root, opts)
	case s.isOsFs():
		candidates, err = scanFastwalk(ctx, root, opts)
	default:
		candidates, err = s.scanAferoWalk(ctx, root, opts)
	}
	if err != nil {
		return nil, err
	}

	slices.SortFunc(candidates, func(a, b matcher.Candidate) int {
		return strings.Compare(a.Path, b.Path)
	})

	log.Debug().
		Str("root", root).
		Bool("recursive", opts.Recursive).
		Int("candidates", len(candidates)).
		Msg("scan complete")

	return candidates, nil
}

func (s *Scanner) isOsFs() bool {
	_, ok := s.fs.(*afero.OsFs)
	return ok
}

func (s *Scanner) scanDir(ctx context.Context, root string, opts *Options) ([]matcher.Candidate, error) {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	var out []matcher.Candidate
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan cancelled: %w", err)
		}
		if c, ok := opts.candidate(filepath.Join(root, entry.Name()), entry.Name(), entry.IsDir()); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Scanner) scanAferoWalk(ctx context.Context, root string, opts *Options) ([]matcher.Candidate, error) {
	var out []matcher.Candidate
	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("scan cancelled: %w", err)
		}
		if path == root {
			return nil
		}
		if info.IsDir() && opts.skipDir(info.Name()) {
			return filepath.SkipDir
		}
		if c, ok := opts.candidate(path, info.Name(), info.IsDir()); ok {
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return out, nil
}

func scanFastwalk(ctx context.Context, root string, opts *Options) ([]matcher.Candidate, error) {
	conf := fastwalk.Config{
		Follow: opts.FollowSymlinks,
	}

	var (
		mu  syncutil.Mutex
		out []matcher.Candidate
	)
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("scan cancelled: %w", err)
		}
		if path == root {
			return nil
		}
		if d.IsDir() && opts.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		isDir := d.IsDir()
		if !isDir && d.Type()&fs.ModeSymlink != 0 && opts.FollowSymlinks {
			if fi, statErr := fastwalk.StatDirEntry(path, d); statErr == nil {
				isDir = fi.IsDir()
			}
		}
		c, ok := opts.candidate(path, d.Name(), isDir)
		if !ok {
			return nil
		}
		mu.Lock()
		out = append(out, c)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return out, nil
}

// skipDir reports whether a directory should not be descended into.
func (o *Options) skipDir(name string) bool {
	return !o.IncludeHidden && isHidden(name)
}

// candidate applies the filters to one entry and derives its name.
func (o *Options) candidate(path, base string, isDir bool) (matcher.Candidate, bool) {
	if !o.IncludeHidden && isHidden(base) {
		return matcher.Candidate{}, false
	}
	if isDir && !o.IncludeDirs {
		return matcher.Candidate{}, false
	}

	name := DeriveName(base, o.StripExtension && !isDir)
	if !isDir && !HasSuffix(base, o.Suffixes) {
		return matcher.Candidate{}, false
	}
	for _, re := range o.Ignore {
		if re.MatchString(name) {
			return matcher.Candidate{}, false
		}
	}

	return matcher.Candidate{Path: path, Name: name, IsDir: isDir}, true
}

// DeriveName returns the comparison name for a path element: NFC
// normalized and, if requested, without its extension. Names that are
// only an extension, like ".profile", are kept whole.
func DeriveName(base string, stripExt bool) string {
	name := norm.NFC.String(base)
	if stripExt {
		if ext := filepath.Ext(name); ext != "" && ext != name {
			name = strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// HasSuffix reports whether base ends in one of suffixes, ignoring case.
// An empty list accepts everything.
func HasSuffix(base string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	lower := strings.ToLower(norm.NFC.String(base))
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
