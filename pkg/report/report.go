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

// Package report writes a similarity report to an output sink in one of
// several formats. Part videos are either skipped or tagged, depending on
// the configured policy.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaparooProject/namematch/pkg/matcher"
	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	PartVideosSkip = "skip"
	PartVideosShow = "show"
)

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatTable, FormatJSON, FormatCSV}
}

// ColorModes returns the supported color settings.
func ColorModes() []string {
	return []string{ColorAuto, ColorAlways, ColorNever}
}

// PartVideoPolicies returns the supported part video policies.
func PartVideoPolicies() []string {
	return []string{PartVideosSkip, PartVideosShow}
}

const partTag = "[part]"

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrUnknownOption = errors.New("unknown report option")
)

type Options struct {
	Format     string
	Color      string
	PartVideos string
}

// Summary counts what was written. Sources whose name is a part video and
// were dropped by the skip policy are counted in SkippedParts only.
type Summary struct {
	Sources      int
	Matches      int
	SkippedParts int
}

func (s Summary) String() string {
	msg := fmt.Sprintf("%s %s with %s %s",
		humanize.Comma(int64(s.Sources)), plural(s.Sources, "source", "sources"),
		humanize.Comma(int64(s.Matches)), plural(s.Matches, "match", "matches"))
	if s.SkippedParts > 0 {
		msg += fmt.Sprintf(", %s part %s skipped",
			humanize.Comma(int64(s.SkippedParts)), plural(s.SkippedParts, "video", "videos"))
	}
	return msg
}

type Reporter struct {
	out       io.Writer
	format    string
	colorize  bool
	showParts bool
}

func New(out io.Writer, opts Options) (*Reporter, error) {
	r := &Reporter{out: out}

	switch opts.Format {
	case "", FormatText:
		r.format = FormatText
	case FormatTable, FormatJSON, FormatCSV:
		r.format = opts.Format
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Format)
	}

	switch opts.Color {
	case "", ColorAuto:
		r.colorize = ShouldColorize(out)
	case ColorAlways:
		r.colorize = true
	case ColorNever:
		r.colorize = false
	default:
		return nil, fmt.Errorf("%w: color %s", ErrUnknownOption, opts.Color)
	}

	switch opts.PartVideos {
	case "", PartVideosSkip:
		r.showParts = false
	case PartVideosShow:
		r.showParts = true
	default:
		return nil, fmt.Errorf("%w: part videos %s", ErrUnknownOption, opts.PartVideos)
	}

	return r, nil
}

// ShouldColorize reports whether w is a terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Write renders rep in the configured format.
func (r *Reporter) Write(rep *matcher.Report) (Summary, error) {
	results, summary := r.filter(rep)

	var err error
	switch r.format {
	case FormatTable:
		err = r.writeTable(results, summary)
	case FormatJSON:
		err = r.writeJSON(results)
	case FormatCSV:
		err = r.writeCSV(results)
	default:
		err = r.writeText(results, summary)
	}
	if err != nil {
		return summary, fmt.Errorf("failed to write %s report: %w", r.format, err)
	}
	return summary, nil
}

func (r *Reporter) filter(rep *matcher.Report) ([]matcher.Result, Summary) {
	var summary Summary
	results := make([]matcher.Result, 0, len(rep.Results))
	for _, res := range rep.Results {
		if !r.showParts && matcher.IsPartVideo(res.Source.Name) {
			summary.SkippedParts++
			continue
		}
		summary.Sources++
		summary.Matches += len(res.Matches)
		results = append(results, res)
	}
	return results, summary
}

func (r *Reporter) paint(s string, colors ...text.Color) string {
	if !r.colorize {
		return s
	}
	return text.Colors(colors).Sprint(s)
}

func (r *Reporter) tag(name string) string {
	if r.showParts && matcher.IsPartVideo(name) {
		return " " + r.paint(partTag, text.FgYellow)
	}
	return ""
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

func (r *Reporter) writeText(results []matcher.Result, summary Summary) error {
	var b strings.Builder
	if len(results) == 0 {
		b.WriteString("No similar names found.\n")
	}
	for _, res := range results {
		b.WriteString(r.paint(res.Source.Name, text.Bold))
		b.WriteString(r.tag(res.Source.Name))
		b.WriteByte('\n')
		for _, m := range res.Matches {
			fmt.Fprintf(&b, "  %s  %s%s\n",
				r.paint(formatScore(m.Score), text.FgCyan),
				m.Candidate.Name,
				r.tag(m.Candidate.Name))
		}
	}
	b.WriteString(r.paint(summary.String(), text.Faint))
	b.WriteByte('\n')

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Reporter) writeTable(results []matcher.Result, summary Summary) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Source", "Match", "Score", "Part"})
	for _, res := range results {
		for _, m := range res.Matches {
			tw.AppendRow(table.Row{
				res.Source.Name,
				m.Candidate.Name,
				formatScore(m.Score),
				partLabel(pairIsPart(res.Source, m)),
			})
		}
	}
	tw.SetCaption(summary.String())
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(r.out, tw.Render())
	return err
}

// pairIsPart flags a source and match pair when either name is a part
// video. Every format uses it for per-pair flags.
func pairIsPart(src matcher.Candidate, m matcher.Match) bool {
	return matcher.IsPartVideo(src.Name) || matcher.IsPartVideo(m.Candidate.Name)
}

func partLabel(part bool) string {
	if part {
		return "yes"
	}
	return ""
}

type jsonMatch struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Score     float64 `json:"score"`
	PartVideo bool    `json:"part_video"`
}

type jsonResult struct {
	Source    string      `json:"source"`
	Path      string      `json:"path"`
	Matches   []jsonMatch `json:"matches"`
	PartVideo bool        `json:"part_video"`
}

func (r *Reporter) writeJSON(results []matcher.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Source:    res.Source.Name,
			Path:      res.Source.Path,
			PartVideo: matcher.IsPartVideo(res.Source.Name),
			Matches:   make([]jsonMatch, 0, len(res.Matches)),
		}
		for _, m := range res.Matches {
			jr.Matches = append(jr.Matches, jsonMatch{
				Name:      m.Candidate.Name,
				Path:      m.Candidate.Path,
				Score:     m.Score,
				PartVideo: pairIsPart(res.Source, m),
			})
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// Row is one source and match pair in the CSV output.
type Row struct {
	Source    string  `csv:"source"`
	Match     string  `csv:"match"`
	Score     float64 `csv:"score"`
	PartVideo bool    `csv:"part_video"`
}

func (r *Reporter) writeCSV(results []matcher.Result) error {
	rows := make([]*Row, 0, len(results))
	for _, res := range results {
		for _, m := range res.Matches {
			rows = append(rows, &Row{
				Source:    res.Source.Path,
				Match:     m.Candidate.Path,
				Score:     m.Score,
				PartVideo: pairIsPart(res.Source, m),
			})
		}
	}
	if err := gocsv.Marshal(rows, r.out); err != nil {
		return fmt.Errorf("failed to marshal csv: %w", err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
