// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/fe-jhw/reactfc/services/lint"
	"github.com/fe-jhw/reactfc/services/order"
)

// Palette.
var (
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorInfo    = lipgloss.Color("#20B9B4")
	ColorMuted   = lipgloss.Color("#5C7A84")
)

// Icon provides status icons.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconInfo    Icon = "•"
)

// ColorMode selects when the reporter emits ANSI colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// styles are bound to one writer's renderer.
type styles struct {
	file    lipgloss.Style
	pos     lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

// Reporter renders lint results as human-readable text.
//
// Thread Safety: Not safe for concurrent use; callers serialize writes.
type Reporter struct {
	w      io.Writer
	quiet  bool
	styles styles
}

// NewReporter creates a reporter writing to w.
//
// Description:
//
//	With ColorAuto, colors are enabled only when w is a terminal. Quiet
//	hides warnings and infos.
func NewReporter(w io.Writer, mode ColorMode, quiet bool) *Reporter {
	renderer := lipgloss.NewRenderer(w)
	switch {
	case mode == ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	case mode == ColorNever, !isTerminal(w):
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Reporter{
		w:     w,
		quiet: quiet,
		styles: styles{
			file:    renderer.NewStyle().Bold(true).Underline(true),
			pos:     renderer.NewStyle().Foreground(ColorMuted),
			err:     renderer.NewStyle().Foreground(ColorError),
			warn:    renderer.NewStyle().Foreground(ColorWarning),
			info:    renderer.NewStyle().Foreground(ColorInfo),
			success: renderer.NewStyle().Foreground(ColorSuccess),
			muted:   renderer.NewStyle().Foreground(ColorMuted),
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Results prints every file that has something to show.
func (r *Reporter) Results(results []*lint.LintResult) {
	for _, res := range results {
		if res != nil {
			r.Result(res)
		}
	}
}

// Result prints one file block, or nothing for a clean file.
//
// Example:
//
//	src/Profile.jsx
//	  7:3  error  The 'useState' block is before a 'custom hook' block. ...  reactfc/order
//	              Expected order: useState → custom hook → ...
func (r *Reporter) Result(res *lint.LintResult) {
	issues := res.Errors
	if !r.quiet {
		issues = res.AllIssues()
	}
	notes := res.ParseErrors
	if r.quiet {
		notes = nil
	}
	if len(issues) == 0 && !res.Failed() && len(notes) == 0 {
		return
	}

	fmt.Fprintln(r.w, r.styles.file.Render(res.FilePath))

	if res.Failed() {
		fmt.Fprintf(r.w, "  %s %s\n", r.styles.err.Render(string(IconError)), res.Error)
	}
	for _, note := range notes {
		fmt.Fprintf(r.w, "  %s %s\n", r.styles.warn.Render(string(IconWarning)), r.styles.muted.Render(note))
	}

	width := 0
	for _, issue := range issues {
		if n := len(position(issue)); n > width {
			width = n
		}
	}
	for _, issue := range issues {
		r.issue(issue, width)
	}
	fmt.Fprintln(r.w)
}

func position(issue lint.LintIssue) string {
	return fmt.Sprintf("%d:%d", issue.Line, issue.Column)
}

func (r *Reporter) issue(issue lint.LintIssue, width int) {
	pos := fmt.Sprintf("%-*s", width, position(issue))
	sev := fmt.Sprintf("%-7s", issue.Severity.String())

	var sevStyle lipgloss.Style
	switch issue.Severity {
	case lint.SeverityError:
		sevStyle = r.styles.err
	case lint.SeverityWarning:
		sevStyle = r.styles.warn
	default:
		sevStyle = r.styles.info
	}

	lines := strings.Split(issue.Message, "\n")
	prefix := "  " + pos + "  " + sev + "  "
	fmt.Fprintf(r.w, "  %s  %s  %s  %s\n",
		r.styles.pos.Render(pos),
		sevStyle.Render(sev),
		lines[0],
		r.styles.muted.Render(issue.Rule+" ("+issue.Component+")"))

	indent := strings.Repeat(" ", len([]rune(prefix)))
	for _, line := range lines[1:] {
		fmt.Fprintf(r.w, "%s%s\n", indent, r.styles.muted.Render(line))
	}
}

// Summary prints the closing line of a run.
func (r *Reporter) Summary(s lint.Summary) {
	checked := humanize.Comma(int64(s.Files)) + " " + plural(s.Files, "file", "files") + " checked"
	if s.CachedFiles > 0 {
		checked += fmt.Sprintf(" (%s cached)", humanize.Comma(int64(s.CachedFiles)))
	}

	problems := s.ErrorCount + s.WarningCount
	if !r.quiet {
		problems += s.InfoCount
	}

	switch {
	case problems == 0 && s.FailedFiles == 0:
		fmt.Fprintf(r.w, "%s %s, no problems\n", r.styles.success.Render(string(IconSuccess)), checked)
		return

	case s.ErrorCount > 0 || s.FailedFiles > 0:
		fmt.Fprint(r.w, r.styles.err.Render(string(IconError)))

	default:
		fmt.Fprint(r.w, r.styles.warn.Render(string(IconWarning)))
	}

	fmt.Fprintf(r.w, " %s %s (%s, %s)",
		humanize.Comma(int64(problems)), plural(problems, "problem", "problems"),
		countOf(s.ErrorCount, "error", "errors"),
		countOf(s.WarningCount, "warning", "warnings"))
	if s.FailedFiles > 0 {
		fmt.Fprintf(r.w, ", %s could not be checked", countOf(s.FailedFiles, "file", "files"))
	}
	fmt.Fprintf(r.w, " · %s\n", checked)
}

// Order prints the canonical order as a numbered list.
func (r *Reporter) Order(categories []order.Category) {
	for i, c := range categories {
		fmt.Fprintf(r.w, "%d. %-24s %s\n", i+1, c.Label(), r.styles.muted.Render(c.String()))
	}
}

// Error prints a failure message.
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.w, "%s %s\n", r.styles.err.Render(string(IconError)), err)
}

// Info prints a muted status line.
func (r *Reporter) Info(text string) {
	fmt.Fprintln(r.w, r.styles.muted.Render(text))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func countOf(n int, one, many string) string {
	return humanize.Comma(int64(n)) + " " + plural(n, one, many)
}
