// Package ui renders vend output: message lines, headings, aligned
// key/value blocks and tables. Colour is dropped when the session is not
// interactive so transcripts stay plain text.
package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorAccent = lipgloss.Color("99")
	colorError  = lipgloss.Color("204")
	colorWarn   = lipgloss.Color("214")
	colorMuted  = lipgloss.Color("243")
	colorBorder = lipgloss.Color("238")
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

func Bold(s string) string { return boldStyle.Render(s) }

// ErrorMsg renders "ERROR: <message>".
func ErrorMsg(format string, a ...any) string {
	return errorStyle.Render("ERROR:") + " " + fmt.Sprintf(format, a...)
}

// WarnMsg renders "! <message>".
func WarnMsg(format string, a ...any) string {
	return warnStyle.Render("!") + " " + fmt.Sprintf(format, a...)
}

// Heading renders title over a rule of '=' as wide as the title.
func Heading(title string) string {
	return boldStyle.Render(title) + "\n" + mutedStyle.Render(strings.Repeat("=", lipgloss.Width(title)))
}

// Pair is one line of a KeyValues block.
type Pair struct {
	key   string
	value string
}

func KV(key, value string) Pair {
	return Pair{key: key, value: value}
}

// KeyValues renders "key: value" lines with values aligned, each line
// newline terminated.
func KeyValues(indent string, pairs ...Pair) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p.key)+1)
	}

	var sb strings.Builder
	for _, p := range pairs {
		label := p.key + ":" + strings.Repeat(" ", width-lipgloss.Width(p.key)-1)
		sb.WriteString(indent + mutedStyle.Render(label) + " " + p.value + "\n")
	}
	return sb.String()
}

// Table renders rows under headers with rounded borders. Columns whose
// cells are all amounts or counts are right aligned.
func Table(headers []string, rows [][]string) string {
	numeric := numericColumns(len(headers), rows)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if col < len(numeric) && numeric[col] {
				s = s.Align(lipgloss.Right)
			}
			if row == table.HeaderRow {
				return s.Foreground(colorAccent).Bold(true)
			}
			return s
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}

func numericColumns(n int, rows [][]string) []bool {
	numeric := make([]bool, n)
	for col := range numeric {
		numeric[col] = len(rows) > 0
		for _, row := range rows {
			if col >= len(row) || !isAmount(row[col]) {
				numeric[col] = false
				break
			}
		}
	}
	return numeric
}

// isAmount reports whether s is a count or a currency amount such as
// "12", "£0.30" or "-".
func isAmount(s string) bool {
	if s == "-" {
		return true
	}
	s = strings.TrimLeftFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != '-' {
			return false
		}
	}
	return true
}
