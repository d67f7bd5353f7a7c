package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pickHeight = 12

// Pick lets the user choose a row, reading keys from in (stdin when nil),
// and returns its index, or -1 when they back out. Rows 1-9 can also be
// chosen by number. A non-interactive session only gets the static Table
// on w, and -1.
func Pick(in io.Reader, w io.Writer, headers []string, rows [][]string) (int, error) {
	if IsNoInteraction() || len(rows) == 0 {
		fmt.Fprintln(w, Table(headers, rows))
		return -1, nil
	}

	t := table.New(
		table.WithColumns(pickColumns(headers, rows)),
		table.WithRows(pickRows(rows)),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), pickHeight)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(colorAccent).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorBorder)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(styles)

	m := &pickModel{table: t, rows: len(rows), chosen: -1}
	if err := runProgram(in, m, "product picker"); err != nil {
		return -1, err
	}
	return m.chosen, nil
}

// pickColumns prefixes a "#" column and sizes every column to its widest
// cell.
func pickColumns(headers []string, rows [][]string) []table.Column {
	columns := []table.Column{{Title: "#", Width: len(strconv.Itoa(len(rows))) + 1}}
	for i, h := range headers {
		width := lipgloss.Width(h)
		for _, row := range rows {
			if i < len(row) {
				width = max(width, lipgloss.Width(row[i]))
			}
		}
		columns = append(columns, table.Column{Title: h, Width: width + 2})
	}
	return columns
}

func pickRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		out[i] = append(table.Row{strconv.Itoa(i + 1)}, row...)
	}
	return out
}

type pickModel struct {
	table  table.Model
	rows   int
	chosen int
}

func (m *pickModel) Init() tea.Cmd { return nil }

func (m *pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.chosen = m.table.Cursor()
			return m, tea.Quit
		}
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= m.rows {
			m.chosen = n - 1
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *pickModel) View() string {
	return m.table.View() + "\n" + mutedStyle.Render("↑/↓ move  1-9 or enter buy  q back") + "\n"
}
