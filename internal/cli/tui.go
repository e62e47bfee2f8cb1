package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ermview/pkg/erm"
	"github.com/matzehuels/ermview/pkg/erm/entity"
)

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	listErrStyle = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file.erm>",
		Short: "Browse tables and columns interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.load(args[0])
			if err != nil {
				return err
			}
			m := NewBrowseModel(r.Diagram, c.Config.Output.Logical)
			_, err = tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			).Run()
			return err
		},
	}
}

// =============================================================================
// BrowseModel - Table list with a column drill-down
// =============================================================================

// BrowseModel is the bubbletea model behind the browse command. The list
// view shows every table; enter opens the column view for the table under
// the cursor.
type BrowseModel struct {
	Diagram *entity.Diagram
	Logical bool

	Cursor int
	Offset int
	Height int

	// Open is set while the column view is shown.
	Open    bool
	Columns []erm.ExpandedColumn
	Err     error
}

// NewBrowseModel creates a browser positioned on the first table.
func NewBrowseModel(d *entity.Diagram, logical bool) BrowseModel {
	return BrowseModel{Diagram: d, Logical: logical, Height: 15}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "left", "h", "backspace":
			if !m.Open {
				if msg.String() == "esc" {
					return m, tea.Quit
				}
				return m, nil
			}
			m.Open, m.Columns, m.Err = false, nil, nil
		case "up", "k":
			if !m.Open && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Open && m.Cursor < len(m.Diagram.DiagramWalkers.Tables)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if m.Open || len(m.Diagram.DiagramWalkers.Tables) == 0 {
				return m, nil
			}
			m.Open = true
			m.Columns, m.Err = erm.ExpandColumns(m.Diagram, m.current())
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m BrowseModel) current() entity.Table {
	return m.Diagram.DiagramWalkers.Tables[m.Cursor]
}

func (m BrowseModel) View() string {
	if m.Open {
		return m.columnsView()
	}
	return m.tablesView()
}

func (m BrowseModel) tablesView() string {
	var b strings.Builder
	tables := m.Diagram.DiagramWalkers.Tables

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s diagram", m.Diagram.DiagramSettings.Database)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ columns  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(tables))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := tables[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			tableLabel(t, m.Logical),
			fmt.Sprint(len(t.Columns.Items)),
			fmt.Sprint(len(t.Connections.Relationships)),
		})
	}

	tbl := newTable([]string{"", "Table", "Items", "Relationships"}, rows, func(row, col int) lipgloss.Style {
		if m.Offset+row == m.Cursor {
			return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
		}
		return lipgloss.NewStyle()
	})
	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(tables)), len(tables))))
	return b.String()
}

func (m BrowseModel) columnsView() string {
	var b strings.Builder
	t := m.current()

	b.WriteString(StyleTitle.Render(tableLabel(t, m.Logical)))
	if t.Description != "" {
		b.WriteString("  " + listDimStyle.Render(t.Description))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(listErrStyle.Render(iconError + " " + m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	cols := m.Columns
	tbl := newTable([]string{"Column", "Type", "PK", "NN", "References", "Group"}, browseColumnRows(cols, m.Logical),
		func(row, col int) lipgloss.Style {
			if col == 0 && row < len(cols) && cols[row].PrimaryKey {
				return StyleKey
			}
			if col == 5 {
				return StyleGroup
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

func browseColumnRows(cols []erm.ExpandedColumn, logical bool) [][]string {
	rows := make([][]string, 0, len(cols))
	for _, c := range cols {
		rows = append(rows, []string{
			columnLabel(c.NormalColumn, logical),
			columnType(c.NormalColumn),
			mark(c.PrimaryKey),
			mark(c.NotNull),
			deref(c.ReferredColumn),
			c.Group,
		})
	}
	return rows
}
