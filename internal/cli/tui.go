package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/planekit/regiontree/pkg/region"
)

// Browser styles
var (
	browserSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browserNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	browserDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	browserLeafStyle     = lipgloss.NewStyle().Foreground(colorGreen)
)

// browserRow is one visible line of the tree view.
type browserRow struct {
	node  *region.Node
	depth int
}

// TreeBrowserModel is the bubbletea model for interactive tree browsing.
// It shows the partition tree with expand/collapse navigation and a leaf
// table view toggled with tab.
type TreeBrowserModel struct {
	Scene string
	Root  *region.Node

	expanded  map[*region.Node]bool
	rows      []browserRow
	cursor    int
	height    int
	offset    int
	leavesTab bool
}

// NewTreeBrowserModel creates a browser over the given tree with the
// root expanded.
func NewTreeBrowserModel(scene string, root *region.Node) TreeBrowserModel {
	m := TreeBrowserModel{
		Scene:    scene,
		Root:     root,
		expanded: map[*region.Node]bool{root: true},
		height:   15,
	}
	m.rebuild()
	return m
}

// rebuild recomputes the visible rows from the expansion state.
func (m *TreeBrowserModel) rebuild() {
	m.rows = m.rows[:0]
	var walk func(n *region.Node, depth int)
	walk = func(n *region.Node, depth int) {
		m.rows = append(m.rows, browserRow{node: n, depth: depth})
		if !m.expanded[n] {
			return
		}
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	if m.Root != nil {
		walk(m.Root, 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m TreeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m TreeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.leavesTab = !m.leavesTab
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ", "right", "l":
			if m.cursor < len(m.rows) {
				n := m.rows[m.cursor].node
				if !n.IsLeaf() {
					m.expanded[n] = !m.expanded[n]
					m.rebuild()
				}
			}
		case "left", "h":
			if m.cursor < len(m.rows) {
				n := m.rows[m.cursor].node
				if m.expanded[n] {
					m.expanded[n] = false
					m.rebuild()
				}
			}
		case "e":
			m.Root.Walk(func(n *region.Node) {
				if !n.IsLeaf() {
					m.expanded[n] = true
				}
			})
			m.rebuild()
		case "c":
			m.expanded = map[*region.Node]bool{m.Root: true}
			m.cursor = 0
			m.offset = 0
			m.rebuild()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m TreeBrowserModel) View() string {
	if m.leavesTab {
		return m.leavesView()
	}
	return m.treeView()
}

// treeView renders the expandable tree with a detail footer for the
// selected node.
func (m TreeBrowserModel) treeView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Region Tree: " + m.Scene))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  e/c all  tab leaves  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		n := row.node

		glyph := "•"
		if !n.IsLeaf() {
			glyph = "▸"
			if m.expanded[n] {
				glyph = "▾"
			}
		}

		line := strings.Repeat("  ", row.depth) + glyph + " " + nodeLabel(n)

		switch {
		case i == m.cursor:
			b.WriteString(browserSelectedStyle.Render(line))
		case n.IsLeaf():
			b.WriteString(browserLeafStyle.Render(line))
		default:
			b.WriteString(browserNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.cursor < len(m.rows) {
		b.WriteString(m.detailView(m.rows[m.cursor].node))
	}
	b.WriteString(browserDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}

// detailView renders the footer for the selected node.
func (m TreeBrowserModel) detailView(n *region.Node) string {
	var b strings.Builder
	b.WriteString(browserDimStyle.Render("  area ") + StyleValue.Render(fmt.Sprintf("%.3f", n.Area)))
	b.WriteString(browserDimStyle.Render("  angle ") + StyleValue.Render(formatAngle(n.Angle)))
	if n.MergeKey != "" {
		b.WriteString(browserDimStyle.Render("  unit ") + StyleHighlight.Render(n.MergeKey))
	}
	if len(n.Connectivity) > 0 {
		b.WriteString(browserDimStyle.Render("  adj ") + StyleValue.Render(strings.Join(n.Connectivity, ", ")))
	}
	b.WriteString("\n")
	return b.String()
}

// leavesView renders all leaves as a table.
func (m TreeBrowserModel) leavesView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Leaves: " + m.Scene))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render("tab tree view  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for _, leaf := range m.Root.Leaves() {
		unit := leaf.MergeKey
		if unit == "" {
			unit = "—"
		}
		adj := "—"
		if len(leaf.Connectivity) > 0 {
			adj = strings.Join(leaf.Connectivity, ", ")
		}
		rows = append(rows, []string{leaf.ID, fmt.Sprintf("%.3f", leaf.Area), formatAngle(leaf.Angle), unit, adj})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Region", "Area", "Angle", "Unit", "Neighbors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// nodeLabel is the single-line summary shown in the tree view.
func nodeLabel(n *region.Node) string {
	label := fmt.Sprintf("%s  %.3f", n.ID, n.Area)
	if n.IsLeaf() && n.MergeKey != "" {
		label += "  " + n.MergeKey
	}
	return label
}

// formatAngle renders a radian angle as integer degrees.
func formatAngle(rad float64) string {
	return fmt.Sprintf("%.0f°", rad*180/math.Pi)
}
