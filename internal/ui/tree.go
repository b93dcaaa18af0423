package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/token"
)

// TreeNode is a displayable syntax tree node
type TreeNode struct {
	Node     *ast.Node
	Depth    int
	Expanded bool
	Children []*TreeNode
	Parent   *TreeNode
}

// TreeModel is the bubbletea model for browsing a syntax tree
type TreeModel struct {
	root       *ast.Node
	path       string
	nodes      []*TreeNode // Flattened list of visible nodes
	allNodes   []*TreeNode
	cursor     int
	ready      bool
	width      int
	height     int
	showTokens bool
	keys       treeKeyMap
	styles     treeStyles
}

type treeKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Toggle       key.Binding
	ToggleTokens key.Binding
	Quit         key.Binding
}

type treeStyles struct {
	selected  lipgloss.Style
	rule      lipgloss.Style
	keyword   lipgloss.Style
	ident     lipgloss.Style
	literal   lipgloss.Style
	punct     lipgloss.Style
	tree      lipgloss.Style
	dim       lipgloss.Style
	statusBar lipgloss.Style
	helpBar   lipgloss.Style
}

func defaultTreeKeyMap() treeKeyMap {
	return treeKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle"),
		),
		ToggleTokens: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle tokens"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func defaultTreeStyles() treeStyles {
	return treeStyles{
		selected:  lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true),
		rule:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		keyword:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		ident:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		literal:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		punct:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		tree:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		statusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
		helpBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("235")),
	}
}

// NewTreeModel creates a browser for the syntax tree of the file at path
func NewTreeModel(root *ast.Node, path string) TreeModel {
	m := TreeModel{
		root:       root,
		path:       path,
		showTokens: true,
		keys:       defaultTreeKeyMap(),
		styles:     defaultTreeStyles(),
	}
	m.buildNodes()
	return m
}

// buildNodes constructs the display tree from the syntax tree
func (m *TreeModel) buildNodes() {
	m.allNodes = nil
	if m.root != nil {
		m.allNodes = append(m.allNodes, m.buildNode(m.root, nil, 0))
	}
	m.updateVisibleNodes()
}

func (m *TreeModel) buildNode(n *ast.Node, parent *TreeNode, depth int) *TreeNode {
	node := &TreeNode{
		Node:     n,
		Depth:    depth,
		Expanded: depth < 3,
		Parent:   parent,
	}
	for _, c := range n.Children() {
		if !m.displayed(c) {
			continue
		}
		node.Children = append(node.Children, m.buildNode(c, node, depth+1))
	}
	return node
}

func (m *TreeModel) displayed(n *ast.Node) bool {
	if !n.IsTerminal() {
		return true
	}
	tok := n.Token()
	return m.showTokens && tok != nil && tok.Kind != token.EOF
}

func (m *TreeModel) updateVisibleNodes() {
	m.nodes = nil
	for _, node := range m.allNodes {
		m.collectVisible(node)
	}

	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *TreeModel) collectVisible(node *TreeNode) {
	m.nodes = append(m.nodes, node)

	if node.Expanded {
		for _, child := range node.Children {
			m.collectVisible(child)
		}
	}
}

// Init initializes the model
func (m TreeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Left):
			if len(m.nodes) > 0 {
				node := m.nodes[m.cursor]
				if !node.Expanded && node.Parent != nil {
					// collapsing a closed node jumps to its parent
					for i, n := range m.nodes {
						if n == node.Parent {
							m.cursor = i
							break
						}
					}
				}
				m.nodes[m.cursor].Expanded = false
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Right):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = true
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Toggle):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = !m.nodes[m.cursor].Expanded
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.ToggleTokens):
			m.showTokens = !m.showTokens
			m.cursor = 0
			m.buildNodes()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	}

	return m, nil
}

// View renders the tree
func (m TreeModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Reserve space for the status and help bars
	footerHeight := 3
	treeHeight := m.height - footerHeight
	if treeHeight < 5 {
		treeHeight = 5
	}

	var sb strings.Builder

	startIdx := 0
	if m.cursor >= treeHeight {
		startIdx = m.cursor - treeHeight + 1
	}
	endIdx := startIdx + treeHeight
	if endIdx > len(m.nodes) {
		endIdx = len(m.nodes)
	}

	for i := startIdx; i < endIdx; i++ {
		sb.WriteString(m.renderNode(m.nodes[i], i == m.cursor))
		sb.WriteString("\n")
	}
	for i := endIdx - startIdx; i < treeHeight; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if len(m.nodes) > 0 && m.cursor < len(m.nodes) {
		sb.WriteString(m.styles.statusBar.Width(m.width).Render(m.renderDetailLine(m.nodes[m.cursor])))
	} else {
		sb.WriteString(m.styles.statusBar.Width(m.width).Render(""))
	}
	sb.WriteString("\n")

	help := fmt.Sprintf(" ↑↓ navigate  ←→ collapse/expand  t tokens(%s)  q quit", boolToOnOff(m.showTokens))
	sb.WriteString(m.styles.helpBar.Width(m.width).Render(help))

	return sb.String()
}

func (m *TreeModel) renderNode(node *TreeNode, selected bool) string {
	var sb strings.Builder

	sb.WriteString(m.styles.tree.Render(strings.Repeat("  ", node.Depth)))

	if node.Parent != nil {
		connector := "├─ "
		if siblings := node.Parent.Children; siblings[len(siblings)-1] == node {
			connector = "└─ "
		}
		sb.WriteString(m.styles.tree.Render(connector))
	}

	if len(node.Children) > 0 {
		if node.Expanded {
			sb.WriteString(m.styles.dim.Render("▼ "))
		} else {
			sb.WriteString(m.styles.dim.Render("▶ "))
		}
	} else {
		sb.WriteString("  ")
	}

	content := m.label(node.Node)
	if selected {
		content = m.styles.selected.Render(content)
	}
	sb.WriteString(content)

	return sb.String()
}

func (m *TreeModel) label(n *ast.Node) string {
	if !n.IsTerminal() {
		return m.styles.rule.Render(n.Name()) + m.styles.dim.Render(fmt.Sprintf(" :%d", n.Line()))
	}
	tok := n.Token()
	var style lipgloss.Style
	switch tok.Kind {
	case token.Keyword:
		style = m.styles.keyword
	case token.Identifier:
		style = m.styles.ident
	case token.Literal:
		style = m.styles.literal
	default:
		style = m.styles.punct
	}
	return style.Render(tok.Text)
}

func (m *TreeModel) renderDetailLine(node *TreeNode) string {
	n := node.Node
	if n.IsTerminal() {
		tok := n.Token()
		return fmt.Sprintf(" %s  %s  Line: %d  Column: %d", n.Name(), tok.Text, tok.Line, tok.Column)
	}
	return fmt.Sprintf(" %s  %s  Lines: %d-%d  Children: %d",
		m.path, n.Name(), n.Line(), n.EndLine(), len(n.Children()))
}

func boolToOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// PrintTree writes the syntax tree as an indented outline, one node per
// line: rule names with their first line, terminals with their kind and
// text. EOF is omitted.
func PrintTree(w io.Writer, root *ast.Node, showTokens bool) error {
	var err error
	var write func(n *ast.Node, depth int)
	write = func(n *ast.Node, depth int) {
		if err != nil {
			return
		}
		indent := strings.Repeat("  ", depth)
		if n.IsTerminal() {
			tok := n.Token()
			if !showTokens || tok == nil || tok.Kind == token.EOF {
				return
			}
			_, err = fmt.Fprintf(w, "%s%s %q\n", indent, n.Name(), tok.Text)
			return
		}
		if _, err = fmt.Fprintf(w, "%s%s :%d\n", indent, n.Name(), n.Line()); err != nil {
			return
		}
		for _, c := range n.Children() {
			write(c, depth+1)
		}
	}
	write(root, 0)
	return err
}
