package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxTableWidth caps the rendered width of table output.
const maxTableWidth = 120

// Theme defines the color scheme for the TUI.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Border: lipgloss.NewStyle().Foreground(t.Primary),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// Table is one block of tabular output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Tabler is implemented by results that can render as tables.
type Tabler interface {
	Tables() []Table
}

// Lines lays the table out as padded text columns, header first.
func (t Table) Lines() []string {
	cols := len(t.Headers)
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}

	format := func(row []string) string {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			}
		}
		return b.String()
	}

	lines := make([]string, 0, len(t.Rows)+1)
	if len(t.Headers) > 0 {
		lines = append(lines, format(t.Headers))
	}
	for _, r := range t.Rows {
		lines = append(lines, format(r))
	}
	return lines
}

// RenderTables draws the tables as sections of one bordered frame, sized to
// fit the content.
func RenderTables(tables ...Table) string {
	if len(tables) == 0 {
		return ""
	}

	title := tables[0].Title
	width, rows := 0, 1
	sections := make([]Section, len(tables))
	for i, t := range tables {
		lines := t.Lines()
		for _, l := range lines {
			width = max(width, lipgloss.Width(l))
		}
		width = max(width, lipgloss.Width(t.Title)+2)
		rows = max(rows, len(lines))
		sections[i] = Section{Label: t.Title, Content: func() []string { return lines }}
	}

	f := Frame{
		Styles:   NewStyles(DefaultTheme),
		Title:    title,
		Status:   "soundlab",
		Sections: sections,
	}
	width = min(max(width+4, lipgloss.Width(title)+16), maxTableWidth)
	// top, title, spacer, bottom and help lines plus one label per section
	height := 5 + len(tables) + rows*len(tables)
	return f.Render(width, height)
}

// Section represents a labeled section with content.
type Section struct {
	Label   string
	Content func() []string // Dynamic content getter
}

// Frame renders a complete TUI frame with title, sections, and help text.
type Frame struct {
	Styles   Styles
	Title    string
	Status   string
	Sections []Section
	Help     string
}

// Render renders the frame to a string.
func (f Frame) Render(width, height int) string {
	if width == 0 || height == 0 {
		return "Loading..."
	}

	bc := f.Styles.Border
	maxContentWidth := width - 4

	var lines []string

	// Top border
	lines = append(lines, bc.Render("╭"+strings.Repeat("─", width-2)+"╮"))

	// Title line: │ title status    │
	// Width: │(1) + space(1) + title + space(1) + status + padding + space(1) + │(1) = width
	title := f.Styles.Title.Render(f.Title)
	status := f.Styles.Help.Render("[" + f.Status + "]")
	padding := max(0, width-5-lipgloss.Width(title)-lipgloss.Width(status))
	titleLine := bc.Render("│") + " " + title + " " + status +
		strings.Repeat(" ", padding) + " " + bc.Render("│")
	lines = append(lines, titleLine)

	// Empty line after title for spacing
	emptyLine := bc.Render("│") + strings.Repeat(" ", width-2) + bc.Render("│")
	lines = append(lines, emptyLine)

	// Calculate section heights
	numSections := len(f.Sections)
	if numSections == 0 {
		numSections = 1
	}
	// Available: total - top(1) - title(1) - empty(1) - sections*label(1) - bottom(1) - help(1)
	availableHeight := height - 5 - numSections
	sectionHeight := max(availableHeight/numSections, 2)

	// Render each section
	for _, sec := range f.Sections {
		lines = append(lines, f.renderSection(bc, sec.Label, sec.Content(), sectionHeight, width, maxContentWidth)...)
	}

	// Bottom border
	lines = append(lines, bc.Render("╰"+strings.Repeat("─", width-2)+"╯"))

	// Help line
	lines = append(lines, f.Styles.Help.Render(f.Help))

	return strings.Join(lines, "\n")
}

// renderSection renders a single section with embedded label.
func (f Frame) renderSection(bc lipgloss.Style, label string, content []string, height, width, maxContentWidth int) []string {
	var lines []string

	// Separator with embedded label: ├─📤 Label────────┤
	// Width: ├(1) + ─(1) + labelText(?) + ─...(padding) + ┤(1) = width
	labelText := f.Styles.Label.Render(label)
	padding := max(0, width-3-lipgloss.Width(labelText))
	labelSep := bc.Render("├") + bc.Render("─") + labelText +
		bc.Render(strings.Repeat("─", padding)) + bc.Render("┤")
	lines = append(lines, labelSep)

	// Content lines (show last N lines)
	startIdx := 0
	if len(content) > height {
		startIdx = len(content) - height
	}

	for i := 0; i < height; i++ {
		text := ""
		idx := startIdx + i
		if idx < len(content) {
			text = content[idx]
		}
		if maxContentWidth > 1 && lipgloss.Width(text) > maxContentWidth {
			text = truncateString(text, maxContentWidth-1) + "…"
		}
		line := bc.Render("│") + " " + text +
			strings.Repeat(" ", max(0, maxContentWidth-lipgloss.Width(text))) + " " + bc.Render("│")
		lines = append(lines, line)
	}

	return lines
}

// truncateString safely truncates a string to the given width,
// handling multi-byte characters correctly.
func truncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	currentWidth := 0
	for i, r := range runes {
		w := lipgloss.Width(string(r))
		if currentWidth+w > width {
			return string(runes[:i])
		}
		currentWidth += w
	}
	return s
}
