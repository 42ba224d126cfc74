package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTable_Lines(t *testing.T) {
	tbl := Table{
		Headers: []string{"id", "input", "output"},
		Rows: [][]string{
			{"pal-1", "같이", "가치"},
			{"nas-2", "갑니다", "감니다"},
		},
	}
	lines := tbl.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	// Columns line up by display width, including wide runes.
	col := strings.Index(lines[0], "output")
	for _, l := range lines[1:] {
		prefix := l[:strings.LastIndex(l, "  ")+2]
		if lipgloss.Width(prefix) != lipgloss.Width(lines[0][:col]) {
			t.Errorf("misaligned row %q", l)
		}
	}
}

func TestRenderTables(t *testing.T) {
	out := RenderTables(
		Table{Title: "WER", Headers: []string{"field", "value"}, Rows: [][]string{{"percentage", "25.00%"}}},
		Table{Title: "CER", Headers: []string{"field", "value"}, Rows: [][]string{{"percentage", "8.33%"}}},
	)
	for _, want := range []string{"WER", "CER", "25.00%", "8.33%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if RenderTables() != "" {
		t.Error("RenderTables() with no tables should be empty")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"가나다", 4, "가나"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateString(tt.s, tt.width); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
