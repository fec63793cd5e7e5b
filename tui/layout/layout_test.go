package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestComputeColumnWidths(t *testing.T) {
	tests := []struct {
		width      int
		list, side int
		showSide   bool
	}{
		{150, 100, 49, true},
		{100, 69, SideMinWidth, true},
		{80, 80, 0, false},
	}
	for _, tt := range tests {
		list, side, show := ComputeColumnWidths(tt.width)
		if list != tt.list || side != tt.side || show != tt.showSide {
			t.Errorf("ComputeColumnWidths(%d) = %d, %d, %v", tt.width, list, side, show)
		}
		if show && list+side+1 != tt.width {
			t.Errorf("columns do not fill %d", tt.width)
		}
	}
}

func TestPadToWidth(t *testing.T) {
	if got := PadToWidth("abc", 5); got != "abc  " {
		t.Errorf("pad = %q", got)
	}
	if got := PadToWidth("abcdef", 3); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
	if got := PadToWidth("x", 0); got != "" {
		t.Errorf("zero width = %q", got)
	}
}

func TestContainer_FollowsFocus(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, string(rune('a'+i)))
	}
	content := strings.Join(lines, "\n")

	out := ansi.Strip(Container{Width: 10, Height: 5, Focus: 0}.Render(content))
	got := strings.Split(out, "\n")
	if len(got) != 5 || strings.TrimSpace(got[0]) != "a" || !strings.Contains(got[4], "More") {
		t.Fatalf("top window = %q", got)
	}

	out = ansi.Strip(Container{Width: 10, Height: 5, Focus: 12}.Render(content))
	got = strings.Split(out, "\n")
	if !strings.Contains(got[0], "↑") || !strings.Contains(got[4], "↓") {
		t.Errorf("middle window should show both indicators: %q", got)
	}
	if strings.TrimSpace(got[3]) != "m" {
		t.Errorf("focus line should be visible: %q", got)
	}

	out = ansi.Strip(Container{Width: 10, Height: 5, Focus: 19}.Render(content))
	got = strings.Split(out, "\n")
	if strings.TrimSpace(got[4]) != "t" {
		t.Errorf("bottom window should end with the last line: %q", got)
	}
	for _, line := range got {
		if lipgloss.Width(line) != 10 {
			t.Errorf("line %q not padded", line)
		}
	}
}

func TestJoinColumns(t *testing.T) {
	out := ansi.Strip(JoinColumns([]string{"left", "right\nsecond"}, []int{6, 7}, 3))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d", len(lines))
	}
	if lines[0] != "left  │right  " || lines[1] != "      │second " {
		t.Errorf("joined = %q", lines)
	}
}

func TestEllipsize(t *testing.T) {
	if got := Ellipsize("short", 10); got != "short" {
		t.Errorf("short = %q", got)
	}
	got := Ellipsize("a long description", 8)
	if lipgloss.Width(got) != 8 || !strings.HasSuffix(got, "…") {
		t.Errorf("long = %q", got)
	}
}
