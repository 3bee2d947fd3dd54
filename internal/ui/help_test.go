package ui

import (
	"strings"
	"testing"
)

// TestHelpOverlay_View verifies the help overlay lists the key sections.
func TestHelpOverlay_View(t *testing.T) {
	setupTest(t)
	overlay := NewHelpOverlay(createTestStyles())
	overlay.SetSize(100, 40)

	view := overlay.View()

	for _, want := range []string{
		"Keyboard Shortcuts",
		"Global",
		"Habits",
		"Tasks",
		"Input Mode",
		"Ctrl+S",
		"Export week to .xlsx",
		"Add task to every day",
		"Press ? or Esc to close",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in help overlay", want)
		}
	}
}

// TestHelpOverlay_SmallTerminal verifies rendering does not panic and
// stays readable on tiny terminals.
func TestHelpOverlay_SmallTerminal(t *testing.T) {
	setupTest(t)
	overlay := NewHelpOverlay(createTestStyles())
	overlay.SetSize(24, 10)

	view := overlay.View()
	if !strings.Contains(view, "Global") {
		t.Error("Expected help content even on a small terminal")
	}
}

// TestRenderCentered verifies content is padded into the frame.
func TestRenderCentered(t *testing.T) {
	setupTest(t)

	out := RenderCentered("hello", 21, 3)
	if !strings.Contains(out, "hello") {
		t.Error("Expected content preserved")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}
