package ui

import (
	"strings"
	"testing"

	"weektrack/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// TestNewStylesFromTheme_Defaults verifies default colors with an empty theme.
func TestNewStylesFromTheme_Defaults(t *testing.T) {
	s := NewStylesFromTheme(&config.ThemeConfig{})

	if s.ColorPrimary != lipgloss.Color("#7C3AED") {
		t.Errorf("Expected default primary color, got %v", s.ColorPrimary)
	}
	if s.ColorSecondary != lipgloss.Color("#10B981") {
		t.Errorf("Expected default accent color, got %v", s.ColorSecondary)
	}
	if s.ColorMuted != lipgloss.Color("#6B7280") {
		t.Errorf("Expected default muted color, got %v", s.ColorMuted)
	}
}

// TestNewStylesFromTheme_CustomColors verifies theme overrides are applied.
func TestNewStylesFromTheme_CustomColors(t *testing.T) {
	s := NewStylesFromTheme(&config.ThemeConfig{
		Primary: "#FF0000",
		Accent:  "#00FF00",
		Muted:   "#0000FF",
	})

	if s.ColorPrimary != lipgloss.Color("#FF0000") {
		t.Errorf("Expected custom primary color, got %v", s.ColorPrimary)
	}
	if s.ColorAccent != lipgloss.Color("#00FF00") {
		t.Errorf("Expected custom accent color, got %v", s.ColorAccent)
	}
	if s.ColorMuted != lipgloss.Color("#0000FF") {
		t.Errorf("Expected custom muted color, got %v", s.ColorMuted)
	}
}

// TestNewStyles_UsesThemeSection verifies the Config wrapper path.
func TestNewStyles_UsesThemeSection(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Primary = "#123456"

	s := NewStyles(cfg)
	if s.ColorPrimary != lipgloss.Color("#123456") {
		t.Errorf("Expected primary from config theme, got %v", s.ColorPrimary)
	}
}

// TestRenderHelp verifies key/description pair formatting.
func TestRenderHelp(t *testing.T) {
	setupTest(t)
	s := NewStylesFromTheme(&config.ThemeConfig{})

	out := s.RenderHelp("a", "add", "x", "del")

	for _, want := range []string{"[a]", "add", "[x]", "del"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in help output: %s", want, out)
		}
	}
}
