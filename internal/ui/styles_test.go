package ui

import "testing"

func TestConfigureTheme(t *testing.T) {
	defer ConfigureTheme("#2DD4BF")

	ConfigureTheme("#FF8800")
	if AccentColor() != "#FF8800" {
		t.Errorf("AccentColor = %q", AccentColor())
	}

	// Empty keeps the current color.
	ConfigureTheme("")
	if AccentColor() != "#FF8800" {
		t.Errorf("AccentColor after empty = %q", AccentColor())
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Heading\n\nSome *body* text.\n", 80)
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("empty render")
	}
}
