package tui

import (
	"github.com/charmbracelet/huh"
)

// currentTheme is the theme applied to every form. Nil selects skellyTheme.
var currentTheme *huh.Theme

// SetTheme selects the form theme by name. Empty or unknown names select the default.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return skellyTheme()
	}
	return currentTheme
}

// resetTheme restores the default theme. Used by tests.
func resetTheme() {
	currentTheme = nil
}
