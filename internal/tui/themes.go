package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "skelly"

var themeConstructors = map[string]func() *huh.Theme{
	DefaultTheme: skellyTheme,
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// ValidThemes lists the accepted theme names, default first.
var ValidThemes = func() []string {
	names := make([]string, 0, len(themeConstructors))
	for name := range themeConstructors {
		if name != DefaultTheme {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{DefaultTheme}, names...)
}()

// IsValidTheme reports whether name is a known theme.
func IsValidTheme(name string) bool {
	_, ok := themeConstructors[name]
	return ok
}

// GetTheme builds the named theme, or returns nil for an unknown name.
func GetTheme(name string) *huh.Theme {
	if build, ok := themeConstructors[name]; ok {
		return build()
	}
	return nil
}
