package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Bone and amber palette of the skelly theme.
var (
	skellyBone       = lipgloss.AdaptiveColor{Light: "#57534e", Dark: "#e7e5e4"}
	skellyAmber      = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	skellyAmberLight = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	skellyTextStrong = lipgloss.AdaptiveColor{Light: "#1c1917", Dark: "#fafaf9"}
	skellyTextMuted  = lipgloss.AdaptiveColor{Light: "#78716c", Dark: "#a8a29e"}
	skellyTextFaint  = lipgloss.AdaptiveColor{Light: "#a8a29e", Dark: "#57534e"}
	skellyBorder     = lipgloss.AdaptiveColor{Light: "#d6d3d1", Dark: "#44403c"}
	skellyButtonText = lipgloss.AdaptiveColor{Light: "#fafaf9", Dark: "#1c1917"}
	skellyError      = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
)

// skellyTheme is the default form theme.
func skellyTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(skellyAmber)
	t.Focused.Title = t.Focused.Title.Foreground(skellyAmber).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(skellyAmber).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(skellyTextMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(skellyError)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(skellyError)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(skellyAmberLight)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(skellyAmberLight)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(skellyTextStrong)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(skellyAmber)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(skellyBone)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(skellyTextFaint)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(skellyButtonText).
		Background(skellyAmber).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(skellyBone).
		Background(skellyBorder).
		Padding(0, 1)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(skellyAmberLight)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(skellyTextFaint)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(skellyAmber)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Help.ShortKey = t.Help.ShortKey.Foreground(skellyTextMuted)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(skellyTextFaint)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(skellyTextFaint)
	t.Help.FullKey = t.Help.FullKey.Foreground(skellyTextMuted)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(skellyTextFaint)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(skellyTextFaint)

	return t
}
