package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

// keyMap binds ctrl+c and esc to quit on every form.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	)
	return km
}

func run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(currentThemeOrDefault()).
		WithKeyMap(keyMap()).
		WithShowHelp(true)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// Input asks for a line of text. An empty answer yields def.
// validate may be nil.
func Input(ctx context.Context, title, description, def string, validate func(string) error) (string, error) {
	value := def
	field := huh.NewInput().
		Title(title).
		Description(description).
		Placeholder(def).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}

	if err := run(ctx, field); err != nil {
		return "", err
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

// Confirm asks a yes/no question.
func Confirm(ctx context.Context, title, description string, def bool) (bool, error) {
	value := def
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	if err := run(ctx, field); err != nil {
		return false, err
	}
	return value, nil
}

// Select asks for one option.
func Select(ctx context.Context, title, description string, options []huh.Option[string], def string) (string, error) {
	value := def
	field := huh.NewSelect[string]().
		Title(title).
		Description(description).
		Options(options...).
		Value(&value)

	if err := run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// MultiSelect asks for any number of options, with defaults pre-selected.
func MultiSelect(ctx context.Context, title, description string, options []huh.Option[string], defaults []string) ([]string, error) {
	selected := append([]string(nil), defaults...)
	field := huh.NewMultiSelect[string]().
		Title(title).
		Description(description).
		Options(options...).
		Value(&selected)

	if err := run(ctx, field); err != nil {
		return nil, err
	}
	return selected, nil
}
