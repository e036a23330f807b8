package tui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// Spin runs action behind a spinner titled title. Outside a terminal the
// action runs directly.
func Spin(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsInteractive() {
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { actionErr = action(ctx) }).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}
