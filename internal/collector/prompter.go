package collector

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/indaco/skelly/internal/tui"
)

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Input(ctx context.Context, title, description, def string, validate func(string) error) (string, error)
	Confirm(ctx context.Context, title, description string, def bool) (bool, error)
	Select(ctx context.Context, title, description string, options []huh.Option[string], def string) (string, error)
	MultiSelect(ctx context.Context, title, description string, options []huh.Option[string], defaults []string) ([]string, error)
}

// TUIPrompter implements Prompter using the tui package.
type TUIPrompter struct{}

// NewPrompter creates a new TUIPrompter.
func NewPrompter() Prompter {
	return &TUIPrompter{}
}

func (p *TUIPrompter) Input(ctx context.Context, title, description, def string, validate func(string) error) (string, error) {
	return tui.Input(ctx, title, description, def, validate)
}

func (p *TUIPrompter) Confirm(ctx context.Context, title, description string, def bool) (bool, error) {
	return tui.Confirm(ctx, title, description, def)
}

func (p *TUIPrompter) Select(ctx context.Context, title, description string, options []huh.Option[string], def string) (string, error) {
	return tui.Select(ctx, title, description, options, def)
}

func (p *TUIPrompter) MultiSelect(ctx context.Context, title, description string, options []huh.Option[string], defaults []string) ([]string, error) {
	return tui.MultiSelect(ctx, title, description, options, defaults)
}

// AutoPrompter answers every prompt with its default. It backs --yes and
// unattended runs.
type AutoPrompter struct{}

func (AutoPrompter) Input(_ context.Context, _, _, def string, validate func(string) error) (string, error) {
	if validate != nil {
		if err := validate(def); err != nil {
			return "", err
		}
	}
	return def, nil
}

func (AutoPrompter) Confirm(_ context.Context, _, _ string, def bool) (bool, error) {
	return def, nil
}

func (AutoPrompter) Select(_ context.Context, _, _ string, _ []huh.Option[string], def string) (string, error) {
	return def, nil
}

func (AutoPrompter) MultiSelect(_ context.Context, _, _ string, _ []huh.Option[string], defaults []string) ([]string, error) {
	return defaults, nil
}
