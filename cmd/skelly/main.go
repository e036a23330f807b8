package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/indaco/skelly/internal/cli"
	"github.com/indaco/skelly/internal/printer"
	urfavecli "github.com/urfave/cli/v3"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(exitCode(err))
	}
}

// runCLI runs the root command until it finishes or an interrupt arrives.
func runCLI(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.New().Run(ctx, args)
}

func exitCode(err error) int {
	var exitErr urfavecli.ExitCoder
	if errors.As(err, &exitErr) && exitErr.ExitCode() != 0 {
		return exitErr.ExitCode()
	}
	return 1
}
