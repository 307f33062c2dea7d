package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/SscSPs/burnout_journal/internal/cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.New().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(color.Error, color.RedString("error: %v", err))
		os.Exit(1)
	}
}
