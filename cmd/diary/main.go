// Command diary is the terminal companion to the diary server: list and
// search entries, show tags, and move data in and out.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sakif/diary/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "diary:", err)
		stop()
		os.Exit(1)
	}
}
