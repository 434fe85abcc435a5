package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Share(ctx context.Context, args []string) error
	Get(ctx context.Context) error
	Link(ctx context.Context, args []string) error
	Board(ctx context.Context, args []string) error
	Section(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Metrics(ctx context.Context) error
}

const helpText = "Available commands: share key=value... [-name N] [-id X], get, link [id], " +
	"board <id> [limit], section <id>, stats, whoami, metrics, exit"

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit"/"quit", or ctx is done. Command errors are printed and the loop
// carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gs %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "share":
			err = a.Share(ctx, args)
		case "get":
			err = a.Get(ctx)
		case "link":
			err = a.Link(ctx, args)
		case "board":
			err = a.Board(ctx, args)
		case "section":
			err = a.Section(ctx, args)
		case "stats":
			err = a.Stats(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "metrics":
			err = a.Metrics(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn(color.RedString("error: %v", err))
		}
	}
}
