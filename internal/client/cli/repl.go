package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// command is one REPL verb. args are the whitespace-separated words after
// the verb.
type command struct {
	name  string
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
}

// runREPL starts a simple read–eval–print loop for the MyBank console.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to the matching entry of a.commands(). The command set depends
// on whether a dashboard is open and on its role. Unknown commands are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own failures through status lines and the log. This keeps the REPL
// loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mybank (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printHelp(a.commands())
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := lookup(a.commands(), cmd)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		_ = c.run(ctx, args)
	}
}

func lookup(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(cmds []command) {
	printlnFn("Available commands:")
	for _, c := range cmds {
		usage := c.name
		if c.usage != "" {
			usage += " " + c.usage
		}
		printlnFn(fmt.Sprintf("  %-28s %s", usage, c.help))
	}
	printlnFn(fmt.Sprintf("  %-28s %s", "exit | quit", "leave the program"))
}
