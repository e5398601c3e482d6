package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	SubmitHash(ctx context.Context) error
	SubmitGuess(ctx context.Context) error
	Reveal(ctx context.Context) error
	Verify(ctx context.Context) error
	Show(ctx context.Context) error
	ShowGuess(ctx context.Context) error
	List(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the audit CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — pick a submitter identity
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - submithash     — seal and submit a password hash
//	  - submitguess    — seal and submit a guess against a hash
//	  - reveal         — request the one-time reveal of a hash
//	  - verify         — request verification of a guess
//	  - show           — show a hash record
//	  - showguess      — show a guess record
//	  - (l)ist         — list own guesses against a hash
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ha> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: submithash, submitguess, reveal, verify, show, showguess, (l)ist, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "submithash":
			_ = a.SubmitHash(ctx)

		case "submitguess":
			_ = a.SubmitGuess(ctx)

		case "reveal":
			_ = a.Reveal(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "show":
			_ = a.Show(ctx)

		case "showguess":
			_ = a.ShowGuess(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
