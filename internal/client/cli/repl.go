package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Home(ctx context.Context) error
	Status(ctx context.Context) error
	Go(ctx context.Context, args []string) error
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Upload(ctx context.Context) error
	Preferences(ctx context.Context) error
	Result(ctx context.Context) error
	Chat(ctx context.Context, args []string) error
	Approve(ctx context.Context) error
	Reject(ctx context.Context) error
	Save(ctx context.Context) error
	Export(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Username(ctx context.Context, args []string) error
	Routes(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: home, signup, login, go <page>, status, exit"
	helpLoggedIn  = "Available commands: home, upload, preferences, result, chat <text>, approve, reject, " +
		"save, export, profile, avatar <file>, username <name>, routes, delete <id>, go <page>, status, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the GuiDipper client.
//
// It reads a line from the provided scanner, parses the first token as the
// command and passes the rest as arguments to the matching method on a.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF, when the user types "exit" or "quit", or when ctx is done.
//
// The prompt shows the current status (from statusFn): the page and the
// logged-in user. Pages that need a session redirect to /login by
// themselves, so every command is accepted here.
//
// Any errors returned by command handlers are ignored here; handlers report
// and log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gd %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "home":
			_ = a.Home(ctx)
		case "status":
			_ = a.Status(ctx)
		case "go":
			_ = a.Go(ctx, args)
		case "signup", "register":
			_ = a.Signup(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "upload":
			_ = a.Upload(ctx)
		case "preferences", "prefs":
			_ = a.Preferences(ctx)
		case "result":
			_ = a.Result(ctx)
		case "chat":
			_ = a.Chat(ctx, args)
		case "approve":
			_ = a.Approve(ctx)
		case "reject":
			_ = a.Reject(ctx)
		case "save":
			_ = a.Save(ctx)
		case "export":
			_ = a.Export(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "avatar":
			_ = a.Avatar(ctx, args)
		case "username":
			_ = a.Username(ctx, args)
		case "routes":
			_ = a.Routes(ctx)
		case "delete":
			_ = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
