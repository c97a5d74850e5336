package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	Appointment(ctx context.Context, when string) error
	WhoAmI(ctx context.Context) error
	SignOut(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it. Commands
// that need a session are refused while signed out and vice versa. The loop
// ends on EOF, "exit"/"quit" or when ctx is done.
//
// Handlers report their own failures; returned errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gobarber %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, profile, avatar <path>, appointment <time>, whoami, signout, exit")
			} else {
				printlnFn("Available commands: signin, signup, forgot, exit")
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "signin", "signup", "forgot":
			if a.isLoggedIn() {
				printlnFn("Already signed in, use 'signout' first")
				continue
			}
			switch cmd {
			case "signin":
				_ = a.SignIn(ctx)
			case "signup":
				_ = a.SignUp(ctx)
			case "forgot":
				_ = a.ForgotPassword(ctx)
			}

		case "dashboard", "profile", "avatar", "appointment", "whoami", "signout":
			if !a.isLoggedIn() {
				printlnFn("Not signed in, use 'signin' first")
				continue
			}
			switch cmd {
			case "dashboard":
				_ = a.Dashboard(ctx)
			case "profile":
				_ = a.Profile(ctx)
			case "avatar":
				if len(args) == 0 {
					printlnFn("Usage: avatar <path to image>")
					continue
				}
				_ = a.Avatar(ctx, args[0])
			case "appointment":
				if len(args) == 0 {
					printlnFn("Usage: appointment <RFC3339 time>")
					continue
				}
				_ = a.Appointment(ctx, args[0])
			case "whoami":
				_ = a.WhoAmI(ctx)
			case "signout":
				_ = a.SignOut(ctx)
			}

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
