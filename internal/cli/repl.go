package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	helpLoggedOut = "Available commands: login, status, exit"
	helpLoggedIn  = "Available commands: documents [page] [limit], document <id>, delete-document <id>, " +
		"account <id>, create-account, status, logout, exit"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Documents(ctx context.Context, args []string) error
	Document(ctx context.Context, args []string) error
	DeleteDocument(ctx context.Context, args []string) error
	Account(ctx context.Context, args []string) error
	CreateAccount(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Handler
// errors are printed and the loop continues. Commands that prompt read from
// the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "koywe %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "status":
			err = a.Status(ctx)
		case "documents", "ls":
			err = a.Documents(ctx, args)
		case "document":
			err = a.Document(ctx, args)
		case "delete-document":
			err = a.DeleteDocument(ctx, args)
		case "account":
			err = a.Account(ctx, args)
		case "create-account":
			err = a.CreateAccount(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "error:", describe(err))
		}
	}
}
