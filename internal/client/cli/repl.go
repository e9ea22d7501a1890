package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for REPL output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Categories(ctx context.Context) error
	Threads(ctx context.Context, args []string) error
	Thread(ctx context.Context, args []string) error
	PostThread(ctx context.Context, args []string) error
	PostReply(ctx context.Context, args []string) error
	CloseThreads(ctx context.Context, args []string) error
	OpenThreads(ctx context.Context, args []string) error
	MoveThreads(ctx context.Context, args []string) error
	DeleteThreads(ctx context.Context, args []string) error
}

const (
	helpAnonymous = `Available commands:
  categories                      list categories
  threads [category] [cursor]     list threads
  thread <id> [page]              show a thread
  register                        create an account
  login                           sign in
  exit | quit                     leave the program`

	helpSignedIn = `Available commands:
  categories                      list categories
  threads [category] [cursor]     list threads
  thread <id> [page]              show a thread
  post <category>                 start a new thread
  reply <thread-id>               reply to a thread
  close <id>...                   close threads
  open <id>...                    open threads
  move <category> <id>...         move threads to a category
  delete <id>...                  delete threads
  logout                          sign out
  exit | quit                     leave the program`
)

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Command errors are reported and the loop
// goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("gophforum %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "categories":
			cmdErr = a.Categories(ctx)
		case "threads":
			cmdErr = a.Threads(ctx, args)
		case "thread":
			cmdErr = a.Thread(ctx, args)
		case "post":
			cmdErr = a.PostThread(ctx, args)
		case "reply":
			cmdErr = a.PostReply(ctx, args)
		case "close":
			cmdErr = a.CloseThreads(ctx, args)
		case "open":
			cmdErr = a.OpenThreads(ctx, args)
		case "move":
			cmdErr = a.MoveThreads(ctx, args)
		case "delete":
			cmdErr = a.DeleteThreads(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil && !errors.Is(cmdErr, errReported) {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
