// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/gamevote/client"
	"github.com/danielhkuo/gamevote/cliparse"
	"github.com/danielhkuo/gamevote/handlers"
	"github.com/danielhkuo/gamevote/syncctl"
	"github.com/danielhkuo/gamevote/textview"
)

const usage = `Commands:
  list         reload the game list
  retry        retry after a failed load
  vote <id>    vote for a game
  show <id>    show details for a game
  close        close the details
  help         show this help
  quit         exit
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("client exited", "error", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out *os.File) error {
	// A missing .env is fine; real environment wins
	_ = godotenv.Load()

	fs := flag.NewFlagSet("gamevote-client", flag.ContinueOnError)
	serverURL := fs.String("server", envOr("GAMEVOTE_SERVER", "http://localhost:3318"), "API base URL")
	timeout := fs.Duration("timeout", 10*time.Second, "Per-request timeout")
	logLevel := fs.String("log-level", envOr("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := cliparse.ParseLogLevel(*logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(cliparse.NewLogger(os.Stderr, level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := textview.New(out, textview.WithColor(isatty.IsTerminal(out.Fd())))
	api := client.New(*serverURL, client.WithTimeout(*timeout))
	ctl := syncctl.New(api, view, syncctl.DefaultOptions())
	defer ctl.Close()

	slog.Debug("starting client", "server", *serverURL)
	// A failed first load leaves the controller in its error state; the
	// user can retry from the prompt
	_ = ctl.Start(ctx)
	fmt.Fprint(out, usage)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := dispatch(ctx, ctl, out, line); quit {
				return nil
			}
		}
	}
}

// dispatch runs one command line and reports whether the user asked to quit
func dispatch(ctx context.Context, ctl *syncctl.Controller, out io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, arg := fields[0], ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(out, usage)
	case "list", "refresh":
		_ = ctl.Refresh(ctx)
	case "retry":
		_ = ctl.Retry(ctx)
	case "close":
		ctl.CloseDetail()
	case "vote", "show":
		id, err := handlers.ParseEntryID(arg)
		if err != nil {
			fmt.Fprintf(out, "Usage: %s <id>\n", cmd)
			return false
		}
		if cmd == "show" {
			err = ctl.OpenDetail(id)
		} else {
			err = ctl.Vote(ctx, id)
		}
		if msg := commandError(err, id); msg != "" {
			fmt.Fprintln(out, msg)
		}
	default:
		fmt.Fprintf(out, "Unknown command %q. Type 'help' for commands.\n", cmd)
	}
	return false
}

// commandError explains rejected commands. Vote failures from the server
// are already shown by the view.
func commandError(err error, id int64) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, syncctl.ErrNotLoaded):
		return "The game list is not loaded yet."
	case errors.Is(err, syncctl.ErrUnknownEntry):
		return fmt.Sprintf("No game with id %d.", id)
	case errors.Is(err, syncctl.ErrVoteInFlight):
		return "Already voted for this game. Wait for the list to refresh."
	default:
		return ""
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
