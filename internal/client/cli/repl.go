package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/common"
)

// execIface is the command surface the REPL drives.
type execIface interface {
	Open(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Actions(ctx context.Context) error
	RunAction(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Reload(ctx context.Context) error
	Wait(ctx context.Context) error
	Cached(ctx context.Context) error
	DocTypes(ctx context.Context) error
	ClearCache(ctx context.Context) error
	Forget(ctx context.Context) error
}

const helpText = `Available commands:
  open <doctype> [name]   open a document (single doctypes need no name)
  show                    show the open document
  actions                 list the actions offered on the open document
  run <n|action-id>       run an action in the background
  set <field> <value>     change a field and save it
  reload                  fetch the open document again
  wait                    wait for running actions to finish
  cached                  list documents available offline
  doctypes                list supported document types
  clear-cache             drop every document kept for offline use
  forget                  remove saved credentials
  exit | quit             leave the program`

// runREPL reads commands from reader until EOF or exit. Command errors are
// reported to out and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	report := func(err error) {
		if err != nil {
			fmt.Fprintln(out, describeError(err))
		}
	}

	for {
		fmt.Fprintf(out, "deskctl %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(out, "Error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)
		case "open":
			report(a.Open(ctx, args))
		case "show":
			report(a.Show(ctx))
		case "actions":
			report(a.Actions(ctx))
		case "run":
			report(a.RunAction(ctx, args))
		case "set":
			report(a.Set(ctx, args))
		case "reload":
			report(a.Reload(ctx))
		case "wait":
			report(a.Wait(ctx))
		case "cached":
			report(a.Cached(ctx))
		case "doctypes":
			report(a.DocTypes(ctx))
		case "clear-cache":
			report(a.ClearCache(ctx))
		case "forget":
			report(a.Forget(ctx))
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrorNoOpenForm):
		return "No document is open. Use 'open <doctype> [name]'."
	case errors.Is(err, common.ErrorOffline):
		return "The server is unavailable; actions are disabled while working from cache."
	case errors.Is(err, client.ErrLocalDataNotAvailable):
		return "The server is unavailable and no cached copy exists."
	case errors.Is(err, client.ErrUnauthorized):
		return "Not authorized: check the API key and secret."
	case errors.Is(err, common.ErrorUnknownAction):
		return "No such action on this document; see 'actions'."
	case errors.Is(err, common.ErrorUnknownDocType):
		return "Unsupported document type; see 'doctypes'."
	default:
		return "Error: " + err.Error()
	}
}
