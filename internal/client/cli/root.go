package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	s += string(a.mode)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root authenticates, starts the online watcher and runs the REPL until
// the user leaves.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintf(a.out, "deskctl for %s (type 'help' for commands)\n", a.config.SiteURL)

	if err := a.Authenticate(ctx); err != nil {
		fmt.Fprintln(a.out, describeError(err))
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
