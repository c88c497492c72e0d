package rpc

import (
	"context"
	"sync"
)

// Notice is the set of user-facing messages one call sent back.
type Notice struct {
	Procedure string
	Messages  []string
	// Failed is set when the messages came with a framework exception.
	Failed bool
}

// Notices collects the notices of every call made with the context
// returned by WithNotices.
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

type noticesKey struct{}

// WithNotices returns a context whose calls record their server messages
// into the returned collector.
func WithNotices(ctx context.Context) (context.Context, *Notices) {
	n := &Notices{}
	return context.WithValue(ctx, noticesKey{}, n), n
}

// Items returns the recorded notices in call order.
func (n *Notices) Items() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.items...)
}

func recordNotice(ctx context.Context, procedure string, messages []string, failed bool) {
	if len(messages) == 0 {
		return
	}
	n, ok := ctx.Value(noticesKey{}).(*Notices)
	if !ok {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notice{
		Procedure: procedure,
		Messages:  append([]string(nil), messages...),
		Failed:    failed,
	})
}
