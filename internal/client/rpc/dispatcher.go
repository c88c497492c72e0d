package rpc

import (
	"context"
	"fmt"
	"sync"
)

// Dispatcher runs calls in the background. It only tracks in-flight calls
// so that Wait can drain them; it does not order, cancel or de-duplicate.
type Dispatcher struct {
	wg sync.WaitGroup
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Dispatch starts call on its own goroutine and returns immediately. cb
// receives the result exactly once, also when call panics.
func Dispatch[T any](d *Dispatcher, ctx context.Context, call func(context.Context) (T, error), cb func(T, error)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		var (
			res T
			err error
		)
		func() {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("call panicked: %v", p)
				}
			}()
			res, err = call(ctx)
		}()

		cb(res, err)
	}()
}

// Wait blocks until every dispatched call has delivered its callback.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
