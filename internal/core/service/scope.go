package service

import "context"

// scope bounds the lifetime of a feed. Requests started through it are
// cancelled on Close and their results are discarded.
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newScope() scope {
	ctx, cancel := context.WithCancel(context.Background())
	return scope{ctx: ctx, cancel: cancel}
}

// join returns a context done when either parent or the scope is.
func (s scope) join(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (s scope) closed() bool { return s.ctx.Err() != nil }

func (s scope) close() { s.cancel() }
