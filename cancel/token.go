// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cancel

import (
	"context"
	"errors"
	"sync"
)

// A Token is a single-fire cancellation signal.
//
// Implementations of Token must be safe for concurrent use by multiple
// goroutines.
type Token interface {
	// Done returns a channel that is closed when the token fires.
	Done() <-chan struct{}
	// Reason returns the cancellation reason. It returns nil until
	// Done is closed, and a non-nil error, which never changes,
	// thereafter.
	Reason() error
}

// Cancel is the reason given to tokens cancelled via Source.Cancel.
type Cancel struct {
	Message string
}

func (c *Cancel) Error() string {
	if c.Message == "" {
		return "canceled"
	}
	return c.Message
}

// IsCancel reports whether err, or any error it wraps, is a Cancel.
func IsCancel(err error) bool {
	var c *Cancel
	return errors.As(err, &c)
}

// A Source creates and controls a Token. Its zero value is not usable;
// create sources with NewSource.
type Source struct {
	t *token
}

// NewSource returns a new Source whose token has not fired.
func NewSource() *Source {
	return &Source{t: newToken()}
}

// Token returns the source's token.
func (s *Source) Token() Token {
	return s.t
}

// Cancel fires the source's token with a *Cancel reason carrying
// message. Only the first call has any effect.
func (s *Source) Cancel(message string) {
	s.t.fire(&Cancel{Message: message})
}

// CancelWithReason fires the source's token with an arbitrary non-nil
// reason. Only the first call, across Cancel and CancelWithReason, has
// any effect.
func (s *Source) CancelWithReason(reason error) {
	if reason == nil {
		panic("xhr/cancel: nil reason")
	}
	s.t.fire(reason)
}

type token struct {
	once   sync.Once
	done   chan struct{}
	lock   sync.Mutex
	reason error
}

func newToken() *token {
	return &token{done: make(chan struct{})}
}

func (t *token) Done() <-chan struct{} {
	return t.done
}

func (t *token) Reason() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.reason
}

func (t *token) fire(reason error) {
	t.once.Do(func() {
		t.lock.Lock()
		t.reason = reason
		t.lock.Unlock()
		close(t.done)
	})
}

// WithContext returns a token which fires when ctx is done. The
// token's reason is ctx.Err().
func WithContext(ctx context.Context) Token {
	if ctx == nil {
		panic("xhr/cancel: nil context")
	}
	return ctxToken{ctx}
}

type ctxToken struct {
	ctx context.Context
}

func (t ctxToken) Done() <-chan struct{} {
	return t.ctx.Done()
}

func (t ctxToken) Reason() error {
	return t.ctx.Err()
}
