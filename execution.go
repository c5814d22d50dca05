// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"time"

	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transient"
	"github.com/gogama/xhr/transport"
)

// An Execution represents the state of a single call made by Client.
//
// Event handlers receive the Execution and may store their own data in
// it using the SetValue method, reading it back with Value. They should
// treat the exported fields as read-only.
type Execution struct {
	// ID uniquely identifies the call. It is set before any event
	// fires and appears in the client's log records.
	ID string

	// Config is the configuration being executed. It is never nil.
	Config *request.Config

	// Start is the time the call started. It is set after the
	// BeforeStart handlers have run.
	Start time.Time

	// End is the time the call settled. It contains the zero value
	// until the call settles.
	End time.Time

	// Request is the transport request. It is nil during BeforeStart.
	Request transport.Request

	// Response is the response received, if any. It is set when the
	// call settles either successfully or with a status validation
	// error.
	Response *Response

	// Err is the error the call settled with, if any.
	Err error

	data context.Context
}

// StatusCode returns the status code of the response, or 0 if there is
// no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.Status
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration is End minus Start. Otherwise, it
// is the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended, in which case there
// will be no further changes to it.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err indicates a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
