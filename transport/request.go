// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"time"
)

// ErrInvalidState is returned by Request methods called when the
// request is not in a state which allows the call, for example calling
// SetRequestHeader after Send.
var ErrInvalidState = errors.New("xhr/transport: invalid state")

// A Request is a single-use, event-driven network request in the manner
// of XMLHttpRequest.
//
// Implementations of Request must be safe for concurrent use by multiple
// goroutines, since listeners, Abort, and the response getters may be
// called from goroutines other than the one which called Send.
type Request interface {
	// Open binds the method and URL to the request and moves it to the
	// Opened state. If async is false, Send blocks until the request
	// is done.
	Open(method, url string, async bool) error
	// SetResponseType sets how the response body is interpreted.
	SetResponseType(t ResponseType)
	// SetTimeout sets the maximum time the request may take, from Send
	// until the response body is complete. Zero means no timeout.
	SetTimeout(d time.Duration)
	// SetWithCredentials sets whether credentials (cookies) are sent
	// with, and stored from, the request.
	SetWithCredentials(b bool)
	// SetRequestHeader adds a header to the request. It must be called
	// after Open and before Send.
	SetRequestHeader(name, value string) error
	// On installs l as the listener for evt, replacing any previous
	// listener. A nil listener removes the listener for evt.
	On(evt Event, l Listener)
	// Send transmits the request with the given body, which may be
	// nil.
	Send(body interface{}) error
	// Abort cancels the request. If the request is in flight it moves
	// to the Done state with status 0, and fires ReadyStateChange and
	// Abort. After Abort, no further events are fired.
	Abort()

	// ReadyState returns the current ready state.
	ReadyState() ReadyState
	// Status returns the HTTP status code, or 0 if no response has
	// been received or the request failed.
	Status() int
	// StatusText returns the HTTP reason phrase.
	StatusText() string
	// AllResponseHeaders returns all response headers as CRLF
	// separated "name: value" lines.
	AllResponseHeaders() string
	// GetResponseHeader returns the value of the named response
	// header, or the empty string.
	GetResponseHeader(name string) string
	// Response returns the response body interpreted according to the
	// response type.
	Response() interface{}
	// ResponseText returns the response body as text. It returns the
	// empty string unless the response type is text.
	ResponseText() string
}

// An ErrReporter is a Request that can report the underlying error
// behind an Error or Timeout event.
type ErrReporter interface {
	Err() error
}

// A Factory creates transport requests. Each call to NewRequest must
// return a new, unopened Request.
type Factory interface {
	NewRequest() Request
}

// The FactoryFunc type is an adapter to allow the use of ordinary
// functions as factories.
type FactoryFunc func() Request

// NewRequest calls f().
func (f FactoryFunc) NewRequest() Request {
	return f()
}
