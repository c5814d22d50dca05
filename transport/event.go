// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

// An Event identifies the type of event fired by a transport Request.
type Event int

const (
	// ReadyStateChange identifies the event fired whenever the ready
	// state of the request changes.
	ReadyStateChange Event = iota
	// Progress identifies the event fired periodically while the
	// response body is downloaded.
	Progress
	// UploadProgress identifies the event fired periodically while the
	// request body is uploaded.
	UploadProgress
	// Error identifies the event fired when the request fails at the
	// network level.
	Error
	// Timeout identifies the event fired when the request's timeout
	// elapses before the response is complete.
	Timeout
	// Abort identifies the event fired when the request is aborted.
	Abort
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// NumEvents provides the total number of events types as an int.
	NumEvents = int(eventSentinel)
)

var eventNames = []string{
	"ReadyStateChange",
	"Progress",
	"UploadProgress",
	"Error",
	"Timeout",
	"Abort",
}

// Events returns a slice containing all events which a transport
// Request can fire.
func Events() []Event {
	return []Event{
		ReadyStateChange,
		Progress,
		UploadProgress,
		Error,
		Timeout,
		Abort,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}

// A ProgressEvent is passed to every Listener. For the Progress and
// UploadProgress events it describes how many bytes have been
// transferred; for other events only Type is meaningful.
type ProgressEvent struct {
	// Type is the event being fired.
	Type Event
	// Loaded is the number of bytes transferred so far.
	Loaded int64
	// Total is the total number of bytes to transfer, if known.
	Total int64
	// LengthComputable indicates whether Total is known.
	LengthComputable bool
}

// A Listener receives events fired by a transport Request.
type Listener func(ProgressEvent)

// A ReadyState is the lifecycle state of a transport Request.
type ReadyState int

const (
	// Unsent is the state of a request which has not been opened.
	Unsent ReadyState = iota
	// Opened is the state of a request which has been opened.
	Opened
	// HeadersReceived is the state of a request whose response status
	// and headers are available.
	HeadersReceived
	// Loading is the state of a request whose response body is being
	// received.
	Loading
	// Done is the state of a request which has finished, successfully
	// or otherwise.
	Done
)

var readyStateNames = []string{
	"Unsent",
	"Opened",
	"HeadersReceived",
	"Loading",
	"Done",
}

// String returns the name of the ready state.
func (s ReadyState) String() string {
	return readyStateNames[int(s)]
}

// A ResponseType tells a transport Request how to interpret the
// response body.
type ResponseType string

const (
	// Text interprets the body as a string. It is the default, and
	// the empty ResponseType means the same thing.
	Text ResponseType = "text"
	// JSON decodes the body as JSON into an interface{}. If decoding
	// fails, the response is nil.
	JSON ResponseType = "json"
	// ArrayBuffer exposes the raw body bytes.
	ArrayBuffer ResponseType = "arraybuffer"
	// Blob exposes the raw body bytes.
	Blob ResponseType = "blob"
)

// Valid reports whether t is a response type known to this package.
// The empty response type is valid.
func (t ResponseType) Valid() bool {
	switch t {
	case "", Text, JSON, ArrayBuffer, Blob:
		return true
	default:
		return false
	}
}
