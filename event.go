// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeStart identifies the event that occurs before the call
	// starts.
	//
	// When Client fires BeforeStart, the only execution fields set are
	// the ID and the config.
	BeforeStart Event = iota
	// BeforeSend identifies the event that occurs after the transport
	// request has been opened, configured and given its headers, but
	// before it is sent.
	//
	// BeforeSend does not fire if the call settled before sending, for
	// example because the transport rejected the method or a header.
	BeforeSend
	// AfterSettle identifies the event that occurs once the call has
	// settled.
	//
	// When Client fires AfterSettle, the execution's end time and
	// error are set, as is its response if one was received. It fires
	// exactly once per call, on the goroutine which settled the call.
	AfterSettle
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeStart",
	"BeforeSend",
	"AfterSettle",
}

// Events returns a slice containing all events which can occur during
// a call made by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeStart,
		BeforeSend,
		AfterSettle,
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
