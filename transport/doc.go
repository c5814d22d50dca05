// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport defines the contract between the request driver and
the byte-level network transport underneath it, and provides HTTP, the
production transport.

The contract is modelled on XMLHttpRequest. A Request is a stateful,
single-use object which moves through the ready states Unsent, Opened,
HeadersReceived, Loading and Done:

	r := factory.NewRequest()
	err := r.Open("GET", "https://example.com/", true)
	...
	r.On(transport.ReadyStateChange, func(transport.ProgressEvent) {
		if r.ReadyState() == transport.Done {
			...
		}
	})
	err = r.Send(nil)

The transport reports what happens to the request only by firing
events. A request that fails at the network level, times out, or is
aborted reaches the Done state with status 0 before (or instead of)
firing Error, Timeout, or Abort, so listeners acting on Done must
check the status.

Listeners are invoked one at a time, but not necessarily on the
goroutine that called Send.
*/
package transport
