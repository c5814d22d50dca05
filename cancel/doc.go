// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package cancel provides cancellation tokens for in-flight requests.

A Token fires at most once, carrying the reason for the cancellation.
Create a Source to get a token which you cancel yourself:

	src := cancel.NewSource()
	cfg.CancelToken = src.Token()
	...
	src.Cancel("operation superseded")

or adapt an existing context:

	cfg.CancelToken = cancel.WithContext(ctx)

When a request is cancelled, the request driver fails the call with the
token's reason exactly as the token reports it. Use IsCancel to tell a
cancellation apart from other request errors.
*/
package cancel
