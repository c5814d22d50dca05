// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"net/http"

	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transport"
)

// A Response is the result of a request that completed with a non-zero
// status code.
type Response struct {
	// Data is the response body. It is a string when the request's
	// response type is empty or text. Otherwise it is whatever the
	// transport's Response method returned, which for the HTTP
	// transport is the decoded JSON value (or nil) for json and a
	// []byte for arraybuffer and blob.
	Data interface{}
	// Status is the HTTP status code.
	Status int
	// StatusText is the HTTP status text, for example "OK".
	StatusText string
	// Header contains the parsed response headers.
	Header http.Header
	// Config is the configuration of the request.
	Config *request.Config
	// Request is the transport request which produced the response.
	Request transport.Request
}
