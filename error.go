// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"errors"

	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transport"
)

const (
	// CodeAborted is the code of the error returned when a request
	// times out.
	CodeAborted = "ECONNABORTED"
	// CodeBadRequest is the code of the error returned when the
	// transport refuses the request before sending it, for example
	// because of an invalid method, URL, header, or body.
	CodeBadRequest = "ERR_BAD_REQUEST"
)

// An Error describes a failed request. Every error returned by Client,
// except a cancellation reason, is an *Error.
//
// Network errors have no Code and no Response. Timeout errors have
// Code CodeAborted. Status validation errors have no Code but carry
// the Response whose status failed validation.
type Error struct {
	// Message describes the failure.
	Message string
	// Config is the request configuration.
	Config *request.Config
	// Code classifies the failure. It may be empty.
	Code string
	// Request is the transport request.
	Request transport.Request
	// Response is the response, if one was received.
	Response *Response
	// Err is the underlying transport error, if known.
	Err error
}

func newError(message string, cfg *request.Config, code string, req transport.Request, resp *Response) *Error {
	e := &Error{
		Message:  message,
		Config:   cfg,
		Code:     code,
		Request:  req,
		Response: resp,
	}
	if r, ok := req.(transport.ErrReporter); ok {
		e.Err = r.Err()
	}
	return e
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the error is a request timeout.
func (e *Error) Timeout() bool {
	return e.Code == CodeAborted
}

// IsError reports whether err, or any error it wraps, is an *Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
