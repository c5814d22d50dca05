// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"net/url"

	"github.com/gogama/xhr/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes the request described by a config and returns its
// outcome. Client implements the Doer interface, and any other Doer
// implementation must behave substantially the same as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(cfg *request.Config) (*Response, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(url string) (*Response, error)
}

// Header is the interface that wraps the basic Head method.
//
// Any Doer can be used to emulate a Header via the Head function.
type Header interface {
	Head(url string) (*Response, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(url, contentType string, body interface{}) (*Response, error)
}

// FormPoster is the interface that wraps the basic PostForm method.
//
// The request body is set to the URL-encoded keys and values from
// data, and the content type is set to
// application/x-www-form-urlencoded.
//
// Any Doer can be used to emulate a FormPoster via the PostForm
// function.
type FormPoster interface {
	PostForm(url string, data url.Values) (*Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do, Get, Head, Post,
// PostForm, and CloseIdleConnections methods.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Header
	Poster
	FormPoster
	IdleCloser
}

// Get uses the specified Doer to issue a GET to the specified URL.
//
// The request uses the defaults of request.NewConfig, so a status code
// outside the 2XX range results in an error.
func Get(d Doer, url string) (*Response, error) {
	return d.Do(request.NewConfig("GET", url, nil))
}

// Head uses the specified Doer to issue a HEAD to the specified URL.
func Head(d Doer, url string) (*Response, error) {
	return d.Do(request.NewConfig("HEAD", url, nil))
}

// Post uses the specified Doer to issue a POST to the specified URL.
//
// If contentType is not empty, it is sent as the Content-Type header.
// Otherwise the transport chooses a content type from the body type.
func Post(d Doer, url, contentType string, body interface{}) (*Response, error) {
	cfg := request.NewConfig("POST", url, body)
	if contentType != "" {
		cfg.Header.Set("Content-Type", contentType)
	}
	return d.Do(cfg)
}

// PostForm uses the specified Doer to issue a POST to the specified URL,
// with data's keys and values URL-encoded as the request body.
func PostForm(d Doer, url string, data url.Values) (*Response, error) {
	return Post(d, url, "application/x-www-form-urlencoded", data.Encode())
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("xhr: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(cfg *request.Config) (*Response, error) {
	return i.doer.Do(cfg)
}

func (i inflated) Get(url string) (*Response, error) {
	return Get(i.doer, url)
}

func (i inflated) Head(url string) (*Response, error) {
	return Head(i.doer, url)
}

func (i inflated) Post(url, contentType string, body interface{}) (*Response, error) {
	return Post(i.doer, url, contentType, body)
}

func (i inflated) PostForm(url string, data url.Values) (*Response, error) {
	return PostForm(i.doer, url, data)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
