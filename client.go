// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gogama/xhr/cancel"
	"github.com/gogama/xhr/cookie"
	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transport"
	"github.com/google/uuid"
)

// ErrPending is returned by Call.Result when the call has not settled.
var ErrPending = errors.New("xhr: call not settled")

var (
	emptyHandlers    = HandlerGroup{}
	defaultTransport = &transport.HTTP{}
	discard          = slog.New(slog.DiscardHandler)
)

// A Client drives transport requests to completion. Its zero value is
// a valid configuration.
//
// The zero value client creates its transport requests with a zero
// value transport.HTTP, which sends them using http.DefaultClient. It
// reads no cookies, so never sends an XSRF header, and has no event
// handlers.
//
// Client is safe for concurrent use by multiple goroutines. Each call
// owns exactly one transport request, which is never shared or reused.
//
// For every call, Client opens a transport request, configures it,
// listens to its events, gives it headers and sends it. Whichever of
// completion, network error, timeout, or cancellation happens first
// settles the call. Every later event is ignored.
type Client struct {
	// Transport creates the transport request used by each call.
	//
	// If Transport is nil, a shared zero value transport.HTTP is used.
	Transport transport.Factory
	// Cookies is read for the XSRF cookie.
	//
	// If Cookies is nil, no XSRF header is ever sent.
	Cookies cookie.Store
	// Origin is the URL of the "current page": requests whose URL
	// has the same scheme and host as Origin are same-origin requests,
	// and receive the XSRF header even without credentials. Relative
	// request URLs are same-origin.
	//
	// If Origin is nil, no request is same-origin.
	Origin *url.URL
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a call.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives a debug record for every settled call.
	//
	// If Logger is nil, nothing is logged.
	Logger *slog.Logger
}

// A Call is a request in progress, started by Client.Go.
type Call struct {
	cfg      *request.Config
	req      transport.Request
	exec     *Execution
	handlers *HandlerGroup
	logger   *slog.Logger

	lock    sync.Mutex
	settled bool
	resp    *Response
	err     error
	stop    chan struct{}
	done    chan struct{}
}

// Do executes the request described by cfg and waits for it to settle.
//
// On success, Do returns the response and a nil error. The returned
// error is otherwise either an *Error or, if cfg's cancel token fired
// first, the token's reason exactly as the token reported it.
//
// A response whose status fails cfg.ValidateStatus results in an
// *Error carrying the response. A nil ValidateStatus accepts every
// status.
//
// Do never modifies cfg.
func (c *Client) Do(cfg *request.Config) (*Response, error) {
	return c.Go(cfg).Wait()
}

// Go starts executing the request described by cfg and returns without
// waiting for it to settle. Use the returned Call's Done channel or
// Wait method to get the outcome.
//
// Go never modifies cfg.
func (c *Client) Go(cfg *request.Config) *Call {
	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	call := &Call{
		cfg:      cfg,
		exec:     &Execution{ID: uuid.NewString(), Config: cfg},
		handlers: handlers,
		logger:   c.logger(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	handlers.run(BeforeStart, call.exec)
	call.exec.Start = time.Now()

	req := c.factory().NewRequest()
	call.req = req
	call.exec.Request = req

	method := strings.ToUpper(cfg.Method)
	if method == "" {
		method = "GET"
	}
	if err := req.Open(method, cfg.URL, true); err != nil {
		call.settle(nil, badRequest(err, cfg, req))
		return call
	}

	if cfg.ResponseType != "" {
		req.SetResponseType(cfg.ResponseType)
	}
	if cfg.Timeout > 0 {
		req.SetTimeout(time.Duration(timeoutMillis(cfg.Timeout)) * time.Millisecond)
	}
	if cfg.WithCredentials {
		req.SetWithCredentials(true)
	}

	req.On(transport.ReadyStateChange, call.onReadyStateChange)
	req.On(transport.Error, call.onError)
	req.On(transport.Timeout, call.onTimeout)
	if cfg.OnDownloadProgress != nil {
		req.On(transport.Progress, cfg.OnDownloadProgress)
	}
	if cfg.OnUploadProgress != nil {
		req.On(transport.UploadProgress, cfg.OnUploadProgress)
	}

	h := c.requestHeader(cfg)
	if err := applyHeader(req, h, cfg.Data); err != nil {
		call.settle(nil, badRequest(err, cfg, req))
		req.Abort()
		return call
	}

	handlers.run(BeforeSend, call.exec)

	if tok := cfg.CancelToken; tok != nil {
		go call.watch(tok)
	}

	// A token that has already fired may have aborted the request
	// first. The watcher then settles with the token's reason.
	if err := req.Send(cfg.Data); err != nil && !fired(cfg.CancelToken) {
		if call.settle(nil, badRequest(err, cfg, req)) {
			req.Abort()
		}
	}

	return call
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request with custom headers, use request.NewConfig and
// Client.Do.
func (c *Client) Get(url string) (*Response, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
func (c *Client) Head(url string) (*Response, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by the transport.
func (c *Client) Post(url, contentType string, body interface{}) (*Response, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body.
func (c *Client) PostForm(url string, data url.Values) (*Response, error) {
	return PostForm(c, url, data)
}

// CloseIdleConnections invokes the same method on the client's
// transport factory.
//
// If the factory has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.factory().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) factory() transport.Factory {
	if c.Transport == nil {
		return defaultTransport
	}

	return c.Transport
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return discard
	}

	return c.Logger
}

// Done returns a channel that is closed when the call settles.
func (call *Call) Done() <-chan struct{} {
	return call.done
}

// Wait waits for the call to settle and returns its outcome, with the
// same meaning as the return values of Client.Do.
func (call *Call) Wait() (*Response, error) {
	<-call.done
	return call.resp, call.err
}

// Result returns the outcome of a settled call without waiting. If the
// call has not settled yet, Result returns ErrPending.
func (call *Call) Result() (*Response, error) {
	select {
	case <-call.done:
		return call.resp, call.err
	default:
		return nil, ErrPending
	}
}

// Execution returns the call's execution state. Its fields are stable
// only after the call settles.
func (call *Call) Execution() *Execution {
	return call.exec
}

func (call *Call) onReadyStateChange(_ transport.ProgressEvent) {
	req := call.req
	if req.ReadyState() != transport.Done {
		return
	}
	status := req.Status()
	if status == 0 {
		return
	}

	cfg := call.cfg
	var data interface{}
	if cfg.ResponseType != "" && cfg.ResponseType != transport.Text {
		data = req.Response()
	} else {
		data = req.ResponseText()
	}
	resp := &Response{
		Data:       data,
		Status:     status,
		StatusText: req.StatusText(),
		Header:     parseHeaders(req.AllResponseHeaders()),
		Config:     cfg,
		Request:    req,
	}

	if cfg.ValidateStatus == nil || cfg.ValidateStatus(status) {
		call.settle(resp, nil)
		return
	}
	msg := fmt.Sprintf("Request failed with status code %d", status)
	call.settle(resp, newError(msg, cfg, "", req, resp))
}

func (call *Call) onError(_ transport.ProgressEvent) {
	call.settle(nil, newError("Network Error", call.cfg, "", call.req, nil))
}

func (call *Call) onTimeout(_ transport.ProgressEvent) {
	msg := fmt.Sprintf("Timeout of %d ms exceeded", timeoutMillis(call.cfg.Timeout))
	call.settle(nil, newError(msg, call.cfg, CodeAborted, call.req, nil))
}

// timeoutMillis rounds d up to whole milliseconds.
func timeoutMillis(d time.Duration) int64 {
	return int64((d + time.Millisecond - 1) / time.Millisecond)
}

func (call *Call) watch(tok cancel.Token) {
	select {
	case <-tok.Done():
	case <-call.stop:
		return
	}

	call.lock.Lock()
	settled := call.settled
	call.lock.Unlock()
	if settled {
		return
	}

	reason := tok.Reason()
	if reason == nil {
		reason = context.Canceled
	}
	call.req.Abort()
	call.settle(nil, reason)
}

// settle records the outcome unless the call has already settled, and
// reports whether it did. A validation failure records both a response
// and an error; Wait returns only the error.
func (call *Call) settle(resp *Response, err error) bool {
	call.lock.Lock()
	if call.settled {
		call.lock.Unlock()
		return false
	}
	call.settled = true
	if err == nil {
		call.resp = resp
	}
	call.err = err
	call.exec.Response = resp
	call.exec.Err = err
	call.exec.End = time.Now()
	call.lock.Unlock()

	if call.req != nil {
		for _, evt := range transport.Events() {
			call.req.On(evt, nil)
		}
	}
	close(call.stop)

	call.logger.Debug("call settled",
		"call", call.exec.ID,
		"method", call.cfg.Method,
		"url", call.cfg.URL,
		"status", call.exec.StatusCode(),
		"duration", call.exec.Duration(),
		"err", err)

	call.handlers.run(AfterSettle, call.exec)
	close(call.done)
	return true
}

func fired(tok cancel.Token) bool {
	if tok == nil {
		return false
	}
	select {
	case <-tok.Done():
		return true
	default:
		return false
	}
}

func badRequest(err error, cfg *request.Config, req transport.Request) *Error {
	e := newError(err.Error(), cfg, CodeBadRequest, req, nil)
	e.Err = err
	return e
}
