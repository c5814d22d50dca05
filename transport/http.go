// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	urlpkg "net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gogama/xhr/transient"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/time/rate"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// HTTP is a Factory whose requests are sent using an HTTPDoer. Its zero
// value is a valid configuration.
//
// HTTP is safe for concurrent use by multiple goroutines, and the
// requests it creates share nothing but the HTTP's own fields.
type HTTP struct {
	// Doer sends the HTTP requests.
	//
	// If Doer is nil, http.DefaultClient from the standard net/http
	// package is used.
	Doer HTTPDoer
	// Jar holds the cookies sent with, and stored from, requests whose
	// credentials flag is set. Requests without the credentials flag
	// never touch the jar.
	//
	// If Jar is nil, no cookies are sent or stored by the transport
	// (the Doer may still have its own cookie policy).
	Jar http.CookieJar
	// Limiter, if not nil, is waited on before each request is
	// transmitted. The wait counts against the request's timeout and
	// is interrupted by Abort.
	Limiter *rate.Limiter
	// Base, if not nil, is used to resolve relative request URLs.
	Base *urlpkg.URL
	// Logger receives debug logs about request failures.
	//
	// If Logger is nil, nothing is logged.
	Logger *slog.Logger
}

// NewRequest returns a new unopened request.
func (h *HTTP) NewRequest() Request {
	return &httpRequest{h: h}
}

func (h *HTTP) doer() HTTPDoer {
	if h.Doer == nil {
		return http.DefaultClient
	}
	return h.Doer
}

func (h *HTTP) logger() *slog.Logger {
	if h.Logger == nil {
		return discard
	}
	return h.Logger
}

var discard = slog.New(slog.DiscardHandler)

var forbiddenMethods = map[string]bool{
	"CONNECT": true,
	"TRACE":   true,
	"TRACK":   true,
}

type httpRequest struct {
	h *HTTP

	lock      sync.Mutex
	listeners [NumEvents]Listener

	state           ReadyState
	method          string
	url             *urlpkg.URL
	async           bool
	responseType    ResponseType
	timeout         time.Duration
	withCredentials bool
	header          http.Header
	sent            bool
	aborted         bool
	cancel          context.CancelFunc

	status     int
	statusText string
	respHeader http.Header
	body       []byte
	decoded    bool
	json       interface{}
	err        error
}

func (r *httpRequest) Open(method, url string, async bool) error {
	if method == "" || strings.IndexFunc(method, isNotToken) != -1 {
		return fmt.Errorf("xhr/transport: invalid method %q", method)
	}
	if forbiddenMethods[strings.ToUpper(method)] {
		return fmt.Errorf("xhr/transport: forbidden method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return err
	}
	if r.h.Base != nil {
		u = r.h.Base.ResolveReference(u)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("xhr/transport: cannot resolve relative URL %q", url)
	}

	r.lock.Lock()
	if r.sent || r.aborted {
		r.lock.Unlock()
		return ErrInvalidState
	}
	r.method = method
	r.url = u
	r.async = async
	r.header = make(http.Header)
	r.state = Opened
	r.lock.Unlock()

	r.emit(ProgressEvent{Type: ReadyStateChange})
	return nil
}

func (r *httpRequest) SetResponseType(t ResponseType) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.responseType = t
}

func (r *httpRequest) SetTimeout(d time.Duration) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.timeout = d
}

func (r *httpRequest) SetWithCredentials(b bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.withCredentials = b
}

func (r *httpRequest) SetRequestHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("xhr/transport: invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("xhr/transport: invalid value for header %q", name)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.state != Opened || r.sent {
		return ErrInvalidState
	}
	r.header.Add(name, value)
	return nil
}

func (r *httpRequest) On(evt Event, l Listener) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.listeners[evt] = l
}

func (r *httpRequest) Send(body interface{}) error {
	r.lock.Lock()
	if r.state != Opened || r.sent || r.aborted {
		r.lock.Unlock()
		return ErrInvalidState
	}
	if r.method == "GET" || r.method == "HEAD" {
		body = nil
	}
	b, contentType, err := BodyBytes(body)
	if err != nil {
		r.lock.Unlock()
		return err
	}
	if contentType != "" && r.header.Get("Content-Type") == "" {
		r.header.Set("Content-Type", contentType)
	}

	var ctx context.Context
	if r.timeout > 0 {
		ctx, r.cancel = context.WithTimeout(context.Background(), r.timeout)
	} else {
		ctx, r.cancel = context.WithCancel(context.Background())
	}
	req := r.toRequest(ctx, b)
	r.sent = true
	async := r.async
	r.lock.Unlock()

	if async {
		go r.run(ctx, req)
	} else {
		r.run(ctx, req)
	}
	return nil
}

// toRequest must be called with the lock held.
func (r *httpRequest) toRequest(ctx context.Context, b []byte) *http.Request {
	req, _ := http.NewRequestWithContext(ctx, r.method, r.url.String(), nil)
	req.URL = r.url
	req.Header = r.header.Clone()
	if len(b) > 0 {
		req.Body = io.NopCloser(&progressReader{
			r: bytes.NewReader(b),
			fn: func(loaded int64) {
				r.emit(ProgressEvent{
					Type:             UploadProgress,
					Loaded:           loaded,
					Total:            int64(len(b)),
					LengthComputable: true,
				})
			},
		})
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		}
		req.ContentLength = int64(len(b))
	}
	if r.withCredentials && r.h.Jar != nil {
		for _, c := range r.h.Jar.Cookies(r.url) {
			req.AddCookie(c)
		}
	}
	return req
}

func (r *httpRequest) run(ctx context.Context, req *http.Request) {
	defer r.cancel()

	if r.h.Limiter != nil {
		if err := r.h.Limiter.Wait(ctx); err != nil {
			// The limiter refuses waits it knows would outlast the
			// deadline, so hold until the deadline passes or the
			// request is aborted.
			if r.timeout > 0 {
				<-ctx.Done()
			}
			r.fail(ctx, err)
			return
		}
	}

	resp, err := r.h.doer().Do(req)
	if err != nil {
		r.fail(ctx, err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	r.lock.Lock()
	if r.withCredentials && r.h.Jar != nil {
		r.h.Jar.SetCookies(r.url, resp.Cookies())
	}
	ok := r.advance(HeadersReceived)
	if ok {
		r.status = resp.StatusCode
		r.statusText = statusText(resp)
		r.respHeader = resp.Header
	}
	r.lock.Unlock()
	if !ok {
		return
	}
	r.emit(ProgressEvent{Type: ReadyStateChange})

	r.lock.Lock()
	ok = r.advance(Loading)
	r.lock.Unlock()
	if !ok {
		return
	}
	r.emit(ProgressEvent{Type: ReadyStateChange})

	total := resp.ContentLength
	var buf bytes.Buffer
	chunk := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			r.emit(ProgressEvent{
				Type:             Progress,
				Loaded:           int64(buf.Len()),
				Total:            max(total, 0),
				LengthComputable: total >= 0,
			})
		}
		if err == io.EOF {
			break
		} else if err != nil {
			r.fail(ctx, err)
			return
		}
	}

	r.lock.Lock()
	ok = r.advance(Done)
	if ok {
		r.body = buf.Bytes()
	}
	r.lock.Unlock()
	if ok {
		r.emit(ProgressEvent{Type: ReadyStateChange})
	}
}

// advance must be called with the lock held. It reports false if the
// request was aborted or already finished.
func (r *httpRequest) advance(s ReadyState) bool {
	if r.aborted || r.state == Done {
		return false
	}
	r.state = s
	return true
}

func (r *httpRequest) fail(ctx context.Context, err error) {
	r.lock.Lock()
	if r.aborted || r.state == Done {
		r.lock.Unlock()
		return
	}
	r.state = Done
	r.status = 0
	r.statusText = ""
	r.respHeader = nil
	r.body = nil
	r.err = err
	timeout := r.timeout > 0 &&
		(errors.Is(ctx.Err(), context.DeadlineExceeded) || transient.Categorize(err) == transient.Timeout)
	method, url := r.method, r.url.String()
	r.lock.Unlock()

	evt := Error
	if timeout {
		evt = Timeout
	}
	r.h.logger().Debug("transport request failed",
		"method", method, "url", url, "event", evt.Name(), "err", err)
	r.emit(ProgressEvent{Type: ReadyStateChange})
	r.emit(ProgressEvent{Type: evt})
}

func (r *httpRequest) Abort() {
	r.lock.Lock()
	if r.aborted {
		r.lock.Unlock()
		return
	}
	inFlight := r.sent && r.state != Done
	if inFlight {
		r.state = Done
		r.status = 0
		r.statusText = ""
		r.respHeader = nil
		r.body = nil
	}
	r.aborted = true
	cancel := r.cancel
	r.lock.Unlock()

	if cancel != nil {
		cancel()
	}
	if inFlight {
		r.fire(ProgressEvent{Type: ReadyStateChange})
		r.fire(ProgressEvent{Type: Abort})
	}
}

// emit fires the event unless the request has been aborted.
func (r *httpRequest) emit(pe ProgressEvent) {
	r.lock.Lock()
	if r.aborted {
		r.lock.Unlock()
		return
	}
	l := r.listeners[pe.Type]
	r.lock.Unlock()
	if l != nil {
		l(pe)
	}
}

func (r *httpRequest) fire(pe ProgressEvent) {
	r.lock.Lock()
	l := r.listeners[pe.Type]
	r.lock.Unlock()
	if l != nil {
		l(pe)
	}
}

func (r *httpRequest) ReadyState() ReadyState {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.state
}

func (r *httpRequest) Status() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.status
}

func (r *httpRequest) StatusText() string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.statusText
}

func (r *httpRequest) AllResponseHeaders() string {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.respHeader == nil {
		return ""
	}
	names := make([]string, 0, len(r.respHeader))
	for name := range r.respHeader {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		if forbiddenResponseHeader(name) {
			continue
		}
		lower := strings.ToLower(name)
		for _, value := range r.respHeader[name] {
			sb.WriteString(lower)
			sb.WriteString(": ")
			sb.WriteString(value)
			sb.WriteString("\r\n")
		}
	}
	return sb.String()
}

func (r *httpRequest) GetResponseHeader(name string) string {
	r.lock.Lock()
	defer r.lock.Unlock()
	if forbiddenResponseHeader(name) {
		return ""
	}
	return strings.Join(r.respHeader.Values(name), ", ")
}

func (r *httpRequest) Response() interface{} {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.state != Done {
		return nil
	}
	switch r.responseType {
	case "", Text:
		return string(r.body)
	case JSON:
		if !r.decoded {
			r.decoded = true
			if err := json.Unmarshal(r.body, &r.json); err != nil {
				r.json = nil
			}
		}
		return r.json
	default:
		return r.body
	}
}

func (r *httpRequest) ResponseText() string {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.responseType != "" && r.responseType != Text {
		return ""
	}
	return string(r.body)
}

func (r *httpRequest) Err() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.err
}

func statusText(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if strings.HasPrefix(resp.Status, prefix) {
		return resp.Status[len(prefix):]
	}
	return http.StatusText(resp.StatusCode)
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// CloseIdleConnections invokes the same method on the underlying
// HTTPDoer, if it has one.
func (h *HTTP) CloseIdleConnections() {
	type idleCloser interface {
		CloseIdleConnections()
	}
	if ic, ok := h.doer().(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// forbiddenResponseHeader reports whether name is a cookie-setting header,
// which is never exposed to callers. Cookies reach the jar instead.
func forbiddenResponseHeader(name string) bool {
	switch http.CanonicalHeaderKey(name) {
	case "Set-Cookie", "Set-Cookie2":
		return true
	}
	return false
}
