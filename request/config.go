// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"time"

	"github.com/gogama/xhr/cancel"
	"github.com/gogama/xhr/transport"
)

const (
	// DefaultXSRFCookieName is the XSRF cookie name set by NewConfig.
	DefaultXSRFCookieName = "XSRF-TOKEN"
	// DefaultXSRFHeaderName is the XSRF header name set by NewConfig.
	DefaultXSRFHeaderName = "X-XSRF-TOKEN"
	// DefaultAccept is the Accept header value set by NewConfig.
	DefaultAccept = "application/json, text/plain, */*"
)

// Auth holds HTTP Basic Authentication credentials.
type Auth struct {
	Username string
	Password string
}

// A Config describes a single HTTP request for the request driver.
type Config struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.), in any
	// case. An empty string means GET.
	Method string
	// URL specifies the URL to access. It is resolved by the
	// transport, so it may be relative if the transport has a base.
	URL string
	// Header contains the request header fields to be sent.
	//
	// The request driver removes Content-Type when Data is nil or form
	// data, and adds the XSRF and Authorization headers when they
	// apply. It does so on a copy: Header itself is never modified.
	Header Header
	// Data is the request body. It may be nil, or any body type the
	// transport accepts: for the HTTP transport that is string,
	// []byte, url.Values, *form.Data, io.Reader, or io.ReadCloser.
	Data interface{}
	// ResponseType tells the transport how to interpret the response
	// body. Empty means text.
	ResponseType transport.ResponseType
	// Timeout limits the request duration. Zero means no timeout.
	Timeout time.Duration
	// WithCredentials indicates whether cookies are sent with, and
	// stored from, the request. It also enables the XSRF header for
	// cross-origin requests.
	WithCredentials bool
	// XSRFCookieName names the cookie whose value is sent, under the
	// header named by XSRFHeaderName, to same-origin requests and to
	// requests with credentials. Both names must be set for the XSRF
	// header to be sent.
	XSRFCookieName string
	// XSRFHeaderName names the header carrying the XSRF cookie value.
	XSRFHeaderName string
	// OnDownloadProgress, if not nil, receives the transport's
	// download progress events.
	OnDownloadProgress func(transport.ProgressEvent)
	// OnUploadProgress, if not nil, receives the transport's upload
	// progress events.
	OnUploadProgress func(transport.ProgressEvent)
	// Auth, if not nil, causes a Basic Authorization header to be
	// sent, replacing any Authorization header in Header.
	Auth *Auth
	// CancelToken, if not nil, cancels the request when it fires.
	CancelToken cancel.Token
	// ValidateStatus decides whether a response status code means
	// success. If nil, every status code is a success.
	ValidateStatus func(status int) bool
}

// NewConfig returns a Config with the library defaults: an Accept header
// preferring JSON, the XSRF-TOKEN cookie and X-XSRF-TOKEN header names,
// and a status validator accepting only 2XX status codes.
func NewConfig(method, url string, data interface{}) *Config {
	return &Config{
		Method:         method,
		URL:            url,
		Header:         NewHeader("Accept", DefaultAccept),
		Data:           data,
		XSRFCookieName: DefaultXSRFCookieName,
		XSRFHeaderName: DefaultXSRFHeaderName,
		ValidateStatus: DefaultValidateStatus,
	}
}

// DefaultValidateStatus reports whether status is a 2XX status code.
func DefaultValidateStatus(status int) bool {
	return status >= 200 && status < 300
}

// Clone returns a copy of c whose Header shares no storage with c's.
func (c *Config) Clone() *Config {
	c2 := new(Config)
	*c2 = *c
	c2.Header = c.Header.Clone()
	if c.Auth != nil {
		auth := *c.Auth
		c2.Auth = &auth
	}
	return c2
}
