// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cookie provides read-only access to cookie stores for the
// purpose of XSRF protection.
package cookie

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// A Store reads cookie values by name.
//
// Implementations of Store must be safe for concurrent use by multiple
// goroutines.
type Store interface {
	// Read returns the value of the named cookie and true, or the
	// empty string and false if there is no such cookie.
	Read(name string) (string, bool)
}

// Document is a cookie store backed by a string in the format of a
// browser's document.cookie, for example "a=1; XSRF-TOKEN=abc123".
// Values are percent-decoded when read.
type Document string

// Read returns the value of the first cookie in d named name.
func (d Document) Read(name string) (string, bool) {
	for _, pair := range strings.Split(string(d), ";") {
		pair = strings.TrimSpace(pair)
		i := strings.IndexByte(pair, '=')
		if i < 0 || pair[:i] != name {
			continue
		}
		v := pair[i+1:]
		if u, err := url.PathUnescape(v); err == nil {
			v = u
		}
		return v, true
	}
	return "", false
}

// Map is a cookie store backed by a map from name to value.
type Map map[string]string

// Read returns the value stored in m under name.
func (m Map) Read(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// A Jar is a cookie store backed by an http.CookieJar. It reads the
// cookies the jar would send to URL.
type Jar struct {
	Jar http.CookieJar
	URL *url.URL
}

// Read returns the value of the named cookie the jar holds for j.URL.
func (j *Jar) Read(name string) (string, bool) {
	if j.Jar == nil || j.URL == nil {
		return "", false
	}
	for _, c := range j.Jar.Cookies(j.URL) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// NewJar returns an empty in-memory cookie jar which uses the public
// suffix list to scope domain cookies.
func NewJar() http.CookieJar {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		// cookiejar.New never returns an error.
		panic(err)
	}
	return jar
}
