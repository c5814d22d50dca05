// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"strings"
)

// A Header is an ordered mapping from header name to value. Names are
// case-insensitive: setting "content-type" replaces a value stored under
// "Content-Type". Iteration follows insertion order, and replacing a
// value keeps the entry's original position and spelling.
//
// The zero value is an empty header ready to use.
type Header struct {
	entries []headerEntry
}

type headerEntry struct {
	name  string
	value string
}

// NewHeader returns a header containing the given name/value pairs. It
// panics if given an odd number of arguments.
func NewHeader(pairs ...string) Header {
	if len(pairs)%2 != 0 {
		panic("xhr/request: odd number of header arguments")
	}
	var h Header
	for i := 0; i < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

func (h *Header) index(name string) int {
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].name, name) {
			return i
		}
	}
	return -1
}

// Set sets the value of the named header.
func (h *Header) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.entries[i].value = value
		return
	}
	h.entries = append(h.entries, headerEntry{name: name, value: value})
}

// Get returns the value of the named header, or the empty string.
func (h *Header) Get(name string) string {
	v, _ := h.Lookup(name)
	return v
}

// Lookup returns the value of the named header and whether it is
// present.
func (h *Header) Lookup(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h.entries[i].value, true
	}
	return "", false
}

// Del removes the named header.
func (h *Header) Del(name string) {
	if i := h.index(name); i >= 0 {
		h.entries = append(h.entries[:i], h.entries[i+1:]...)
	}
}

// Len returns the number of headers.
func (h *Header) Len() int {
	return len(h.entries)
}

// Names returns the header names in insertion order.
func (h *Header) Names() []string {
	names := make([]string, len(h.entries))
	for i := range h.entries {
		names[i] = h.entries[i].name
	}
	return names
}

// Each calls fn for each header in insertion order.
func (h *Header) Each(fn func(name, value string)) {
	for _, e := range h.entries {
		fn(e.name, e.value)
	}
}

// Clone returns a copy of h which shares no storage with h.
func (h *Header) Clone() Header {
	if len(h.entries) == 0 {
		return Header{}
	}
	entries := make([]headerEntry, len(h.entries))
	copy(entries, h.entries)
	return Header{entries: entries}
}

// HTTP converts h to an http.Header.
func (h *Header) HTTP() http.Header {
	hh := make(http.Header, len(h.entries))
	for _, e := range h.entries {
		hh.Set(e.name, e.value)
	}
	return hh
}
