// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		var h Header
		assert.Equal(t, 0, h.Len())
		assert.Equal(t, "", h.Get("Foo"))
		_, ok := h.Lookup("Foo")
		assert.False(t, ok)
		h.Del("Foo")
		assert.Empty(t, h.Names())
		assert.Equal(t, http.Header{}, h.HTTP())
	})

	t.Run("case insensitive", func(t *testing.T) {
		h := NewHeader("Content-Type", "text/plain", "X-Foo", "bar")
		assert.Equal(t, "text/plain", h.Get("content-type"))
		h.Set("CONTENT-TYPE", "application/json")
		assert.Equal(t, 2, h.Len())
		assert.Equal(t, []string{"Content-Type", "X-Foo"}, h.Names())
		assert.Equal(t, "application/json", h.Get("Content-Type"))
		h.Del("x-foo")
		assert.Equal(t, []string{"Content-Type"}, h.Names())
	})

	t.Run("insertion order", func(t *testing.T) {
		var h Header
		h.Set("Zeta", "1")
		h.Set("alpha", "2")
		h.Set("Mu", "3")
		h.Set("ZETA", "4")
		var seen []string
		h.Each(func(name, value string) {
			seen = append(seen, name+"="+value)
		})
		assert.Equal(t, []string{"Zeta=4", "alpha=2", "Mu=3"}, seen)
	})

	t.Run("empty value is present", func(t *testing.T) {
		h := NewHeader("X-Empty", "")
		v, ok := h.Lookup("x-empty")
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("Clone", func(t *testing.T) {
		h := NewHeader("A", "1", "B", "2")
		c := h.Clone()
		c.Set("A", "changed")
		c.Del("B")
		c.Set("C", "3")
		assert.Equal(t, []string{"A", "B"}, h.Names())
		assert.Equal(t, "1", h.Get("A"))
		assert.Equal(t, []string{"A", "C"}, c.Names())
		var empty Header
		emptyClone := empty.Clone()
		assert.Equal(t, 0, emptyClone.Len())
	})

	t.Run("HTTP", func(t *testing.T) {
		h := NewHeader("content-type", "text/plain", "X-Foo", "bar")
		assert.Equal(t, http.Header{
			"Content-Type": {"text/plain"},
			"X-Foo":        {"bar"},
		}, h.HTTP())
	})

	t.Run("NewHeader odd", func(t *testing.T) {
		assert.Panics(t, func() { NewHeader("A") })
	})
}
