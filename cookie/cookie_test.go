// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cookie

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	d := Document("a=1; XSRF-TOKEN=abc123;b=hello%20world; empty=; junk")
	testCases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"a", "1", true},
		{"XSRF-TOKEN", "abc123", true},
		{"b", "hello world", true},
		{"empty", "", true},
		{"junk", "", false},
		{"xsrf-token", "", false},
		{"TOKEN", "", false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			v, ok := d.Read(testCase.name)
			assert.Equal(t, testCase.ok, ok)
			assert.Equal(t, testCase.value, v)
		})
	}
	_, ok := Document("").Read("a")
	assert.False(t, ok)
}

func TestMap(t *testing.T) {
	m := Map{"XSRF-TOKEN": "abc123"}
	v, ok := m.Read("XSRF-TOKEN")
	assert.True(t, ok)
	assert.Equal(t, "abc123", v)
	_, ok = m.Read("other")
	assert.False(t, ok)
}

func TestJar(t *testing.T) {
	u, err := url.Parse("https://www.example.com/app")
	require.NoError(t, err)
	jar := NewJar()
	jar.SetCookies(u, []*http.Cookie{
		{Name: "XSRF-TOKEN", Value: "abc123", Path: "/"},
		{Name: "session", Value: "s3cr3t", Path: "/"},
	})

	t.Run("hit", func(t *testing.T) {
		j := &Jar{Jar: jar, URL: u}
		v, ok := j.Read("XSRF-TOKEN")
		assert.True(t, ok)
		assert.Equal(t, "abc123", v)
	})
	t.Run("miss", func(t *testing.T) {
		j := &Jar{Jar: jar, URL: u}
		_, ok := j.Read("nope")
		assert.False(t, ok)
	})
	t.Run("other host", func(t *testing.T) {
		other, err := url.Parse("https://evil.example.org/")
		require.NoError(t, err)
		j := &Jar{Jar: jar, URL: other}
		_, ok := j.Read("XSRF-TOKEN")
		assert.False(t, ok)
	})
	t.Run("zero value", func(t *testing.T) {
		_, ok := (&Jar{}).Read("XSRF-TOKEN")
		assert.False(t, ok)
	})
}
