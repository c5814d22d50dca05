// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	c := NewConfig("post", "https://example.com", "foo")
	assert.Equal(t, "post", c.Method)
	assert.Equal(t, "https://example.com", c.URL)
	assert.Equal(t, "foo", c.Data)
	assert.Equal(t, DefaultAccept, c.Header.Get("Accept"))
	assert.Equal(t, "XSRF-TOKEN", c.XSRFCookieName)
	assert.Equal(t, "X-XSRF-TOKEN", c.XSRFHeaderName)
	require.NotNil(t, c.ValidateStatus)
	assert.Zero(t, c.Timeout)
	assert.Empty(t, c.ResponseType)
	assert.False(t, c.WithCredentials)
	assert.Nil(t, c.Auth)
	assert.Nil(t, c.CancelToken)
}

func TestDefaultValidateStatus(t *testing.T) {
	assert.False(t, DefaultValidateStatus(0))
	assert.False(t, DefaultValidateStatus(199))
	assert.True(t, DefaultValidateStatus(200))
	assert.True(t, DefaultValidateStatus(204))
	assert.True(t, DefaultValidateStatus(299))
	assert.False(t, DefaultValidateStatus(300))
	assert.False(t, DefaultValidateStatus(500))
}

func TestConfig_Clone(t *testing.T) {
	c := NewConfig("GET", "/foo", nil)
	c.Auth = &Auth{Username: "u", Password: "p"}
	c2 := c.Clone()
	c2.Header.Set("X-New", "1")
	c2.Auth.Password = "changed"
	c2.URL = "/bar"
	assert.Equal(t, "", c.Header.Get("X-New"))
	assert.Equal(t, "p", c.Auth.Password)
	assert.Equal(t, "/foo", c.URL)
	assert.Equal(t, "1", c2.Header.Get("X-New"))
}
