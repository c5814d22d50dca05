// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package origin

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSame(t *testing.T) {
	current, err := url.Parse("https://www.example.com:8443/app/index.html")
	require.NoError(t, err)

	testCases := []struct {
		url  string
		same bool
	}{
		{"/api/users", true},
		{"api/users", true},
		{"?q=1", true},
		{"https://www.example.com:8443/other", true},
		{"HTTPS://WWW.EXAMPLE.COM:8443/other", true},
		{"//www.example.com:8443/proto-relative", true},
		{"https://www.example.com/", false},
		{"http://www.example.com:8443/", false},
		{"https://api.example.com:8443/", false},
		{"//evil.example.org/", false},
		{"%zz", false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.url, func(t *testing.T) {
			assert.Equal(t, testCase.same, IsSame(testCase.url, current))
		})
	}

	t.Run("nil current", func(t *testing.T) {
		assert.False(t, IsSame("/api/users", nil))
	})
}
