// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"net/url"
	"strings"
	"testing"

	"github.com/gogama/xhr/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBodyBytes(t *testing.T) {
	var b []byte
	var ct string
	var err error
	t.Run("happy path", func(t *testing.T) {
		b, ct, err = BodyBytes(nil)
		assert.Nil(t, b)
		assert.Empty(t, ct)
		assert.NoError(t, err)
		b, ct, err = BodyBytes("foo")
		assert.Equal(t, []byte("foo"), b)
		assert.Equal(t, textContentType, ct)
		assert.NoError(t, err)
		b2 := []byte("bar")
		b, ct, err = BodyBytes(b2)
		assert.Equal(t, []byte("bar"), b)
		assert.Empty(t, ct)
		b, ct, err = BodyBytes(url.Values{"ham": {"eggs", "spam"}})
		assert.Equal(t, []byte("ham=eggs&ham=spam"), b)
		assert.Equal(t, urlContentType, ct)
		b, ct, err = BodyBytes(strings.NewReader("baz"))
		assert.Equal(t, []byte("baz"), b)
		assert.NoError(t, err)
		b, ct, err = BodyBytes(ioutil.NopCloser(bytes.NewReader(b2)))
		assert.Equal(t, []byte("bar"), b)
		assert.NoError(t, err)
		b, ct, err = BodyBytes(10)
		assert.Nil(t, b)
		assert.EqualError(t, err, badBodyTypeMsg)
	})
	t.Run("form", func(t *testing.T) {
		fd := form.Data{}
		fd.Append("ham", "eggs")
		b, ct, err = BodyBytes(fd)
		assert.NoError(t, err)
		assert.Contains(t, ct, "multipart/form-data; boundary=")
		assert.Contains(t, string(b), "eggs")
		var nilData *form.Data
		b, ct, err = BodyBytes(nilData)
		assert.Nil(t, b)
		assert.Empty(t, ct)
		assert.NoError(t, err)
	})
	t.Run("reader errors", func(t *testing.T) {
		expectedErr := errors.New("ham")
		t.Run("Read", func(t *testing.T) {
			m := &mockReadCloser{}
			m.Test(t)
			m.On("Read", mock.Anything).Return(10, expectedErr).Once()
			b, _, err = BodyBytes(m)
			assert.Nil(t, b)
			assert.Error(t, err)
			assert.Same(t, expectedErr, err)
			m.AssertExpectations(t)
		})
		t.Run("Close", func(t *testing.T) {
			m := &mockReadCloser{}
			m.Test(t)
			m.On("Read", mock.Anything).Return(0, io.EOF).Once()
			m.On("Close").Return(expectedErr).Once()
			b, _, err = BodyBytes(m)
			assert.Nil(t, b)
			assert.Error(t, err)
			assert.Same(t, expectedErr, err)
			m.AssertExpectations(t)
		})
	})
}

func TestProgressReader(t *testing.T) {
	var seen []int64
	p := &progressReader{
		r:  bytes.NewReader([]byte("0123456789")),
		fn: func(loaded int64) { seen = append(seen, loaded) },
	}
	buf := make([]byte, 4)
	for {
		_, err := p.Read(buf)
		if err != nil {
			assert.Equal(t, io.EOF, err)
			break
		}
	}
	assert.Equal(t, []int64{4, 8, 10}, seen)
}

type mockReadCloser struct {
	mock.Mock
}

func (m *mockReadCloser) Read(p []byte) (n int, err error) {
	args := m.Called(p)
	n = args.Int(0)
	err = args.Error(1)
	return
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}
