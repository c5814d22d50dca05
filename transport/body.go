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

	"github.com/gogama/xhr/form"
)

const badBodyTypeMsg = "xhr/transport: invalid type (for body use nil, " +
	"string, []byte, url.Values, *form.Data, io.Reader or io.ReadCloser)"

const (
	textContentType = "text/plain;charset=UTF-8"
	urlContentType  = "application/x-www-form-urlencoded;charset=UTF-8"
)

// BodyBytes converts a generic body parameter to a byte slice and the
// content type the transport implies for it.
//
// • If body is nil, a nil byte slice is returned.
//
// • If body is a string, its bytes and a text/plain content type are
// returned.
//
// • If body is a []byte, body itself is returned with no content type.
//
// • If body is url.Values, its URL encoding and the
// application/x-www-form-urlencoded content type are returned.
//
// • If body is form data, its multipart encoding and the matching
// multipart/form-data content type, including the boundary, are
// returned.
//
// • If body is an io.Reader or io.ReadCloser, the result of reading
// the whole contents of the reader (and closing it if it implements
// Closer) is returned with no content type.
//
// • If body is any other type, an error is returned.
func BodyBytes(body interface{}) (b []byte, contentType string, err error) {
	switch x := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return []byte(x), textContentType, nil
	case []byte:
		return x, "", nil
	case url.Values:
		return []byte(x.Encode()), urlContentType, nil
	case *form.Data:
		if x == nil {
			return nil, "", nil
		}
		contentType, b, err = x.Encode()
		return b, contentType, err
	case form.Data:
		return BodyBytes(&x)
	case io.ReadCloser:
		b, err = ioutil.ReadAll(x)
		if err != nil {
			return nil, "", err
		}
		err = x.Close()
		if err != nil {
			return nil, "", err
		}
		return b, "", nil
	case io.Reader:
		return BodyBytes(ioutil.NopCloser(x))
	default:
		return nil, "", errors.New(badBodyTypeMsg)
	}
}

// progressReader reports each successful read to fn along with the
// running byte count.
type progressReader struct {
	r      *bytes.Reader
	loaded int64
	fn     func(loaded int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.fn(p.loaded)
	}
	return n, err
}
