// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package form

import (
	"bytes"
	"mime/multipart"
)

// Data is an ordered multipart form payload. Its zero value is an
// empty form ready to use.
type Data struct {
	parts []part
}

type part struct {
	name     string
	value    string
	filename string
	content  []byte
	isFile   bool
}

// Append adds a plain field to the form.
func (d *Data) Append(name, value string) {
	d.parts = append(d.parts, part{name: name, value: value})
}

// AppendFile adds a file field to the form.
func (d *Data) AppendFile(name, filename string, content []byte) {
	d.parts = append(d.parts, part{
		name:     name,
		filename: filename,
		content:  content,
		isFile:   true,
	})
}

// Get returns the value of the first plain field with the given name.
func (d *Data) Get(name string) (string, bool) {
	for _, p := range d.parts {
		if !p.isFile && p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// Len returns the number of fields, plain and file, in the form.
func (d *Data) Len() int {
	return len(d.parts)
}

// Encode renders the form as a multipart/form-data body. The returned
// content type carries the boundary used to delimit the parts.
func (d *Data) Encode() (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range d.parts {
		if p.isFile {
			fw, err := w.CreateFormFile(p.name, p.filename)
			if err != nil {
				return "", nil, err
			}
			if _, err = fw.Write(p.content); err != nil {
				return "", nil, err
			}
		} else if err = w.WriteField(p.name, p.value); err != nil {
			return "", nil, err
		}
	}
	if err = w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

// Is reports whether v is a form payload.
func Is(v interface{}) bool {
	switch x := v.(type) {
	case *Data:
		return x != nil
	case Data:
		return true
	default:
		return false
	}
}
