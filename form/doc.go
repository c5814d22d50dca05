// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package form provides Data, a multipart form payload which may be used
as the body of a request.

A transport sending a form payload derives the Content-Type header
itself, because only the encoder knows the multipart boundary. For this
reason the request driver strips any caller supplied Content-Type when
the body is form data:

	fd := &form.Data{}
	fd.Append("name", "gopher")
	fd.AppendFile("avatar", "gopher.png", png)
	cfg := request.NewConfig("POST", "https://example.com/upload", fd)
*/
package form
