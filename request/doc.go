// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains Config, the description of a single HTTP
request handed to the request driver, and Header, the ordered,
case-insensitive header mapping it carries.

A zero Config plus a URL is a valid request. NewConfig fills in the
library defaults, which is usually what you want:

	cfg := request.NewConfig("POST", "https://example.com/upload", body)
	cfg.Header.Set("Content-Type", "application/json")
	cfg.Timeout = 10 * time.Second
	resp, err := client.Do(cfg)

Most optional settings follow a sparse-override rule: a zero value
means "not set" and leaves the underlying transport's own default in
place. In particular a zero Timeout means no timeout, an empty
ResponseType means text, and a nil ValidateStatus accepts every status
code.

The request driver never modifies a Config, so one Config may be used
for several requests, one at a time or concurrently, provided nobody
changes it in the meantime.
*/
package request
