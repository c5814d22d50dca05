// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package origin compares request URLs against the origin the client
// is acting on behalf of.
package origin

import (
	"net/url"
	"strings"
)

// IsSame reports whether requestURL has the same origin as current.
// Relative request URLs are resolved against current first. Two URLs
// share an origin when their schemes and hosts, including any explicit
// port, are equal.
//
// If current is nil there is no origin to compare against and IsSame
// returns false.
func IsSame(requestURL string, current *url.URL) bool {
	if current == nil {
		return false
	}
	u, err := url.Parse(requestURL)
	if err != nil {
		return false
	}
	u = current.ResolveReference(u)
	return strings.EqualFold(u.Scheme, current.Scheme) &&
		strings.EqualFold(u.Host, current.Host)
}
