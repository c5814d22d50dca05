// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the errors behind failed requests. The
// HTTP transport uses it to tell a timeout apart from any other network
// failure, and callers may use it to branch on the cause of a failure
// or to bucket error metrics.
//
// Package transient depends only on standard library packages, so it
// doesn't bring any significant dependencies when imported as a
// standalone package.
package transient
