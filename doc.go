// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package xhr drives single HTTP requests through an XMLHttpRequest-style
transport and turns the transport's events into exactly one outcome.

Create a Client and a request configuration to begin making requests.

	client := &xhr.Client{}
	resp, err := client.Get("https://www.example.com")
	...
	cfg := request.NewConfig("POST", "https://www.example.com/upload", data)
	cfg.Timeout = 5 * time.Second
	cfg.ResponseType = transport.JSON
	resp, err := client.Do(cfg)

Whichever of completion, network error, timeout, or cancellation happens
first settles the call; later transport events are ignored. Errors are
either an *Error, whose Code tells timeouts (CodeAborted) apart from
other failures, or the reason of the request's cancel token:

	src := cancel.NewSource()
	cfg.CancelToken = src.Token()
	call := client.Go(cfg)
	src.Cancel("user navigated away")
	_, err := call.Wait() // err is *cancel.Cancel{Message: "user navigated away"}

For control over how requests are sent, configure the transport:

	client := &xhr.Client{
		Transport: &transport.HTTP{
			Doer:    &http.Client{...},
			Jar:     jar,
			Limiter: rate.NewLimiter(10, 1),
		},
		Cookies: &cookie.Jar{Jar: jar, URL: origin},
		Origin:  origin,
	}

To hook into a call, install a handler into the appropriate handler
chain:

	handlers := &xhr.HandlerGroup{}
	handlers.PushBack(xhr.AfterSettle, xhr.HandlerFunc(
		func(_ xhr.Event, e *xhr.Execution) {
			log.Printf("%s %s took %s", e.Config.Method, e.Config.URL, e.Duration())
		}),
	)
	client := &xhr.Client{
		Handlers: handlers,
	}

Package xhr provides basic interfaces for each method of the client
(Doer, Getter, Header, Poster, FormPoster, and IdleCloser); a combined
interface that composes all the basic methods (Executor); and utility
functions for working with a Doer (Inflate, Get, Head, Post, and
PostForm).
*/
package xhr
