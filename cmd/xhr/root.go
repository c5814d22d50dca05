// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogama/xhr"
	"github.com/gogama/xhr/cancel"
	"github.com/gogama/xhr/cookie"
	"github.com/gogama/xhr/form"
	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transport"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// Version information (set by build flags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	method          string
	headers         []string
	data            string
	fields          []string
	timeout         time.Duration
	user            string
	withCredentials bool
	xsrfCookieName  string
	xsrfHeaderName  string
	cookies         string
	origin          string
	responseType    string
	fail            bool
	rate            float64
	include         bool
	progress        bool
	verbose         int
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "xhr [flags] URL",
		Short: "Send one HTTP request the way a browser XMLHttpRequest would",
		Long: `xhr sends a single HTTP request and prints the response body.

The request goes through the same driver a program using the xhr package
gets: sparse configuration, XSRF cookie to header propagation, Basic auth,
status validation, timeouts and cancellation (press Ctrl-C).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0])
		},
	}
	cmd.AddCommand(versionCmd())

	flags := cmd.Flags()
	flags.StringVarP(&o.method, "method", "X", "", "HTTP method (default GET, or POST when a body is given)")
	flags.StringArrayVarP(&o.headers, "header", "H", nil, "Extra header (repeatable, e.g., -H 'X-Custom: value')")
	flags.StringVarP(&o.data, "data", "d", "", "Request body sent as text")
	flags.StringArrayVarP(&o.fields, "form", "F", nil, "Multipart form field name=value, or name=@file to attach a file (repeatable)")
	flags.DurationVar(&o.timeout, "timeout", 0, "Request timeout (0 means none)")
	flags.StringVarP(&o.user, "user", "u", "", "Basic auth credentials as user:password")
	flags.BoolVar(&o.withCredentials, "with-credentials", false, "Send and store cookies, and send the XSRF header cross-origin")
	flags.StringVar(&o.xsrfCookieName, "xsrf-cookie", request.DefaultXSRFCookieName, "Name of the XSRF cookie")
	flags.StringVar(&o.xsrfHeaderName, "xsrf-header", request.DefaultXSRFHeaderName, "Name of the XSRF header")
	flags.StringVar(&o.cookies, "cookie", "", "Cookie string (e.g., 'a=1; XSRF-TOKEN=abc')")
	flags.StringVar(&o.origin, "origin", "", "URL of the page the request is made from")
	flags.StringVar(&o.responseType, "response-type", "", "Response type (text, json, arraybuffer, blob)")
	flags.BoolVar(&o.fail, "fail", false, "Fail on a status code outside 2XX")
	flags.Float64Var(&o.rate, "rate", 0, "Maximum requests per second (0 means unlimited)")
	flags.BoolVarP(&o.include, "include", "i", false, "Print the status line and response headers")
	flags.BoolVar(&o.progress, "progress", false, "Print progress events to stderr")
	flags.CountVarP(&o.verbose, "verbose", "v", "Verbosity (repeat for more)")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "xhr %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func (o *options) run(cmd *cobra.Command, rawURL string) error {
	cfg, err := o.config(rawURL)
	if err != nil {
		return err
	}
	if o.progress {
		cfg.OnDownloadProgress = printProgress(cmd.ErrOrStderr(), "download")
		cfg.OnUploadProgress = printProgress(cmd.ErrOrStderr(), "upload")
	}

	cl, err := o.client(rawURL, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	// Ctrl-C cancels the request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cfg.CancelToken = cancel.WithContext(ctx)

	resp, err := cl.Do(cfg)
	var xe *xhr.Error
	if errors.As(err, &xe) && xe.Response != nil {
		resp = xe.Response
	} else if errors.Is(err, context.Canceled) {
		return errors.New("interrupted")
	} else if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.include {
		writeHead(out, resp)
	}
	if werr := writeData(out, resp.Data); werr != nil {
		return werr
	}
	return err
}

// config builds the request configuration from the flags.
func (o *options) config(rawURL string) (*request.Config, error) {
	var data interface{}
	switch {
	case o.data != "" && len(o.fields) > 0:
		return nil, errors.New("--data and --form are mutually exclusive")
	case o.data != "":
		data = o.data
	case len(o.fields) > 0:
		fd, err := formData(o.fields)
		if err != nil {
			return nil, err
		}
		data = fd
	}

	method := o.method
	if method == "" {
		method = "GET"
		if data != nil {
			method = "POST"
		}
	}

	cfg := request.NewConfig(method, rawURL, data)
	for _, raw := range o.headers {
		name, value, ok := strings.Cut(raw, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q (use 'Name: value')", raw)
		}
		cfg.Header.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if o.user != "" {
		username, password, _ := strings.Cut(o.user, ":")
		cfg.Auth = &request.Auth{Username: username, Password: password}
	}

	rt := transport.ResponseType(o.responseType)
	if !rt.Valid() {
		return nil, fmt.Errorf("invalid response type %q", o.responseType)
	}
	cfg.ResponseType = rt
	cfg.Timeout = o.timeout
	cfg.WithCredentials = o.withCredentials
	cfg.XSRFCookieName = o.xsrfCookieName
	cfg.XSRFHeaderName = o.xsrfHeaderName
	if !o.fail {
		cfg.ValidateStatus = nil
	}

	return cfg, nil
}

// client builds the client from the flags. Cookies given with --cookie
// are both readable for the XSRF header and held in the transport's jar
// for requests with credentials.
func (o *options) client(rawURL string, logOut io.Writer) (*xhr.Client, error) {
	logger := newLogger(logOut, o.verbose)
	tr := &transport.HTTP{
		Doer:   &http.Client{},
		Logger: logger,
	}
	cl := &xhr.Client{
		Transport: tr,
		Logger:    logger,
	}

	if o.rate > 0 {
		tr.Limiter = rate.NewLimiter(rate.Limit(o.rate), 1)
	}

	if o.origin != "" {
		u, err := url.Parse(o.origin)
		if err != nil {
			return nil, fmt.Errorf("invalid origin: %w", err)
		}
		cl.Origin = u
		tr.Base = u
	}

	jar := cookie.NewJar()
	tr.Jar = jar
	if o.cookies != "" {
		cl.Cookies = cookie.Document(o.cookies)
		parsed, err := http.ParseCookie(o.cookies)
		if err != nil {
			return nil, fmt.Errorf("invalid cookie string: %w", err)
		}
		target, err := url.Parse(rawURL)
		if err != nil {
			return nil, err
		}
		if tr.Base != nil {
			target = tr.Base.ResolveReference(target)
		}
		jar.SetCookies(target, parsed)
	}

	return cl, nil
}

func formData(fields []string) (*form.Data, error) {
	fd := &form.Data{}
	for _, field := range fields {
		name, value, ok := strings.Cut(field, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid form field %q (use name=value or name=@file)", field)
		}
		if path, isFile := strings.CutPrefix(value, "@"); isFile {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			fd.AppendFile(name, filepath.Base(path), content)
			continue
		}
		fd.Append(name, value)
	}
	return fd, nil
}

// newLogger maps the verbosity count onto a slog level: errors only by
// default, then warnings, info and debug.
func newLogger(w io.Writer, verbose int) *slog.Logger {
	level := slog.LevelError
	switch {
	case verbose >= 3:
		level = slog.LevelDebug
	case verbose == 2:
		level = slog.LevelInfo
	case verbose == 1:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printProgress(w io.Writer, direction string) func(transport.ProgressEvent) {
	return func(pe transport.ProgressEvent) {
		if pe.LengthComputable {
			fmt.Fprintf(w, "[%s] %d/%d bytes\n", direction, pe.Loaded, pe.Total)
		} else {
			fmt.Fprintf(w, "[%s] %d bytes\n", direction, pe.Loaded)
		}
	}
}

func writeHead(w io.Writer, resp *xhr.Response) {
	fmt.Fprintf(w, "%d %s\n", resp.Status, resp.StatusText)
	for _, line := range strings.Split(resp.Request.AllResponseHeaders(), "\r\n") {
		if line != "" {
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}

func writeData(w io.Writer, data interface{}) error {
	switch d := data.(type) {
	case nil:
		return nil
	case string:
		_, err := io.WriteString(w, d)
		return err
	case []byte:
		_, err := w.Write(d)
		return err
	default:
		b, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
}
