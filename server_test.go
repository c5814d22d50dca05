// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transport"
)

var httpServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var httpsServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var http2Server = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var servers = []*httptest.Server{httpServer, httpsServer, http2Server}

func TestMain(m *testing.M) {
	httpServer.Start()
	defer httpServer.Close()
	httpsServer.StartTLS()
	defer httpsServer.Close()
	http2Server.EnableHTTP2 = true
	http2Server.StartTLS()
	defer http2Server.Close()
	waitForServerStart(httpServer)
	waitForServerStart(httpsServer)
	waitForServerStart(http2Server)
	os.Exit(m.Run())
}

func waitForServerStart(server *httptest.Server) {
	cl := serverClient(server)
	deadline := time.Now().Add(10 * time.Second)
	for {
		cfg := (&serverInstruction{StatusCode: 200}).toConfig(server)
		cfg.Timeout = 2 * time.Second
		resp, err := cl.Do(cfg)
		if err == nil && resp.Status == 200 {
			return
		}
		if time.Now().After(deadline) {
			panic(fmt.Sprintf("Test server startup failed with error %v", err))
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func serverClient(server *httptest.Server) *Client {
	return &Client{
		Transport: &transport.HTTP{
			Doer: server.Client(),
		},
	}
}

func serverName(server *httptest.Server) string {
	switch server {
	case httpServer:
		return "http"
	case httpsServer:
		return "https"
	case http2Server:
		return "http2"
	default:
		panic("unknown server")
	}
}

type bodyChunk struct {
	Pause time.Duration
	Data  []byte
}

type serverInstruction struct {
	HeaderPause time.Duration
	StatusCode  int
	Header      map[string]string
	Body        []bodyChunk
}

func (i *serverInstruction) toJSON() []byte {
	b, err := json.Marshal(i)
	if err != nil {
		panic(err)
	}

	return b
}

// toConfig returns a POST config without the library's default status
// validation, so every status code is a success.
func (i *serverInstruction) toConfig(server *httptest.Server) *request.Config {
	cfg := request.NewConfig("POST", server.URL, i.toJSON())
	cfg.ValidateStatus = nil
	cfg.Header.Set("Content-Type", "application/json")
	return cfg
}

func (i *serverInstruction) fromRequest(req *http.Request) error {
	b, err := io.ReadAll(req.Body)
	_ = req.Body.Close()

	if err != nil {
		return err
	}

	return json.Unmarshal(b, i)
}

func serverHandler(w http.ResponseWriter, req *http.Request) {
	// Decode the instructions.
	var i serverInstruction
	err := i.fromRequest(req)
	if err != nil {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, fmt.Sprintf("failed to read request: %s", err.Error()))
		return
	}

	// Validate the instruction.
	if i.StatusCode == 0 {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, fmt.Sprintf("bad StatusCode in instruction: %v", i))
		return
	}

	// Get the Flusher, panicking if it's not available.
	f, ok := w.(http.Flusher)
	if !ok {
		panic("w does not implement Flusher")
	}

	// Determine the content length of the response.
	contentLength := 0
	for _, chunk := range i.Body {
		contentLength += len(chunk.Data)
	}

	// Create the response headers. Request headers the client sent are
	// echoed back with an "Echo-" prefix.
	header := w.Header()
	header.Add("Content-Length", strconv.Itoa(contentLength))
	for name, value := range i.Header {
		header.Set(name, value)
	}
	for name, values := range req.Header {
		for _, value := range values {
			header.Add("Echo-"+name, value)
		}
	}

	// Sleep for the duration indicated by the pause field. This is done
	// to allow the client to play with timeouts.
	time.Sleep(i.HeaderPause)

	// Return the HTTP response stipulated by the client.
	w.WriteHeader(i.StatusCode)
	f.Flush()

	// Write the response in chunks, pausing before each chunk.
	for _, chunk := range i.Body {
		if chunk.Pause > 0 {
			time.Sleep(chunk.Pause)
		}
		_, err = w.Write(chunk.Data)
		if err != nil {
			return
		}
		f.Flush()
	}
}
