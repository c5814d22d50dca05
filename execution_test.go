// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecution_StatusCode(t *testing.T) {
	assert.Equal(t, 0, (&Execution{}).StatusCode())
	assert.Equal(t, 201, (&Execution{Response: &Response{Status: 201}}).StatusCode())
}

func TestExecution_Duration(t *testing.T) {
	var e Execution
	assert.False(t, e.Started())
	assert.False(t, e.Ended())
	assert.Equal(t, time.Duration(0), e.Duration())

	e.Start = time.Now().Add(-time.Second)
	assert.True(t, e.Started())
	assert.GreaterOrEqual(t, int64(e.Duration()), int64(time.Second))

	e.End = e.Start.Add(3 * time.Second)
	assert.True(t, e.Ended())
	assert.Equal(t, 3*time.Second, e.Duration())
}

func TestExecution_Timeout(t *testing.T) {
	assert.False(t, (&Execution{}).Timeout())
	assert.False(t, (&Execution{Err: &Error{Message: "Network Error"}}).Timeout())
	assert.True(t, (&Execution{Err: &Error{Code: CodeAborted}}).Timeout())
}

type execKey string

func TestExecution_Value(t *testing.T) {
	var e Execution
	assert.Nil(t, e.Value(execKey("a")))
	e.SetValue(execKey("a"), 1)
	e.SetValue(execKey("b"), "two")
	assert.Equal(t, 1, e.Value(execKey("a")))
	assert.Equal(t, "two", e.Value(execKey("b")))
	assert.Nil(t, e.Value(execKey("c")))
}
