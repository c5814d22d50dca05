// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cancel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	t.Run("not fired", func(t *testing.T) {
		src := NewSource()
		select {
		case <-src.Token().Done():
			t.Fatal("token fired before Cancel")
		default:
		}
		assert.NoError(t, src.Token().Reason())
	})
	t.Run("Cancel", func(t *testing.T) {
		src := NewSource()
		src.Cancel("stopped")
		<-src.Token().Done()
		err := src.Token().Reason()
		require.Error(t, err)
		assert.EqualError(t, err, "stopped")
		assert.True(t, IsCancel(err))
	})
	t.Run("first wins", func(t *testing.T) {
		src := NewSource()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				src.Cancel(fmt.Sprintf("reason %d", i))
			}(i)
		}
		wg.Wait()
		first := src.Token().Reason()
		src.Cancel("late")
		src.CancelWithReason(errors.New("later"))
		assert.Same(t, first, src.Token().Reason())
	})
	t.Run("CancelWithReason", func(t *testing.T) {
		src := NewSource()
		reason := errors.New("custom")
		src.CancelWithReason(reason)
		assert.Same(t, reason, src.Token().Reason())
		assert.False(t, IsCancel(reason))
		assert.Panics(t, func() { NewSource().CancelWithReason(nil) })
	})
}

func TestCancel_Error(t *testing.T) {
	assert.Equal(t, "canceled", (&Cancel{}).Error())
	assert.Equal(t, "foo", (&Cancel{Message: "foo"}).Error())
	assert.True(t, IsCancel(fmt.Errorf("wrapped: %w", &Cancel{})))
	assert.False(t, IsCancel(nil))
}

func TestWithContext(t *testing.T) {
	assert.Panics(t, func() { WithContext(nil) })
	ctx, cancel := context.WithCancel(context.Background())
	tok := WithContext(ctx)
	assert.NoError(t, tok.Reason())
	cancel()
	<-tok.Done()
	assert.Same(t, context.Canceled, tok.Reason())
}
