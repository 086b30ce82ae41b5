package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type refreshFunc func(ctx context.Context) error

func (f refreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

var errSessionExpired = errors.New("session expired")

func TestStartRefreshesImmediately(t *testing.T) {
	var calls atomic.Int32
	p := New(refreshFunc(func(context.Context) error {
		calls.Add(1)
		return nil
	}), 0, nil, nil)
	defer p.Stop()

	msg := p.Start()()
	assert.Equal(t, SyncResultMsg{}, msg)
	assert.Equal(t, int32(1), calls.Load())

	status := p.Status()
	assert.Equal(t, SyncIdle, status.State)
	assert.False(t, status.LastSync.IsZero())
	assert.Nil(t, p.Start(), "second start is a no-op")
}

func TestTriggerRunsAnotherRefresh(t *testing.T) {
	var calls atomic.Int32
	p := New(refreshFunc(func(context.Context) error {
		calls.Add(1)
		return nil
	}), 0, nil, nil)
	defer p.Stop()

	p.Start()()
	p.Trigger()
	p.WaitForNextResult()()

	assert.Equal(t, int32(2), calls.Load())
}

func TestAuthFailureIsFlagged(t *testing.T) {
	isAuthErr := func(err error) bool { return errors.Is(err, errSessionExpired) }
	p := New(refreshFunc(func(context.Context) error {
		return errSessionExpired
	}), 0, isAuthErr, nil)
	defer p.Stop()

	msg, ok := p.Start()().(SyncResultMsg)
	require.True(t, ok)
	assert.True(t, msg.AuthExpired)
	assert.Error(t, msg.Error)
	assert.Equal(t, SyncError, p.Status().State)
}

func TestOtherFailuresAreNotFlagged(t *testing.T) {
	p := New(refreshFunc(func(context.Context) error {
		return errors.New("connection refused")
	}), 0, nil, nil)
	defer p.Stop()

	msg, ok := p.Start()().(SyncResultMsg)
	require.True(t, ok)
	assert.False(t, msg.AuthExpired)
	assert.Error(t, msg.Error)
}

func TestStopCancelsInFlightRefresh(t *testing.T) {
	started := make(chan struct{})
	var canceled atomic.Bool
	p := New(refreshFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		canceled.Store(errors.Is(ctx.Err(), context.Canceled))
		return ctx.Err()
	}), time.Hour, nil, nil)

	wait := p.Start()
	<-started
	p.Stop()

	assert.True(t, canceled.Load())
	// The failed refresh result may or may not have been buffered; either
	// way waiting must not block once the poller is stopped.
	_ = wait()
}
