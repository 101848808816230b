package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStubPool(capacity int, launchErr error) *ChromePool {
	p := NewChromePool(capacity, true, zap.NewNop())
	p.launch = func(context.Context) (Session, error) {
		if launchErr != nil {
			return nil, launchErr
		}
		return &recordingSession{}, nil
	}
	return p
}

func TestPoolAcquireRelease(t *testing.T) {
	p := newStubPool(2, nil)

	s1, err := p.Acquire(context.Background())
	require.NoError(t, err)
	s2, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, p.InUse())

	p.Release(s1)
	p.Release(s2)
	assert.EqualValues(t, 0, p.InUse())
}

func TestPoolBlocksAtCapacity(t *testing.T) {
	p := newStubPool(1, nil)

	s, err := p.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = p.Acquire(ctx)
	require.ErrorIs(t, err, ErrDriverUnavailable)

	// Slot frees up after release.
	p.Release(s)
	s2, err := p.Acquire(context.Background())
	require.NoError(t, err)
	p.Release(s2)
	assert.EqualValues(t, 0, p.InUse())
}

func TestPoolLaunchFailureReturnsSlot(t *testing.T) {
	p := newStubPool(1, errors.New("chrome executable not found"))

	_, err := p.Acquire(context.Background())
	require.ErrorIs(t, err, ErrDriverUnavailable)
	assert.EqualValues(t, 0, p.InUse())

	// The failed acquisition must not consume capacity.
	p.launch = func(context.Context) (Session, error) { return &recordingSession{}, nil }
	s, err := p.Acquire(context.Background())
	require.NoError(t, err)
	p.Release(s)
}

func TestPoolCanceledContext(t *testing.T) {
	p := newStubPool(1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Acquire(ctx)
	require.ErrorIs(t, err, ErrDriverUnavailable)
	assert.EqualValues(t, 0, p.InUse())
}
