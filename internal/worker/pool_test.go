package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countJob struct {
	n   *atomic.Int64
	err error
}

func (j countJob) Name() string { return "count" }

func (j countJob) Run(context.Context) error {
	j.n.Add(1)
	return j.err
}

func TestPool_DrainRunsEveryJob(t *testing.T) {
	var n atomic.Int64
	p := NewPool(4, 100)
	p.Start(context.Background())

	for i := 0; i < 100; i++ {
		var err error
		if i%10 == 0 {
			err = errors.New("boom")
		}
		assert.True(t, p.Submit(context.Background(), countJob{n: &n, err: err}))
	}
	p.Drain()

	assert.Equal(t, int64(100), n.Load())
	assert.Zero(t, p.QueueSize())
}

func TestPool_SubmitAfterCancel(t *testing.T) {
	p := NewPool(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var n atomic.Int64
	assert.True(t, p.Submit(context.Background(), countJob{n: &n}))
	assert.False(t, p.Submit(ctx, countJob{n: &n}), "queue is full and ctx is done")
	p.Stop()
	assert.Zero(t, n.Load(), "no worker was started")
}

func TestPool_StopIsIdempotentWithDrain(t *testing.T) {
	p := NewPool(2, 2)
	p.Start(context.Background())
	p.Drain()
	p.Stop()
}
