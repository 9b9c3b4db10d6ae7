package services

import (
	"context"
	"time"
)

// Base latencies of the remote store operations before scaling.
const (
	LatencyAuth   = 500 * time.Millisecond
	LatencyList   = 300 * time.Millisecond
	LatencyCreate = 200 * time.Millisecond
	LatencyUpdate = 150 * time.Millisecond
	LatencyDelete = 150 * time.Millisecond
	LatencyClear  = 250 * time.Millisecond
)

// Latency delays each operation by its base latency times Scale.
type Latency struct {
	Scale float64
}

// Wait blocks for base*Scale or until ctx is done, whichever comes first.
func (l Latency) Wait(ctx context.Context, base time.Duration) error {
	d := time.Duration(float64(base) * l.Scale)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
