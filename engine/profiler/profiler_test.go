package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickSamplesOncePerInterval(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	clock := time.Unix(0, 0)
	p := NewProfiler(
		WithInterval(time.Second),
		WithLogger(zap.New(core)),
		WithClock(func() time.Time { return clock }),
	)

	for i := 0; i < 59; i++ {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock = clock.Add(410 * time.Millisecond)
	assert.True(t, p.Tick())

	assert.InDelta(t, 60, p.Last().FPS, 1e-9)
	assert.Equal(t, 1, logs.FilterMessage("profiler").Len())
	assert.Contains(t, logs.All()[0].ContextMap(), "fps")

	clock = clock.Add(500 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestDefaultsAreUsable(t *testing.T) {
	p := NewProfiler(WithInterval(-1), WithLogger(nil), WithClock(nil))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.logger)
	assert.False(t, p.Tick())
}
