package app

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// Metrics tracks frame loop timings. All methods are safe for concurrent
// use.
type Metrics struct {
	// Frame timing
	frameCount  atomic.Uint64
	frameTotal  atomic.Int64
	frameMin    atomic.Int64
	frameMax    atomic.Int64
	lastFrame   atomic.Int64
	lateFrames  atomic.Uint64
	frameBudget atomic.Int64

	// Input
	chunkCount atomic.Uint64
	chunkBytes atomic.Uint64

	// Event dispatch
	eventCount     atomic.Uint64
	eventTotal     atomic.Int64
	eventUnhandled atomic.Uint64

	// Render timing
	renderCount atomic.Uint64
	renderTotal atomic.Int64

	startTime atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.Reset()
	return m
}

// SetFrameBudget sets the duration above which a frame counts as late.
// Zero disables late frame counting.
func (m *Metrics) SetFrameBudget(d time.Duration) {
	m.frameBudget.Store(int64(d))
}

// RecordFrame records the duration of one whole frame.
func (m *Metrics) RecordFrame(d time.Duration) {
	ns := d.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotal.Add(ns)
	m.lastFrame.Store(ns)
	if budget := m.frameBudget.Load(); budget > 0 && ns > budget {
		m.lateFrames.Add(1)
	}

	for {
		old := m.frameMin.Load()
		if ns >= old || m.frameMin.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMax.Load()
		if ns <= old || m.frameMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordChunk records one chunk of terminal input.
func (m *Metrics) RecordChunk(n int) {
	m.chunkCount.Add(1)
	m.chunkBytes.Add(uint64(n))
}

// RecordEvent records the dispatch time of one event.
func (m *Metrics) RecordEvent(d time.Duration) {
	m.eventCount.Add(1)
	m.eventTotal.Add(d.Nanoseconds())
}

// RecordEventUnhandled records an event no widget handled.
func (m *Metrics) RecordEventUnhandled() {
	m.eventUnhandled.Add(1)
}

// RecordRender records render and encode timing.
func (m *Metrics) RecordRender(d time.Duration) {
	m.renderCount.Add(1)
	m.renderTotal.Add(d.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	eventCount := m.eventCount.Load()
	renderCount := m.renderCount.Load()

	minFrame := m.frameMin.Load()
	if minFrame == math.MaxInt64 {
		minFrame = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(time.Unix(0, m.startTime.Load())),
		FrameCount:     frameCount,
		AvgFrame:       average(m.frameTotal.Load(), frameCount),
		MinFrame:       time.Duration(minFrame),
		MaxFrame:       time.Duration(m.frameMax.Load()),
		LastFrame:      time.Duration(m.lastFrame.Load()),
		LateFrames:     m.lateFrames.Load(),
		ChunkCount:     m.chunkCount.Load(),
		ChunkBytes:     m.chunkBytes.Load(),
		EventCount:     eventCount,
		AvgEvent:       average(m.eventTotal.Load(), eventCount),
		EventUnhandled: m.eventUnhandled.Load(),
		RenderCount:    renderCount,
		AvgRender:      average(m.renderTotal.Load(), renderCount),
	}
}

func average(total int64, n uint64) time.Duration {
	if n == 0 {
		return 0
	}
	return time.Duration(total / int64(n))
}

// Reset clears all metrics. The frame budget is kept.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotal.Store(0)
	m.frameMin.Store(math.MaxInt64)
	m.frameMax.Store(0)
	m.lastFrame.Store(0)
	m.lateFrames.Store(0)
	m.chunkCount.Store(0)
	m.chunkBytes.Store(0)
	m.eventCount.Store(0)
	m.eventTotal.Store(0)
	m.eventUnhandled.Store(0)
	m.renderCount.Store(0)
	m.renderTotal.Store(0)
	m.startTime.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrame       time.Duration
	MinFrame       time.Duration
	MaxFrame       time.Duration
	LastFrame      time.Duration
	LateFrames     uint64
	ChunkCount     uint64
	ChunkBytes     uint64
	EventCount     uint64
	AvgEvent       time.Duration
	EventUnhandled uint64
	RenderCount    uint64
	AvgRender      time.Duration
}

// AvgFPS returns the frame rate implied by the average frame time.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrame == 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgFrame)
}

// LateRate returns the percentage of frames over budget.
func (s MetricsSnapshot) LateRate() float64 {
	if s.FrameCount == 0 {
		return 0
	}
	return float64(s.LateFrames) / float64(s.FrameCount) * 100
}

// String summarizes the snapshot on one line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("frames=%d avg=%s max=%s late=%d events=%d unhandled=%d input=%dB",
		s.FrameCount, s.AvgFrame, s.MaxFrame, s.LateFrames, s.EventCount, s.EventUnhandled, s.ChunkBytes)
}
