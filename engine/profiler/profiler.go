package profiler

import (
	"log"
	"math"
	"runtime"
	"time"
)

// Stats is one reporting interval's worth of frame timing and memory statistics.
type Stats struct {
	Frames   int
	FPS      float64
	MinFrame time.Duration
	AvgFrame time.Duration
	MaxFrame time.Duration
	HeapMB   float64
	SysMB    float64
	NumGC    uint32
}

// Profiler tracks frame rate, frame time and memory statistics for performance monitoring.
// Outputs stats to its logger at a configurable interval.
type Profiler struct {
	logger         *log.Logger
	now            func() time.Time
	updateInterval time.Duration

	frameCount int
	lastTime   time.Time
	lastFrame  time.Time
	minFrame   time.Duration
	maxFrame   time.Duration

	memStats runtime.MemStats
	last     Stats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and output goes to the standard logger.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         log.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	p.Reset()
	return p
}

// Reset starts a new reporting interval from the current time.
func (p *Profiler) Reset() {
	t := p.now()
	p.frameCount = 0
	p.lastTime = t
	p.lastFrame = t
	p.minFrame = time.Duration(math.MaxInt64)
	p.maxFrame = 0
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	currentTime := p.now()

	frame := currentTime.Sub(p.lastFrame)
	p.lastFrame = currentTime
	p.frameCount++
	if frame < p.minFrame {
		p.minFrame = frame
	}
	if frame > p.maxFrame {
		p.maxFrame = frame
	}

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	p.last = Stats{
		Frames:   p.frameCount,
		FPS:      float64(p.frameCount) / elapsed.Seconds(),
		MinFrame: p.minFrame,
		AvgFrame: elapsed / time.Duration(p.frameCount),
		MaxFrame: p.maxFrame,
		HeapMB:   float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:    float64(p.memStats.Sys) / 1024 / 1024,
		NumGC:    p.memStats.NumGC,
	}

	p.logger.Printf("[Profiler] FPS: %.2f | Frame: min %s avg %s max %s | Heap: %.2f MB | GC: %d | Sys: %.2f MB",
		p.last.FPS, p.last.MinFrame, p.last.AvgFrame, p.last.MaxFrame, p.last.HeapMB, p.last.NumGC, p.last.SysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.minFrame = time.Duration(math.MaxInt64)
	p.maxFrame = 0
	return true
}

// Last returns the statistics of the most recently completed interval.
//
// Returns:
//   - Stats: the last logged statistics (zero before the first report)
func (p *Profiler) Last() Stats {
	return p.last
}
