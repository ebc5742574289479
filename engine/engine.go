package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
)

// engine implements the Engine interface.
// Frames run on the window's message loop thread, one per message loop iteration.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once
	closeOnce   sync.Once

	window window.Window
	input  input.Input

	profiler         *profiler.Profiler
	profilingEnabled bool

	now       func() time.Time
	sleep     func(time.Duration)
	lastFrame time.Time

	tickCallback   func(deltaTime float32)
	resizeCallback func(width, height int)

	frameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the frame loop: each frame measures the delta time, runs the tick callback,
// ticks the profiler and closes the input frame.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Input returns the input manager fed by the window's events.
	//
	// Returns:
	//   - input.Input: the input manager
	Input() input.Input

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called each frame.
	// Use this for camera updates, input processing, and animation updates.
	// Input state queried from the callback reflects the events received since the previous frame.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function called when the window framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// Run starts the frame loop and blocks until the window closes or Quit is called.
	// The window is closed before Run returns.
	Run()

	// Quit stops the frame loop at the start of the next frame.
	// Safe to call multiple times and from any goroutine; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// When no input manager is supplied a default one is created. The window's event
// callbacks are bound to the input manager.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		now:         time.Now,
		sleep:       time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.input == nil {
		e.input = input.NewInput()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.now))
	}

	if e.window != nil {
		bindInput(e.window, e.input)
		e.window.SetResizeCallback(func(width, height int) {
			if e.resizeCallback != nil {
				e.resizeCallback(width, height)
			}
		})
	}

	return e
}

// bindInput forwards window events to the input manager.
// GLFW reports scrolling up as positive; the input manager expects positive = scroll down.
func bindInput(w window.Window, in input.Input) {
	w.SetMouseDownCallback(in.OnMouseDown)
	w.SetMouseUpCallback(in.OnMouseUp)
	w.SetMouseMoveCallback(in.OnMouseMove)
	w.SetScrollCallback(func(delta float32) {
		in.OnMouseWheel(-delta)
	})
	w.SetKeyDownCallback(in.OnKeyDown)
	w.SetKeyUpCallback(in.OnKeyUp)
	w.SetFocusCallback(func(focused bool) {
		if !focused {
			in.OnBlur()
		}
	})
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Input() input.Input {
	return e.input
}

func (e *engine) Run() {
	if e.window == nil {
		log.Printf("engine has no window, nothing to run")
		return
	}

	e.lastFrame = e.now()
	e.profiler.Reset()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()

	e.signalQuit()
	e.closeWindow()
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// quitting reports whether Quit has been signalled.
func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// closeWindow closes the window exactly once.
func (e *engine) closeWindow() {
	e.closeOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			log.Printf("failed to close window: %v", err)
		}
	})
}

// frame runs a single iteration of the frame loop.
// Recovers from panics in the tick callback to avoid crashing the process and signals quit on recovery.
func (e *engine) frame() {
	if e.quitting() {
		e.closeWindow()
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame loop recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	if dt < 0 {
		dt = 0
	}
	e.lastFrame = start

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	e.input.EndFrame()

	// Frame rate limiting
	if e.frameLimit > 0 {
		elapsed := e.now().Sub(start)
		if remaining := e.frameLimit - elapsed; remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	if !e.profilingEnabled && e.profiler != nil {
		e.profiler.Reset()
	}
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickCallback registers the function called each frame.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetResizeCallback registers the function called on framebuffer resize.
func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

// SetFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the frame loop.
func (e *engine) SetFrameLimit(fps float64) {
	e.frameLimit = frameDuration(fps)
}

// frameDuration converts a frame rate cap to the minimum frame duration (0 = uncapped).
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
