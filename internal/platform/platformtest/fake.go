// Package platformtest provides in-memory platform.Factory, Platform and
// Window implementations that record their lifecycle for assertions.
package platformtest

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/triangle/internal/platform"
)

// Log records lifecycle calls across a factory's platform and window in the
// order they happen.
type Log struct {
	Calls []string
}

func (l *Log) add(call string) {
	l.Calls = append(l.Calls, call)
}

// Factory is a platform.Factory backed by Platform and Window fakes.
type Factory struct {
	Log         *Log
	PlatformErr error
	WindowErr   error

	Platform *Platform
	Window   *Window
}

// NewFactory returns a Factory that records into a fresh Log.
func NewFactory() *Factory {
	return &Factory{Log: &Log{}}
}

func (f *Factory) Name() string { return "fake" }

func (f *Factory) CreatePlatform() (platform.Platform, error) {
	f.Log.add("CreatePlatform")
	if f.PlatformErr != nil {
		return nil, f.PlatformErr
	}
	f.Platform = &Platform{log: f.Log, Live: true}
	return f.Platform, nil
}

func (f *Factory) CreateWindow(config platform.WindowConfig) (platform.Window, error) {
	f.Log.add("CreateWindow")
	if f.WindowErr != nil {
		return nil, f.WindowErr
	}
	f.Window = &Window{
		log:    f.Log,
		Config: config,
		Live:   true,
		Width:  config.Width,
		Height: config.Height,
		keys:   map[platform.Key]bool{},
	}
	return f.Window, nil
}

// Platform is a fake platform.Platform.
type Platform struct {
	log  *Log
	Live bool
}

func (p *Platform) Name() string { return "fake" }

func (p *Platform) Terminate() {
	if !p.Live {
		panic(errors.AssertionFailedf("fake platform terminated twice"))
	}
	p.Live = false
	p.log.add("Terminate")
}

// Window is a fake platform.Window. Events queued with QueueClose and
// QueueKey become visible on the next PollEvents.
type Window struct {
	log    *Log
	Config platform.WindowConfig
	Live   bool

	Width, Height int
	Polls         int
	Swaps         int

	// Handle, when set, is returned by NativeHandle in place of the fake.
	Handle any

	closed       bool
	pendingClose bool
	keys         map[platform.Key]bool
	pendingKeys  map[platform.Key]bool
}

// QueueClose delivers a close event on the next PollEvents.
func (w *Window) QueueClose() {
	w.pendingClose = true
}

// QueueKey delivers a key press or release on the next PollEvents.
func (w *Window) QueueKey(key platform.Key, down bool) {
	if w.pendingKeys == nil {
		w.pendingKeys = map[platform.Key]bool{}
	}
	w.pendingKeys[key] = down
}

func (w *Window) assertLive(op string) {
	if !w.Live {
		panic(errors.AssertionFailedf("fake window: %s after Destroy", op))
	}
}

func (w *Window) PollEvents() {
	w.assertLive("PollEvents")
	w.Polls++
	if w.pendingClose {
		w.closed = true
		w.pendingClose = false
	}
	for key, down := range w.pendingKeys {
		w.keys[key] = down
	}
	w.pendingKeys = nil
}

func (w *Window) IsClosed() bool {
	w.assertLive("IsClosed")
	return w.closed
}

func (w *Window) FramebufferSize() (int, int) {
	w.assertLive("FramebufferSize")
	return w.Width, w.Height
}

func (w *Window) NativeHandle() any {
	if w.Handle != nil {
		return w.Handle
	}
	return w
}

func (w *Window) KeyDown(key platform.Key) bool {
	w.assertLive("KeyDown")
	return w.keys[key]
}

func (w *Window) SwapBuffers() {
	w.assertLive("SwapBuffers")
	w.Swaps++
}

func (w *Window) Destroy() {
	w.assertLive("Destroy")
	w.Live = false
	w.log.add("Destroy")
}
