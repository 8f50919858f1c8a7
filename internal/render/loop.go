package render

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/triangle/internal/input"
	"github.com/vkngwrapper/triangle/internal/logging"
	"github.com/vkngwrapper/triangle/internal/platform"
	"github.com/vkngwrapper/triangle/internal/timing"
)

// Loop drives one draw per iteration until the platform goes inactive.
type Loop struct {
	manager *platform.Manager
	core    *timing.Core
	input   *input.Input
	backend Backend

	speed float64
	angle float64
}

// NewLoop returns a loop over an initialised manager and backend. speed is
// the rotation rate in radians per second.
func NewLoop(manager *platform.Manager, core *timing.Core, in *input.Input, backend Backend, speed float64) *Loop {
	return &Loop{
		manager: manager,
		core:    core,
		input:   in,
		backend: backend,
		speed:   speed,
	}
}

// Run iterates until the manager reports inactive or a frame fails.
func (l *Loop) Run() error {
	for l.manager.IsActive() {
		if err := l.Frame(); err != nil {
			return err
		}
	}

	logging.Logger().Info("frame loop finished", "frames", l.core.Frames(), "elapsed", l.core.ElapsedTime())
	return nil
}

// Frame runs a single iteration. A shutdown requested here takes effect at
// the next liveness check; the current frame still draws.
func (l *Loop) Frame() error {
	l.core.Update()

	window := l.manager.Window()
	l.input.Update(window)
	if l.input.Pressed(input.ActionExit) {
		logging.Logger().Debug("exit action pressed")
		l.manager.Shutdown()
	}

	width, height := window.FramebufferSize()
	l.angle += l.speed * l.core.DeltaTime()

	err := l.backend.DrawFrame(Frame{
		Width:     width,
		Height:    height,
		Transform: Transform(AspectRatio(width, height), float32(l.angle)),
	})
	if err != nil {
		return errors.Wrapf(err, "%s: drawing frame %d", l.backend.Name(), l.core.Frames())
	}

	l.manager.Update()
	return nil
}

// Angle is the accumulated rotation in radians.
func (l *Loop) Angle() float64 {
	return l.angle
}
