package platform

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/triangle/internal/logging"
)

// State is the lifecycle state of a Manager.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateInactive
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateReleased:
		return "released"
	}
	return "unknown"
}

// Manager owns the process's single platform/window pair.
//
// Lifecycle methods must be called in order from the thread that owns the
// window: Init, then Update once per frame, Shutdown any number of times,
// and Release exactly once after the frame loop exits. Calling them out of
// order panics.
type Manager struct {
	state    State
	platform Platform
	window   Window
}

// NewManager returns an uninitialised manager.
func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) mustBe(op string, allowed ...State) {
	for _, s := range allowed {
		if m.state == s {
			return
		}
	}
	panic(errors.AssertionFailedf("platform manager: %s called in state %s", op, m.state))
}

// Init creates the platform and window through factory and takes ownership
// of both. On failure nothing is retained and the manager stays
// uninitialised.
func (m *Manager) Init(factory Factory, config WindowConfig) error {
	m.mustBe("Init", StateUninitialized)

	platform, err := factory.CreatePlatform()
	if err != nil {
		return errors.Wrapf(err, "creating %s platform", factory.Name())
	}

	window, err := factory.CreateWindow(config)
	if err != nil {
		platform.Terminate()
		return errors.Wrapf(err, "creating %s window", factory.Name())
	}

	m.platform = platform
	m.window = window
	m.state = StateActive

	logging.Logger().Info("platform initialised",
		"platform", platform.Name(),
		"title", config.Title,
		"width", config.Width,
		"height", config.Height,
		"api", config.API.String())
	return nil
}

// Update polls window events. A close request observed here makes the
// manager inactive.
func (m *Manager) Update() {
	m.mustBe("Update", StateActive, StateInactive)

	m.window.PollEvents()
	if m.state == StateActive && m.window.IsClosed() {
		logging.Logger().Debug("window close requested")
		m.state = StateInactive
	}
}

// Shutdown flags the manager inactive. It releases nothing and may be
// called repeatedly.
func (m *Manager) Shutdown() {
	m.mustBe("Shutdown", StateActive, StateInactive)

	if m.state == StateActive {
		logging.Logger().Debug("shutdown requested")
		m.state = StateInactive
	}
}

// Release destroys the window and then the platform.
func (m *Manager) Release() {
	m.mustBe("Release", StateInactive)

	m.window.Destroy()
	m.platform.Terminate()
	m.window = nil
	m.platform = nil
	m.state = StateReleased

	logging.Logger().Info("platform released")
}

// IsActive reports whether the frame loop should keep running.
func (m *Manager) IsActive() bool {
	return m.state == StateActive
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Window returns the owned window. It panics before Init and after Release.
func (m *Manager) Window() Window {
	m.mustBe("Window", StateActive, StateInactive)
	return m.window
}
