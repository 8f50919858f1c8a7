// Package input maps physical key state onto named logical actions.
package input

import (
	"github.com/vkngwrapper/triangle/internal/platform"
)

// Action is a logical input action.
type Action int

const (
	ActionExit Action = iota
)

func (a Action) String() string {
	switch a {
	case ActionExit:
		return "Exit"
	}
	return "Unknown"
}

// Device is a logical input device.
type Device int

const (
	DeviceKeyboard Device = iota
)

// Binding ties one physical input on one device to an action.
type Binding struct {
	Device Device
	Key    platform.Key
}

// Table maps each action to the bindings that trigger it. It is not modified
// after being handed to New.
type Table map[Action][]Binding

// DefaultTable binds Exit to Escape on the keyboard.
func DefaultTable() Table {
	return Table{
		ActionExit: {{Device: DeviceKeyboard, Key: platform.KeyEscape}},
	}
}

// KeySource reports keyboard level state. platform.Window satisfies it.
type KeySource interface {
	KeyDown(key platform.Key) bool
}

// Input samples the action table once per frame.
type Input struct {
	table    Table
	previous map[Action]bool
	current  map[Action]bool
}

// New returns an Input for table with every action released.
func New(table Table) *Input {
	return &Input{
		table:    table,
		previous: map[Action]bool{},
		current:  map[Action]bool{},
	}
}

// Update samples every binding from keyboard. An action is down when any of
// its bindings is down.
func (in *Input) Update(keyboard KeySource) {
	in.previous, in.current = in.current, in.previous
	for action, bindings := range in.table {
		down := false
		for _, b := range bindings {
			if b.Device == DeviceKeyboard && keyboard.KeyDown(b.Key) {
				down = true
				break
			}
		}
		in.current[action] = down
	}
}

// Pressed reports whether action went from released to pressed on the most
// recent Update.
func (in *Input) Pressed(action Action) bool {
	return in.current[action] && !in.previous[action]
}

// Down reports whether action is held as of the most recent Update.
func (in *Input) Down(action Action) bool {
	return in.current[action]
}
