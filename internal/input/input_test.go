package input

import (
	"testing"

	"github.com/vkngwrapper/triangle/internal/platform"
)

type keys map[platform.Key]bool

func (k keys) KeyDown(key platform.Key) bool { return k[key] }

func TestPressedIsEdgeTriggered(t *testing.T) {
	in := New(DefaultTable())

	frames := []struct {
		escape      bool
		wantPressed bool
		wantDown    bool
	}{
		{false, false, false},
		{true, true, true},
		{true, false, true},
		{true, false, true},
		{false, false, false},
		{true, true, true},
	}

	for i, f := range frames {
		in.Update(keys{platform.KeyEscape: f.escape})
		if got := in.Pressed(ActionExit); got != f.wantPressed {
			t.Errorf("frame %d: Pressed(Exit) = %v, want %v", i, got, f.wantPressed)
		}
		if got := in.Down(ActionExit); got != f.wantDown {
			t.Errorf("frame %d: Down(Exit) = %v, want %v", i, got, f.wantDown)
		}
	}
}

func TestAnyBindingTriggersAction(t *testing.T) {
	const other platform.Key = 100
	in := New(Table{
		ActionExit: {
			{Device: DeviceKeyboard, Key: platform.KeyEscape},
			{Device: DeviceKeyboard, Key: other},
		},
	})

	in.Update(keys{other: true})
	if !in.Pressed(ActionExit) {
		t.Error("second binding did not trigger Exit")
	}

	// Switching from one held binding to the other is not a new press.
	in.Update(keys{platform.KeyEscape: true})
	if in.Pressed(ActionExit) {
		t.Error("Exit re-triggered while continuously held")
	}
}

func TestUnboundActionNeverFires(t *testing.T) {
	in := New(Table{})
	in.Update(keys{platform.KeyEscape: true})
	if in.Pressed(ActionExit) || in.Down(ActionExit) {
		t.Error("unbound action reported as active")
	}
}

func TestActionString(t *testing.T) {
	if ActionExit.String() != "Exit" {
		t.Errorf("ActionExit.String() = %q", ActionExit.String())
	}
}
