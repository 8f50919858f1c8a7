package platform

import "testing"

func TestKeyStateLatchesShortPress(t *testing.T) {
	var keys KeyState
	keys.Set(KeyEscape, true)
	keys.Set(KeyEscape, false)

	if !keys.Sample(KeyEscape) {
		t.Fatal("press released within one drain was lost")
	}
	if keys.Sample(KeyEscape) {
		t.Error("latched press reported twice")
	}
}

func TestKeyStateLevel(t *testing.T) {
	var keys KeyState
	if keys.Sample(KeyEscape) {
		t.Error("zero KeyState reports a key down")
	}

	keys.Set(KeyEscape, true)
	for i := 0; i < 3; i++ {
		if !keys.Sample(KeyEscape) {
			t.Fatalf("held key not down on sample %d", i)
		}
	}

	keys.Set(KeyEscape, false)
	if keys.Sample(KeyEscape) {
		t.Error("released key still down")
	}
}

func TestKeyStateKeysAreIndependent(t *testing.T) {
	var keys KeyState
	keys.Set(KeyEscape, true)
	keys.Set(KeyEscape, false)

	if keys.Sample(KeyUnknown) {
		t.Error("unrelated key reported down")
	}
	if !keys.Sample(KeyEscape) {
		t.Error("latched press consumed by another key's sample")
	}
}
