package game

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"w", KeyW},
		{"W", KeyW},
		{"a", KeyA},
		{"z", KeyZ},
		{"1", KeyOne},
		{"f3", KeyF3},
		{"F12", KeyF12},
		{"space", KeySpace},
		{" up ", KeyUp},
	}

	for _, tc := range tests {
		got, err := ParseKey(tc.name)
		if err != nil {
			t.Errorf("ParseKey(%q): %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKey(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestParseKeyUnknown(t *testing.T) {
	for _, name := range []string{"", "f13", "f0", "f03", "ctrl", "ww"} {
		if _, err := ParseKey(name); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("ParseKey(%q): expected ErrUnknownKey, got %v", name, err)
		}
	}
}

func TestKeyStringRoundtrip(t *testing.T) {
	for _, k := range []Key{KeyW, KeyZero, KeyNine, KeyF1, KeyF3, KeySpace, KeyEscape, KeyLeft} {
		got, err := ParseKey(k.String())
		if err != nil || got != k {
			t.Errorf("roundtrip %d via %q gave %d, %v", k, k.String(), got, err)
		}
	}
}

func TestKeyDigit(t *testing.T) {
	if d, ok := KeyOne.Digit(); !ok || d != 1 {
		t.Errorf("expected digit 1, got %d %v", d, ok)
	}
	if _, ok := KeyW.Digit(); ok {
		t.Error("w is not a digit")
	}
}
