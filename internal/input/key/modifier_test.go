package key

import "testing"

func TestModifierBitLayout(t *testing.T) {
	// xterm encodes modifiers as 1 + bits(Shift=1, Alt=2, Ctrl=4, Meta=8).
	if ModShift != 1 || ModAlt != 2 || ModCtrl != 4 || ModMeta != 8 {
		t.Fatalf("unexpected modifier layout: shift=%d alt=%d ctrl=%d meta=%d",
			ModShift, ModAlt, ModCtrl, ModMeta)
	}
}

func TestModifierFromParam(t *testing.T) {
	tests := []struct {
		param int
		want  Modifier
	}{
		{0, ModNone},
		{1, ModNone},
		{2, ModShift},
		{3, ModAlt},
		{5, ModCtrl},
		{6, ModCtrl | ModShift},
		{9, ModMeta},
		{16, ModShift | ModAlt | ModCtrl | ModMeta},
		{17, ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromParam(tt.param); got != tt.want {
			t.Errorf("ModifierFromParam(%d) = %v, want %v", tt.param, got, tt.want)
		}
	}
}

func TestModifierHas(t *testing.T) {
	m := ModCtrl | ModShift

	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Errorf("%v should have Ctrl and Shift", m)
	}
	if m.Has(ModAlt) || m.Has(ModMeta) {
		t.Errorf("%v should not have Alt or Meta", m)
	}
	if !m.Has(ModAlt | ModCtrl) {
		t.Error("Has should match any modifier of a set")
	}
	if ModNone.Has(modMask) {
		t.Error("ModNone has a modifier")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModAlt, "Ctrl+Alt"},
		{ModShift | ModMeta, "Shift+Meta"},
		{ModShift | ModAlt | ModCtrl | ModMeta, "Ctrl+Alt+Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"C", ModCtrl},
		{"alt", ModAlt},
		{"option", ModAlt},
		{"shift", ModShift},
		{"meta", ModMeta},
		{"D", ModMeta},
		{"m", ModMeta},
		{"SUPER", ModMeta},
		{"s", ModShift},
		{"a", ModAlt},
		{"hyper", ModNone},
		{"", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
