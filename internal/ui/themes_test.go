package ui

import "testing"

func keepTheme(t *testing.T) {
	t.Helper()
	prev := Current()
	t.Cleanup(func() { Use(prev) })
}

func TestSelect_NoColorEnv(t *testing.T) {
	keepTheme(t)
	// LookupEnv reports an empty NO_COLOR as present.
	t.Setenv("NO_COLOR", "")
	if got := Select("light", false); got.Name != Plain.Name {
		t.Errorf("Select with NO_COLOR = %q, want %q", got.Name, Plain.Name)
	}
	if Current().Palette != Plain.Palette {
		t.Error("dashboard palette should follow the plain theme")
	}
}

func TestSelect_Names(t *testing.T) {
	keepTheme(t)
	if _, set := lookupNoColor(); set {
		t.Skip("NO_COLOR set in the environment")
	}
	tests := []struct {
		name    string
		noColor bool
		want    string
	}{
		{"light", false, "light"},
		{"dark", false, "dark"},
		{"solarized", false, "dark"},
		{"", false, "dark"},
		{"none", false, "none"},
		{"light", true, "none"},
	}
	for _, tc := range tests {
		Select(tc.name, tc.noColor)
		if got := Current().Name; got != tc.want {
			t.Errorf("Select(%q, %v) -> %q, want %q", tc.name, tc.noColor, got, tc.want)
		}
	}
}

func TestLoadOf(t *testing.T) {
	tests := []struct {
		percent float64
		want    Load
	}{
		{0, LoadLow},
		{59.9, LoadLow},
		{60, LoadElevated},
		{84.9, LoadElevated},
		{85, LoadSaturated},
		{150, LoadSaturated},
	}
	for _, tc := range tests {
		if got := LoadOf(tc.percent); got != tc.want {
			t.Errorf("LoadOf(%v) = %d, want %d", tc.percent, got, tc.want)
		}
	}
}

func TestForLoad(t *testing.T) {
	keepTheme(t)
	Use(Dark)
	if ForLoad(10) != Dark.ANSI.Load[LoadLow] || ForLoad(70) != Dark.ANSI.Load[LoadElevated] {
		t.Error("ForLoad picked the wrong band")
	}
	if ForLoad(99) == ForLoad(10) {
		t.Error("saturated and low bands share an escape")
	}
	Use(Plain)
	if ForLoad(99)+Heading()+Reset() != "" {
		t.Error("plain theme must emit no escapes")
	}
}
