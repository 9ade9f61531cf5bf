package img2ascii

import (
	"errors"
	"testing"
)

func TestProfileBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		profile SizeProfile
		want    Bounds
	}{
		{Small, Bounds{50, 40}},
		{Medium, Bounds{100, 80}},
		{Large, Bounds{150, 120}},
	}
	for _, tt := range tests {
		if got := tt.profile.Bounds(); got != tt.want {
			t.Errorf("%s.Bounds() = %+v, want %+v", tt.profile, got, tt.want)
		}
	}
}

func TestZeroProfileIsMedium(t *testing.T) {
	var p SizeProfile
	if p != Medium || DefaultProfile != Medium {
		t.Errorf("Zero value should be medium, got %s", p)
	}
}

func TestParseProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SizeProfile
		wantErr bool
	}{
		{"small", Small, false},
		{"SMALL", Small, false},
		{"s", Small, false},
		{"medium", Medium, false},
		{" m ", Medium, false},
		{"", Medium, false},
		{"large", Large, false},
		{"L", Large, false},
		{"huge", Medium, true},
	}
	for _, tt := range tests {
		got, err := ParseProfile(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseProfile(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownProfile) {
			t.Errorf("ParseProfile(%q) error should wrap ErrUnknownProfile, got %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseProfile(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestProfileTextRoundTrip(t *testing.T) {
	for _, p := range Profiles {
		text, err := p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s): %v", p, err)
		}
		var back SizeProfile
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != p {
			t.Errorf("Round trip of %s gave %s", p, back)
		}
	}

	if _, err := SizeProfile(42).MarshalText(); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Expected ErrUnknownProfile for invalid profile, got %v", err)
	}
}
