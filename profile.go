package img2ascii

import (
	"fmt"
	"strings"
)

// SizeProfile selects the bounding box, in characters, that a conversion
// must fit inside. The zero value is Medium.
type SizeProfile int

const (
	Medium SizeProfile = iota
	Small
	Large
)

// DefaultProfile is used when nothing else was selected.
const DefaultProfile = Medium

// Profiles lists the profiles from smallest to largest.
var Profiles = []SizeProfile{Small, Medium, Large}

// Bounds holds the maximum output width and height in characters.
type Bounds struct {
	MaxWidth  int
	MaxHeight int
}

var profileBounds = map[SizeProfile]Bounds{
	Small:  {MaxWidth: 50, MaxHeight: 40},
	Medium: {MaxWidth: 100, MaxHeight: 80},
	Large:  {MaxWidth: 150, MaxHeight: 120},
}

// Bounds returns the (maxWidth, maxHeight) pair of the profile. Unknown
// values fall back to the default profile's bounds.
func (p SizeProfile) Bounds() Bounds {
	if b, ok := profileBounds[p]; ok {
		return b
	}
	return profileBounds[DefaultProfile]
}

// Valid reports whether p is one of the three defined profiles.
func (p SizeProfile) Valid() bool {
	_, ok := profileBounds[p]
	return ok
}

func (p SizeProfile) String() string {
	switch p {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	}
	return fmt.Sprintf("SizeProfile(%d)", int(p))
}

// ParseProfile maps "small", "medium" or "large" (any case, or the first
// letter alone) to a SizeProfile. An empty name selects DefaultProfile.
func ParseProfile(name string) (SizeProfile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultProfile, nil
	case "small", "s":
		return Small, nil
	case "medium", "m":
		return Medium, nil
	case "large", "l":
		return Large, nil
	}
	return DefaultProfile, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// MarshalText implements encoding.TextMarshaler.
func (p SizeProfile) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProfile, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *SizeProfile) UnmarshalText(text []byte) error {
	parsed, err := ParseProfile(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
