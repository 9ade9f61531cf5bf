package img2ascii

import (
	"errors"
	"testing"
)

func TestFitDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
		profile       SizeProfile
		wantW, wantH  int
	}{
		{"square medium", 500, 500, Medium, 80, 80},
		{"square small", 10, 10, Small, 40, 40},
		{"square large", 1, 1, Large, 120, 120},
		{"wide medium", 200, 100, Medium, 100, 50},
		{"exact medium box", 100, 80, Medium, 100, 80},
		{"tall medium", 100, 400, Medium, 20, 80},
		{"4:3 large", 640, 480, Large, 150, 112},
		{"3:1 small", 300, 100, Small, 50, 16},
		{"very wide clamps height", 100000, 10, Medium, 100, 1},
		{"very tall clamps width", 10, 100000, Medium, 1, 80},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, err := FitDimensions(tt.width, tt.height, tt.profile)
			if err != nil {
				t.Fatalf("FitDimensions: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitDimensions(%d, %d, %s) = %dx%d, want %dx%d",
					tt.width, tt.height, tt.profile, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFitDimensionsSaturatesOneBound(t *testing.T) {
	t.Parallel()

	for _, p := range Profiles {
		b := p.Bounds()
		for w := 1; w <= 400; w += 37 {
			for h := 1; h <= 400; h += 41 {
				nw, nh, err := FitDimensions(w, h, p)
				if err != nil {
					t.Fatalf("FitDimensions(%d, %d, %s): %v", w, h, p, err)
				}
				if nw < 1 || nh < 1 || nw > b.MaxWidth || nh > b.MaxHeight {
					t.Errorf("%dx%d under %s gave %dx%d outside bounds", w, h, p, nw, nh)
				}
				if nw != b.MaxWidth && nh != b.MaxHeight {
					t.Errorf("%dx%d under %s gave %dx%d saturating neither bound", w, h, p, nw, nh)
				}
			}
		}
	}
}

func TestFitDimensionsRejectsDegenerate(t *testing.T) {
	t.Parallel()

	for _, dims := range [][2]int{{0, 10}, {10, 0}, {0, 0}, {-1, 5}} {
		if _, _, err := FitDimensions(dims[0], dims[1], Medium); !errors.Is(err, ErrDegenerateImage) {
			t.Errorf("FitDimensions(%d, %d) error = %v, want ErrDegenerateImage", dims[0], dims[1], err)
		}
	}
}

func TestFitDimensionsRejectsUnknownProfile(t *testing.T) {
	if _, _, err := FitDimensions(10, 10, SizeProfile(9)); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Expected ErrUnknownProfile, got %v", err)
	}
}
