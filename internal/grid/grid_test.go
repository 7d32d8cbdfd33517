package grid

import (
	"errors"
	"testing"
)

func TestAxisValues(t *testing.T) {
	vals := Axis{Min: -4, Max: 4, Count: 9}.Values()
	if len(vals) != 9 {
		t.Fatalf("expected 9 values, got %d", len(vals))
	}
	for i, v := range vals {
		if v != float64(i-4) {
			t.Errorf("value %d: expected %.1f, got %f", i, float64(i-4), v)
		}
	}

	single := Axis{Min: 2, Max: 5, Count: 1}.Values()
	if len(single) != 1 || single[0] != 2 {
		t.Errorf("expected [2], got %v", single)
	}

	if vals := (Axis{Count: 0}).Values(); vals != nil {
		t.Errorf("expected nil for empty axis, got %v", vals)
	}
}

func TestNew2D(t *testing.T) {
	points, err := New(2, DefaultBounds(2))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	r, c := points.Dims()
	if r != 2 || c != 63 {
		t.Fatalf("expected 2x63, got %dx%d", r, c)
	}

	// x outermost, y innermost
	if points.At(0, 0) != -4 || points.At(1, 0) != -3 {
		t.Errorf("first point: got (%f, %f)", points.At(0, 0), points.At(1, 0))
	}
	if points.At(0, 1) != -4 || points.At(1, 1) != -2 {
		t.Errorf("second point: got (%f, %f)", points.At(0, 1), points.At(1, 1))
	}
	if points.At(0, 7) != -3 || points.At(1, 7) != -3 {
		t.Errorf("eighth point: got (%f, %f)", points.At(0, 7), points.At(1, 7))
	}
	if points.At(0, 62) != 4 || points.At(1, 62) != 3 {
		t.Errorf("last point: got (%f, %f)", points.At(0, 62), points.At(1, 62))
	}
}

func TestNew3D(t *testing.T) {
	points, err := New(3, DefaultBounds(3))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	r, c := points.Dims()
	if r != 3 || c != 729 {
		t.Fatalf("expected 3x729, got %dx%d", r, c)
	}
	if points.At(2, 1) != -3 || points.At(1, 1) != -4 {
		t.Errorf("z should vary fastest, got y=%f z=%f", points.At(1, 1), points.At(2, 1))
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		b    Bounds
		want error
	}{
		{"dimension one", 1, DefaultBounds(2), ErrDimension},
		{"dimension four", 4, DefaultBounds(3), ErrDimension},
		{"empty axis", 2, Bounds{X: Axis{Min: 0, Max: 1, Count: 2}}, ErrCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dim, tt.b)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
