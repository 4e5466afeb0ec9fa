package fractal

import (
	"math"
	"testing"
)

func TestEscapeImmediateDivergence(t *testing.T) {
	tests := []struct {
		name string
		z0   complex128
	}{
		{"far positive real", complex(3, 0)},
		{"far negative imaginary", complex(0, -3)},
		{"far diagonal", complex(-2.5, 2.5)},
		{"very far", complex(1e6, 1e6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range []int{1, 10, 100} {
				if got := Escape(tt.z0, DefaultConstant, n); got != 0 {
					t.Errorf("Expected escape count 0 for %v with budget %d, got %d", tt.z0, n, got)
				}
			}
		})
	}
}

func TestEscapeBoundedOrbit(t *testing.T) {
	// 0 is a fixed point of z² + 0
	if got := Escape(0, 0, 100); got != 100 {
		t.Errorf("Expected bounded orbit to exhaust budget 100, got %d", got)
	}

	// z = 1 is a fixed point of z² + 0 on the escape boundary
	if got := Escape(1, 0, 50); got != 50 {
		t.Errorf("Expected unit fixed point to exhaust budget 50, got %d", got)
	}
}

func TestEscapeNeverExceedsBudget(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		for re := -2.0; re <= 2.0; re += 0.25 {
			for im := -2.0; im <= 2.0; im += 0.25 {
				z0 := complex(re, im)
				got := Escape(z0, DefaultConstant, n)
				if got < 0 || got > n {
					t.Fatalf("Expected count in [0,%d] for %v, got %d", n, z0, got)
				}
			}
		}
	}
}

// TestEscapeMatchesOrbit checks that the budget is returned exactly when every
// iterate stays inside modulus 2
func TestEscapeMatchesOrbit(t *testing.T) {
	const n = 40
	for re := -1.5; re <= 1.5; re += 0.1 {
		for im := -1.5; im <= 1.5; im += 0.1 {
			z0 := complex(re, im)

			zr, zi := real(z0), imag(z0)
			bounded := true
			firstOut := -1
			for i := 0; i < n; i++ {
				zr, zi = zr*zr-zi*zi+real(DefaultConstant), 2*zr*zi+imag(DefaultConstant)
				if zr*zr+zi*zi > 4 {
					bounded = false
					firstOut = i
					break
				}
			}

			got := Escape(z0, DefaultConstant, n)
			if bounded && got != n {
				t.Errorf("Expected bounded orbit from %v to return %d, got %d", z0, n, got)
			}
			if !bounded && got != firstOut {
				t.Errorf("Expected orbit from %v to escape at %d, got %d", z0, firstOut, got)
			}
		}
	}
}

func TestEscapeNaNDoesNotEscape(t *testing.T) {
	z0 := complex(math.NaN(), 0)
	if got := Escape(z0, DefaultConstant, 25); got != 25 {
		t.Errorf("Expected NaN orbit to exhaust budget 25, got %d", got)
	}
}

func TestEscaped(t *testing.T) {
	if !Escaped(3, 10) {
		t.Error("Expected count 3 of 10 to be escaped")
	}
	if Escaped(10, 10) {
		t.Error("Expected count 10 of 10 to be bounded")
	}
}
