// Package fractal implements the escape-time evaluator for the quadratic Julia map z² + c.
package fractal

// EscapeRadiusSq is the squared modulus past which an orbit is considered divergent
const EscapeRadiusSq = 4.0

// DefaultConstant is the Julia parameter used when none is configured
const DefaultConstant = complex(-0.4, 0.6)

// Escape iterates z ← z² + c starting at z0 and returns the 0-based index of the
// application whose result left the escape radius.
// Orbits still bounded after maxIterations applications return maxIterations.
func Escape(z0, c complex128, maxIterations int) int {
	zr, zi := real(z0), imag(z0)
	cr, ci := real(c), imag(c)

	for i := 0; i < maxIterations; i++ {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if zr*zr+zi*zi > EscapeRadiusSq {
			return i
		}
	}
	return maxIterations
}

// Escaped reports whether an escape count denotes divergence under the given budget
func Escaped(count, maxIterations int) bool {
	return count < maxIterations
}
