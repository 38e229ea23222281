// Package spatialmath defines the rotation math shared by the camera format handlers.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// NewZeroOrientation returns a quaternion which signifies no rotation.
func NewZeroOrientation() quat.Number {
	return quat.Number{Real: 1}
}

// Normalize scales a quaternion to unit length. The zero quaternion maps to no rotation.
func Normalize(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm == 0 || math.IsNaN(norm) {
		return NewZeroOrientation()
	}
	return quat.Scale(1/norm, q)
}

// QuaternionAlmostEqual reports whether two quaternions describe the same rotation within tol.
// q and -q are the same rotation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	same := Float64AlmostEqual(a.Real, b.Real, tol) &&
		Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		Float64AlmostEqual(a.Kmag, b.Kmag, tol)
	if same {
		return true
	}
	return Float64AlmostEqual(a.Real, -b.Real, tol) &&
		Float64AlmostEqual(a.Imag, -b.Imag, tol) &&
		Float64AlmostEqual(a.Jmag, -b.Jmag, tol) &&
		Float64AlmostEqual(a.Kmag, -b.Kmag, tol)
}

// OrientationBetween returns the rotation taking q1 to q2.
func OrientationBetween(q1, q2 quat.Number) quat.Number {
	return quat.Mul(q2, quat.Conj(q1))
}

// IsUnit reports whether q has unit norm within tol.
func IsUnit(q quat.Number, tol float64) bool {
	return Float64AlmostEqual(quat.Abs(q), 1, tol)
}
