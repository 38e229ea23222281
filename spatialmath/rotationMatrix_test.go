package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis
var (
	th   = math.Pi / 4.
	q45x = quat.Number{math.Cos(th / 2.), math.Sin(th / 2.), 0, 0}
	rm45x = &RotationMatrix{[9]float64{
		1, 0, 0,
		0, math.Cos(th), -math.Sin(th),
		0, math.Sin(th), math.Cos(th),
	}}
)

func randomQuat(rnd *rand.Rand) quat.Number {
	return Normalize(quat.Number{rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64()})
}

func scaleColumns(rm *RotationMatrix, s r3.Vector) *RotationMatrix {
	out := *rm
	for i := 0; i < 3; i++ {
		out.mat[3*i] *= s.X
		out.mat[3*i+1] *= s.Y
		out.mat[3*i+2] *= s.Z
	}
	return &out
}

func TestQuatToRotationMatrix(t *testing.T) {
	rm := QuatToRotationMatrix(q45x)
	for i := 0; i < 9; i++ {
		test.That(t, rm.mat[i], test.ShouldAlmostEqual, rm45x.mat[i])
	}
	test.That(t, rm.Det(), test.ShouldAlmostEqual, 1)

	t.Run("identity", func(t *testing.T) {
		test.That(t, QuatToRotationMatrix(NewZeroOrientation()), test.ShouldResemble, IdentityRotationMatrix())
	})

	t.Run("non unit input is normalized", func(t *testing.T) {
		scaled := QuatToRotationMatrix(quat.Scale(3, q45x))
		for i := 0; i < 9; i++ {
			test.That(t, scaled.mat[i], test.ShouldAlmostEqual, rm45x.mat[i])
		}
	})
}

func TestDecomposeScaledRotation(t *testing.T) {
	q, err := DecomposeScaledRotation(rm45x)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.Real, test.ShouldAlmostEqual, q45x.Real)
	test.That(t, q.Imag, test.ShouldAlmostEqual, q45x.Imag)
	test.That(t, q.Jmag, test.ShouldAlmostEqual, q45x.Jmag)
	test.That(t, q.Kmag, test.ShouldAlmostEqual, q45x.Kmag)

	t.Run("per column scale is removed", func(t *testing.T) {
		scaled := scaleColumns(rm45x, r3.Vector{2, 0.5, 7})
		q, err := DecomposeScaledRotation(scaled)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, QuaternionAlmostEqual(q, q45x, 1e-12), test.ShouldBeTrue)
	})

	t.Run("real part is never negative", func(t *testing.T) {
		// -90 degrees about z written with a negative real part
		neg := quat.Number{math.Cos(3 * math.Pi / 4), 0, 0, math.Sin(3 * math.Pi / 4)}
		q, err := DecomposeScaledRotation(QuatToRotationMatrix(neg))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, q.Real, test.ShouldBeGreaterThanOrEqualTo, 0.)
		test.That(t, QuaternionAlmostEqual(q, neg, 1e-12), test.ShouldBeTrue)
	})

	t.Run("half turns", func(t *testing.T) {
		for _, axis := range []r3.Vector{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, r3.Vector{1, 1, 0}.Normalize()} {
			want := quat.Number{0, axis.X, axis.Y, axis.Z}
			q, err := DecomposeScaledRotation(QuatToRotationMatrix(want))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, QuaternionAlmostEqual(q, want, 1e-12), test.ShouldBeTrue)
		}
	})

	t.Run("zero column", func(t *testing.T) {
		bad := scaleColumns(rm45x, r3.Vector{1, 0, 1})
		_, err := DecomposeScaledRotation(bad)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, ErrDegenerateRotation), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "column 1")
	})

	t.Run("nan column", func(t *testing.T) {
		bad := scaleColumns(rm45x, r3.Vector{math.NaN(), 1, 1})
		_, err := DecomposeScaledRotation(bad)
		test.That(t, errors.Is(err, ErrDegenerateRotation), test.ShouldBeTrue)
	})
}

func TestRotationRoundTrip(t *testing.T) {
	//nolint:gosec
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		want := randomQuat(rnd)
		rm := QuatToRotationMatrix(want)
		test.That(t, rm.Det(), test.ShouldAlmostEqual, 1, 1e-12)

		q, err := DecomposeScaledRotation(rm)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, quat.Abs(q), test.ShouldAlmostEqual, 1, 1e-12)
		test.That(t, QuaternionAlmostEqual(q, want, 1e-9), test.ShouldBeTrue)

		back := QuatToRotationMatrix(q)
		test.That(t, back.Det(), test.ShouldAlmostEqual, 1, 1e-12)
		for c := 0; c < 3; c++ {
			test.That(t, back.Col(c).Norm(), test.ShouldAlmostEqual, 1, 1e-12)
			test.That(t, back.Col(c).Dot(back.Col((c+1)%3)), test.ShouldAlmostEqual, 0, 1e-12)
		}
	}
}

func TestRotationMatrixOps(t *testing.T) {
	_, err := NewRotationMatrix([]float64{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)

	rm, err := NewRotationMatrix(rm45x.Data())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rm, test.ShouldResemble, rm45x)

	prod := rm.MatMul(rm.Transpose())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.
			if i == j {
				want = 1
			}
			test.That(t, prod.At(i, j), test.ShouldAlmostEqual, want)
		}
	}

	v := rm.Mul(r3.Vector{0, 1, 0})
	test.That(t, R3VectorAlmostEqual(v, rm.Col(1), 1e-12), test.ShouldBeTrue)

	dense := rm.Dense()
	fromDense, err := NewRotationMatrixFromDense(dense)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fromDense, test.ShouldResemble, rm)

	_, err = NewRotationMatrixFromDense(dense.Slice(0, 2, 0, 3))
	test.That(t, err, test.ShouldNotBeNil)
}
