// Package referenceframe converts camera poses between coordinate conventions.
//
// A convention is described by a signed axis permutation relating its world axes to the canonical
// ones, and by the direction and up vectors of a camera at identity orientation. Every format
// handler converts into the canonical convention on read and out of it on write, so N formats
// need N conventions instead of N*N converters.
package referenceframe

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	spatial "github.com/fbranschke/camorph/spatialmath"
)

// A camera at identity orientation in the canonical convention looks down -Z with +Y up.
var (
	CanonicalCameraDir = r3.Vector{0, 0, -1}
	CanonicalCameraUp  = r3.Vector{0, 1, 0}
)

const referenceEpsilon = 1e-6

// Convention relates a coordinate convention to the canonical one.
type Convention struct {
	axes      [3]string
	cameraDir r3.Vector
	cameraUp  r3.Vector

	// p maps world coordinates into the canonical convention, c corrects the camera local frame.
	p *mat.Dense
	c *mat.Dense

	// precomputed right hand factors of the orientation transform in each direction
	toRight   *mat.Dense
	fromRight *mat.Dense
}

// NewConvention validates axes and the camera reference vectors and builds a Convention.
// axes names, for each canonical axis, the signed axis of this convention it corresponds to.
// cameraDir and cameraUp are where an identity oriented camera of this convention looks and
// points up, in canonical axes.
func NewConvention(axes [3]string, cameraDir, cameraUp r3.Vector) (*Convention, error) {
	p, err := ParseAxes(axes)
	if err != nil {
		return nil, err
	}
	local, err := frameFromReference(cameraDir, cameraUp)
	if err != nil {
		return nil, err
	}
	canonical, err := frameFromReference(CanonicalCameraDir, CanonicalCameraUp)
	if err != nil {
		return nil, err
	}

	conv := &Convention{axes: axes, cameraDir: cameraDir, cameraUp: cameraUp, p: p}
	conv.c = mat.NewDense(3, 3, nil)
	conv.c.Mul(local, canonical.T())

	conv.toRight = mat.NewDense(3, 3, nil)
	conv.toRight.Mul(p.T(), conv.c)
	conv.fromRight = mat.NewDense(3, 3, nil)
	conv.fromRight.Mul(conv.c.T(), p)
	return conv, nil
}

// MustNewConvention is like NewConvention but panics on invalid input. It is meant for
// package level conventions whose arguments are constants.
func MustNewConvention(axes [3]string, cameraDir, cameraUp r3.Vector) *Convention {
	conv, err := NewConvention(axes, cameraDir, cameraUp)
	if err != nil {
		panic(err)
	}
	return conv
}

// Axes returns the axis labels the convention was built from.
func (conv *Convention) Axes() [3]string {
	return conv.axes
}

// CameraDir returns the camera direction reference vector.
func (conv *Convention) CameraDir() r3.Vector {
	return conv.cameraDir
}

// CameraUp returns the camera up reference vector.
func (conv *Convention) CameraUp() r3.Vector {
	return conv.cameraUp
}

// Permutation returns a copy of the signed axis permutation.
func (conv *Convention) Permutation() *mat.Dense {
	return mat.DenseCopyOf(conv.p)
}

// ToCanonical maps a position and camera-to-world orientation from this convention to the
// canonical one.
func (conv *Convention) ToCanonical(t r3.Vector, q quat.Number) (r3.Vector, quat.Number, error) {
	return transformPose(conv.p, conv.toRight, t, q)
}

// FromCanonical is the inverse of ToCanonical.
func (conv *Convention) FromCanonical(t r3.Vector, q quat.Number) (r3.Vector, quat.Number, error) {
	return transformPose(conv.p.T(), conv.fromRight, t, q)
}

// transformPose returns (left*t, left*R*right). left and right are orthogonal, and the product
// of their determinants is +1 so the result stays a proper rotation.
func transformPose(left, right mat.Matrix, t r3.Vector, q quat.Number) (r3.Vector, quat.Number, error) {
	var tv mat.VecDense
	tv.MulVec(left, mat.NewVecDense(3, []float64{t.X, t.Y, t.Z}))

	var lr, lrr mat.Dense
	lr.Mul(left, spatial.QuatToRotationMatrix(q).Dense())
	lrr.Mul(&lr, right)
	rm, err := spatial.NewRotationMatrixFromDense(&lrr)
	if err != nil {
		return r3.Vector{}, quat.Number{}, err
	}
	out, err := spatial.DecomposeScaledRotation(rm)
	if err != nil {
		return r3.Vector{}, quat.Number{}, errors.Wrap(err, "converted orientation")
	}
	return r3.Vector{tv.AtVec(0), tv.AtVec(1), tv.AtVec(2)}, out, nil
}

// frameFromReference returns the orthonormal matrix with columns dir, up and dir x up.
func frameFromReference(dir, up r3.Vector) (*mat.Dense, error) {
	if dir.Norm() < referenceEpsilon || up.Norm() < referenceEpsilon {
		return nil, NewInvalidReferenceError("camera direction and up must be nonzero")
	}
	d, u := dir.Normalize(), up.Normalize()
	if !spatial.Float64AlmostEqual(d.Dot(u), 0, referenceEpsilon) {
		return nil, NewInvalidReferenceError("camera direction and up must be orthogonal")
	}
	s := d.Cross(u)
	return mat.NewDense(3, 3, []float64{
		d.X, u.X, s.X,
		d.Y, u.Y, s.Y,
		d.Z, u.Z, s.Z,
	}), nil
}
