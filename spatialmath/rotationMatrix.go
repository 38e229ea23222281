package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// ErrDegenerateRotation is returned when a rotation matrix has a column that cannot be normalized.
var ErrDegenerateRotation = errors.New("degenerate rotation matrix")

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates a rotation matrix from a row major slice of length 9.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice for RotationMatrix must have length 9, got %d", len(m))
	}
	var rm RotationMatrix
	copy(rm.mat[:], m)
	return &rm, nil
}

// NewRotationMatrixFromDense copies the top left 3x3 block of a gonum matrix.
func NewRotationMatrixFromDense(m mat.Matrix) (*RotationMatrix, error) {
	r, c := m.Dims()
	if r < 3 || c < 3 {
		return nil, errors.Errorf("matrix of size %dx%d has no 3x3 rotation block", r, c)
	}
	var rm RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rm.mat[3*i+j] = m.At(i, j)
		}
	}
	return &rm, nil
}

// IdentityRotationMatrix returns the 3x3 identity.
func IdentityRotationMatrix() *RotationMatrix {
	return &RotationMatrix{[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// At returns the element at row, col.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns the row at the given index as a vector.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{rm.mat[3*row], rm.mat[3*row+1], rm.mat[3*row+2]}
}

// Col returns the column at the given index as a vector.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{rm.mat[col], rm.mat[col+3], rm.mat[col+6]}
}

// Data returns a row major copy of the matrix.
func (rm *RotationMatrix) Data() []float64 {
	out := make([]float64, 9)
	copy(out, rm.mat[:])
	return out
}

// Mul multiplies a vector by the matrix.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{rm.Row(0).Dot(v), rm.Row(1).Dot(v), rm.Row(2).Dot(v)}
}

// MatMul returns rm * other.
func (rm *RotationMatrix) MatMul(other *RotationMatrix) *RotationMatrix {
	var out RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.mat[3*i+j] = rm.Row(i).Dot(other.Col(j))
		}
	}
	return &out
}

// Transpose returns the transpose, which for an orthonormal matrix is also its inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	var out RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.mat[3*j+i] = rm.mat[3*i+j]
		}
	}
	return &out
}

// Det returns the determinant.
func (rm *RotationMatrix) Det() float64 {
	return rm.Row(0).Dot(rm.Row(1).Cross(rm.Row(2)))
}

// Dense returns the matrix as a gonum dense matrix.
func (rm *RotationMatrix) Dense() *mat.Dense {
	return mat.NewDense(3, 3, rm.Data())
}

func (rm *RotationMatrix) String() string {
	return fmt.Sprintf("[%v %v %v]", rm.Row(0), rm.Row(1), rm.Row(2))
}

// DecomposeScaledRotation converts a matrix whose columns are rotation axes scaled by arbitrary
// per-column magnitudes into a unit quaternion. Each column is divided by its own norm; the result
// is not re-orthogonalized, so columns that are not mutually orthogonal yield an approximate rotation.
// The returned quaternion always has a non-negative real part.
func DecomposeScaledRotation(m *RotationMatrix) (quat.Number, error) {
	var cols [3]mgl64.Vec3
	for j := 0; j < 3; j++ {
		c := m.Col(j)
		s := c.Norm()
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return quat.Number{}, errors.Wrapf(ErrDegenerateRotation, "column %d has norm %v", j, s)
		}
		cols[j] = mgl64.Vec3{c.X / s, c.Y / s, c.Z / s}
	}
	// Mat4ToQuat picks its branch from the trace or the largest diagonal element
	mq := mgl64.Mat4ToQuat(mgl64.Mat3FromCols(cols[0], cols[1], cols[2]).Mat4())
	q := Normalize(quat.Number{Real: mq.W, Imag: mq.V[0], Jmag: mq.V[1], Kmag: mq.V[2]})
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q, nil
}

// QuatToRotationMatrix converts a quaternion to a rotation matrix. The quaternion is normalized
// first so the result is orthonormal with determinant +1.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return &RotationMatrix{[9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	}}
}
