package llff

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/fbranschke/camorph/camera"
	"github.com/fbranschke/camorph/spatialmath"
)

// A packed row is a row major 3x5 matrix followed by the near and far bounds. Columns 0-2 are
// the scaled rotation, column 3 the translation and column 4 holds height, width and focal
// length down its three rows.
const (
	RowLength = 17

	heightIndex = 4
	widthIndex  = 9
	focalIndex  = 14
	nearIndex   = 15
	farIndex    = 16
)

// ErrRowLength is returned when a row does not have RowLength values.
var ErrRowLength = errors.Errorf("llff rows must have %d values", RowLength)

// RowError is a decode failure for a single row of a pose array.
type RowError struct {
	Index int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *RowError) Unwrap() error {
	return e.Err
}

// DecodeRow unpacks a row into a camera in the llff convention. The rotation columns are normalized
// independently, so any per-axis scale in the row is dropped. Intrinsics and bounds are taken as is.
func DecodeRow(row []float64) (*camera.Camera, error) {
	if len(row) != RowLength {
		return nil, errors.Wrapf(ErrRowLength, "got %d", len(row))
	}
	pose := mat.NewDense(3, 5, row[:15])

	rm, err := spatialmath.NewRotationMatrixFromDense(pose.Slice(0, 3, 0, 3))
	if err != nil {
		return nil, err
	}
	q, err := spatialmath.DecomposeScaledRotation(rm)
	if err != nil {
		return nil, err
	}
	t := pose.ColView(3)

	focal := row[focalIndex]
	return &camera.Camera{
		Translation:   r3.Vector{t.AtVec(0), t.AtVec(1), t.AtVec(2)},
		Orientation:   q,
		FocalLengthPx: r2.Point{focal, focal},
		Resolution:    camera.Resolution{Width: row[widthIndex], Height: row[heightIndex]},
		NearFarBounds: camera.Bounds{Near: row[nearIndex], Far: row[farIndex]},
	}, nil
}

// EncodeRow packs a camera in the llff convention into a row. Only the x focal length is kept.
func EncodeRow(cam *camera.Camera) []float64 {
	pose := mat.NewDense(3, 5, nil)
	pose.Slice(0, 3, 0, 3).(*mat.Dense).Copy(spatialmath.QuatToRotationMatrix(cam.Orientation).Dense())
	pose.SetCol(3, []float64{cam.Translation.X, cam.Translation.Y, cam.Translation.Z})
	pose.SetCol(4, []float64{cam.Resolution.Height, cam.Resolution.Width, cam.FocalLengthPx.X})

	row := make([]float64, 0, RowLength)
	row = append(row, pose.RawMatrix().Data...)
	return append(row, cam.NearFarBounds.Near, cam.NearFarBounds.Far)
}
