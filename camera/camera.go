// Package camera defines the canonical camera record exchanged between format handlers.
package camera

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/fbranschke/camorph/spatialmath"
)

// ErrImplausibleCamera is returned by CheckValid when a camera is well formed but physically meaningless.
var ErrImplausibleCamera = errors.New("implausible camera parameters")

// NewImplausibleCameraError wraps ErrImplausibleCamera with a description.
func NewImplausibleCameraError(msg string) error {
	return errors.Wrap(ErrImplausibleCamera, msg)
}

// Property names a camera field that a format can carry.
type Property string

// Properties a format handler can declare as preserved.
const (
	PropertyFocalLengthPx Property = "focal_length_px"
	PropertyResolution    Property = "resolution"
	PropertyNearFarBounds Property = "near_far_bounds"
)

// Resolution is the image size in pixels.
type Resolution struct {
	Width  float64 `json:"width_px"`
	Height float64 `json:"height_px"`
}

// Bounds holds the near and far scene depth.
type Bounds struct {
	Near float64 `json:"near"`
	Far  float64 `json:"far"`
}

// Camera is a single camera pose with its intrinsics.
// Orientation is a camera-to-world rotation in the active coordinate convention.
type Camera struct {
	SourceImage   string      `json:"source_image"`
	Translation   r3.Vector   `json:"translation"`
	Orientation   quat.Number `json:"orientation"`
	FocalLengthPx r2.Point    `json:"focal_length_px"`
	Resolution    Resolution  `json:"resolution"`
	NearFarBounds Bounds      `json:"near_far_bounds"`
}

// Clone returns a copy of the camera.
func (c *Camera) Clone() *Camera {
	// every field is a value type
	out := *c
	return &out
}

// CheckValid checks that the camera has a unit orientation, positive intrinsics and ordered bounds.
func (c *Camera) CheckValid() error {
	if c == nil {
		return NewImplausibleCameraError("camera does not exist")
	}
	if !spatialmath.IsUnit(c.Orientation, 1e-6) {
		return NewImplausibleCameraError(fmt.Sprintf("orientation %v is not a unit quaternion", c.Orientation))
	}
	if !(c.Resolution.Width > 0) || !(c.Resolution.Height > 0) {
		return NewImplausibleCameraError(fmt.Sprintf("invalid resolution (%#v, %#v)", c.Resolution.Width, c.Resolution.Height))
	}
	if !(c.FocalLengthPx.X > 0) || !(c.FocalLengthPx.Y > 0) {
		return NewImplausibleCameraError(fmt.Sprintf("invalid focal length (%#v, %#v)", c.FocalLengthPx.X, c.FocalLengthPx.Y))
	}
	if math.IsNaN(c.NearFarBounds.Near) || math.IsNaN(c.NearFarBounds.Far) || c.NearFarBounds.Near > c.NearFarBounds.Far {
		return NewImplausibleCameraError(fmt.Sprintf("near bound %#v is beyond far bound %#v", c.NearFarBounds.Near, c.NearFarBounds.Far))
	}
	return nil
}

// CloneAll copies a slice of cameras.
func CloneAll(cams []*Camera) []*Camera {
	out := make([]*Camera, 0, len(cams))
	for _, c := range cams {
		out = append(out, c.Clone())
	}
	return out
}
