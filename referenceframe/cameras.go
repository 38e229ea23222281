package referenceframe

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/fbranschke/camorph/camera"
)

type poseTransform func(t r3.Vector, q quat.Number) (r3.Vector, quat.Number, error)

// ToCanonicalCameras returns copies of cams converted from conv to the canonical convention.
func ToCanonicalCameras(conv *Convention, cams []*camera.Camera) ([]*camera.Camera, error) {
	return transformCameras(conv.ToCanonical, cams)
}

// FromCanonicalCameras returns copies of cams converted from the canonical convention to conv.
func FromCanonicalCameras(conv *Convention, cams []*camera.Camera) ([]*camera.Camera, error) {
	return transformCameras(conv.FromCanonical, cams)
}

func transformCameras(fn poseTransform, cams []*camera.Camera) ([]*camera.Camera, error) {
	out := camera.CloneAll(cams)
	for i, c := range out {
		t, q, err := fn(c.Translation, c.Orientation)
		if err != nil {
			return nil, errors.Wrapf(err, "camera %d", i)
		}
		c.Translation, c.Orientation = t, q
	}
	return out, nil
}
