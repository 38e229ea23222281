// Package llff reads and writes the poses_bounds.npy files used by LLFF style novel view
// synthesis pipelines. Each camera is one row of an Nx17 float64 array and rows carry no image
// name, so row order is the only link between a pose and its image.
package llff

import (
	"io"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/fbranschke/camorph/camera"
	"github.com/fbranschke/camorph/format"
	"github.com/fbranschke/camorph/referenceframe"
	"github.com/fbranschke/camorph/registry"
	"github.com/fbranschke/camorph/spatialmath"
	"github.com/fbranschke/camorph/utils"
)

// Name is the name the format is registered under.
const Name = "llff"

// Convention is the llff coordinate convention. Cameras look down their local -z with -x up.
var Convention = referenceframe.MustNewConvention(
	[3]string{"-x", "-z", "y"},
	r3.Vector{0, 0, -1},
	r3.Vector{-1, 0, 0},
)

// ErrNoCameras is returned when writing an empty camera list.
var ErrNoCameras = errors.New("no cameras to write")

func init() {
	registry.RegisterFormat(Name, func(logger golog.Logger, opts format.Options) format.Handler {
		return New(logger, opts)
	})
}

// Format is the llff format handler.
type Format struct {
	logger golog.Logger
	opts   format.Options
}

var _ format.Handler = (*Format)(nil)

// New returns an llff handler.
func New(logger golog.Logger, opts format.Options) *Format {
	if logger == nil {
		logger = golog.Global()
	}
	return &Format{logger: logger, opts: opts}
}

// Name returns "llff".
func (f *Format) Name() string {
	return Name
}

// FileNumber returns 1.
func (f *Format) FileNumber() int {
	return 1
}

// CrucialProperties returns the intrinsics llff keeps beyond the pose.
func (f *Format) CrucialProperties() []camera.Property {
	return []camera.Property{
		camera.PropertyFocalLengthPx,
		camera.PropertyResolution,
		camera.PropertyNearFarBounds,
	}
}

// Read decodes a pose array and returns its cameras in the canonical convention, in row order.
func (f *Format) Read(r io.Reader) ([]*camera.Camera, error) {
	rows, err := utils.ReadFloat64Rows(r, RowLength)
	if err != nil {
		return nil, err
	}
	return f.decodeRows(rows)
}

// ReadFile is Read on the file at path.
func (f *Format) ReadFile(path string) ([]*camera.Camera, error) {
	rows, err := utils.ReadFloat64RowsFile(path, RowLength)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return f.decodeRows(rows)
}

// Write converts canonical cameras to llff and writes them sorted by source image.
func (f *Format) Write(cams []*camera.Camera, w io.Writer) error {
	rows, err := f.encodeCameras(cams)
	if err != nil {
		return err
	}
	return utils.WriteFloat64Rows(w, rows)
}

// WriteFile is Write to the file at path.
func (f *Format) WriteFile(cams []*camera.Camera, path string) error {
	rows, err := f.encodeCameras(cams)
	if err != nil {
		return err
	}
	return errors.Wrapf(utils.WriteFloat64RowsFile(path, rows), "writing %s", path)
}

func (f *Format) decodeRows(rows [][]float64) ([]*camera.Camera, error) {
	if len(f.opts.ImageNames) > 0 && len(f.opts.ImageNames) != len(rows) {
		f.logger.Warnw("number of images does not match number of poses",
			"images", len(f.opts.ImageNames), "poses", len(rows))
	}

	cams := make([]*camera.Camera, 0, len(rows))
	var skipped error
	for i, row := range rows {
		cam, err := DecodeRow(row)
		if err != nil {
			rowErr := &RowError{Index: i, Err: err}
			if !f.opts.SkipDegenerate || !errors.Is(err, spatialmath.ErrDegenerateRotation) {
				return nil, rowErr
			}
			f.logger.Warnw("skipping camera with degenerate rotation", "row", i, "error", err)
			skipped = multierr.Append(skipped, rowErr)
			continue
		}
		if i < len(f.opts.ImageNames) {
			cam.SourceImage = f.opts.ImageNames[i]
		}
		if f.opts.Validate {
			if err := cam.CheckValid(); err != nil {
				return nil, &RowError{Index: i, Err: err}
			}
		}
		if cam.Translation, cam.Orientation, err = Convention.ToCanonical(cam.Translation, cam.Orientation); err != nil {
			return nil, &RowError{Index: i, Err: err}
		}
		cams = append(cams, cam)
	}
	if skipped != nil {
		f.logger.Infow("read finished with skipped rows",
			"count", len(multierr.Errors(skipped)), "error", skipped)
	}
	return cams, nil
}

func (f *Format) encodeCameras(cams []*camera.Camera) ([][]float64, error) {
	if len(cams) == 0 {
		return nil, ErrNoCameras
	}
	if f.opts.Validate {
		for i, c := range cams {
			if err := c.CheckValid(); err != nil {
				return nil, errors.Wrapf(err, "camera %d (%s)", i, c.SourceImage)
			}
		}
	}
	converted, err := referenceframe.FromCanonicalCameras(Convention, cams)
	if err != nil {
		return nil, err
	}
	f.logger.Warn("llff relies on sorted image order, cameras are sorted by image name when writing")
	camera.SortBySourceImage(converted)
	return lo.Map(converted, func(c *camera.Camera, _ int) []float64 {
		return EncodeRow(c)
	}), nil
}
