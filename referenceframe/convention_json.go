package referenceframe

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ConventionConfig is the json form of a Convention.
type ConventionConfig struct {
	Axes      []string  `json:"axes"`
	CameraDir []float64 `json:"camera_dir"`
	CameraUp  []float64 `json:"camera_up"`
}

// Validate ensures all parts of the config are present and well sized.
func (cfg *ConventionConfig) Validate(path string) error {
	if len(cfg.Axes) != 3 {
		return errors.Errorf("%s: expected 3 axes, got %d", path, len(cfg.Axes))
	}
	if len(cfg.CameraDir) != 3 {
		return errors.Errorf("%s: camera_dir must have 3 components", path)
	}
	if len(cfg.CameraUp) != 3 {
		return errors.Errorf("%s: camera_up must have 3 components", path)
	}
	return nil
}

// Convention builds the Convention described by the config.
func (cfg *ConventionConfig) Convention() (*Convention, error) {
	if err := cfg.Validate("convention"); err != nil {
		return nil, err
	}
	return NewConvention(
		[3]string{cfg.Axes[0], cfg.Axes[1], cfg.Axes[2]},
		r3.Vector{cfg.CameraDir[0], cfg.CameraDir[1], cfg.CameraDir[2]},
		r3.Vector{cfg.CameraUp[0], cfg.CameraUp[1], cfg.CameraUp[2]},
	)
}

// NewConventionFromJSONFile reads a ConventionConfig from a json file and builds the Convention.
func NewConventionFromJSONFile(path string) (*Convention, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening convention file")
	}
	var cfg ConventionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "error parsing %s", path)
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return cfg.Convention()
}
