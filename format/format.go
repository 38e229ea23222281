// Package format defines the interface every camera file format handler implements.
package format

import (
	"io"

	"github.com/fbranschke/camorph/camera"
)

// A Handler reads and writes cameras in one file format. Cameras crossing the interface are
// always in the canonical coordinate convention.
type Handler interface {
	// Name is the identifier the format is registered under.
	Name() string

	// FileNumber is how many physical files the format occupies.
	FileNumber() int

	// CrucialProperties lists the camera properties the format round trips without loss.
	// Converting into a format that lacks a property the source had is lossy.
	CrucialProperties() []camera.Property

	Read(r io.Reader) ([]*camera.Camera, error)
	Write(cams []*camera.Camera, w io.Writer) error

	ReadFile(path string) ([]*camera.Camera, error)
	WriteFile(cams []*camera.Camera, path string) error
}

// Options control how a handler treats questionable data.
type Options struct {
	// SkipDegenerate drops cameras whose pose cannot be decoded instead of failing the read.
	SkipDegenerate bool
	// Validate rejects cameras that fail camera.CheckValid. By default implausible values such as
	// near > far pass through unchanged.
	Validate bool
	// ImageNames assigns source images to cameras in file order, for formats that store none.
	ImageNames []string
}

// LostProperties returns the crucial properties of from that to does not carry.
func LostProperties(from, to Handler) []camera.Property {
	keep := map[camera.Property]bool{}
	for _, p := range to.CrucialProperties() {
		keep[p] = true
	}
	var lost []camera.Property
	for _, p := range from.CrucialProperties() {
		if !keep[p] {
			lost = append(lost, p)
		}
	}
	return lost
}
