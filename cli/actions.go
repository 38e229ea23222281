package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edaniels/golog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/fbranschke/camorph/camera"
	"github.com/fbranschke/camorph/format"
	"github.com/fbranschke/camorph/logging"
	"github.com/fbranschke/camorph/referenceframe"
	"github.com/fbranschke/camorph/registry"
)

var logger = golog.Global()

func setupLogger(c *cli.Context) error {
	l, err := logging.NewLogger("camorph", c.String(generalFlagLogLevel), c.String(generalFlagLogFile))
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// ListFormatsAction is the corresponding Action for 'formats'.
func ListFormatsAction(c *cli.Context) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Files", "Crucial properties"})
	for _, name := range registry.RegisteredFormats() {
		h, err := registry.NewFormat(name, logger, format.Options{})
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{h.Name(), h.FileNumber(), fmt.Sprint(h.CrucialProperties())})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// InspectAction is the corresponding Action for 'inspect'.
func InspectAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("inspect requires exactly one <file> argument")
	}
	opts, err := formatOptions(c)
	if err != nil {
		return err
	}
	h, err := registry.NewFormat(c.String(formatFlagFrom), logger, opts)
	if err != nil {
		return err
	}
	cams, err := h.ReadFile(c.Args().First())
	if err != nil {
		return err
	}
	if path := c.String(formatFlagConvention); path != "" {
		conv, err := referenceframe.NewConventionFromJSONFile(path)
		if err != nil {
			return err
		}
		if cams, err = referenceframe.FromCanonicalCameras(conv, cams); err != nil {
			return err
		}
	}
	printf(c.App.Writer, "%s", camerasTable(cams))
	return nil
}

// ConvertAction is the corresponding Action for 'convert'.
func ConvertAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("convert requires <input> and <output> arguments")
	}
	opts, err := formatOptions(c)
	if err != nil {
		return err
	}
	from, err := registry.NewFormat(c.String(formatFlagFrom), logger, opts)
	if err != nil {
		return err
	}
	to, err := registry.NewFormat(c.String(formatFlagTo), logger, format.Options{Validate: opts.Validate})
	if err != nil {
		return err
	}
	if lost := format.LostProperties(from, to); len(lost) > 0 {
		logger.Warnw("conversion is lossy", "from", from.Name(), "to", to.Name(), "dropped", lost)
	}

	in, out := c.Args().Get(0), c.Args().Get(1)
	cams, err := from.ReadFile(in)
	if err != nil {
		return err
	}
	if err := to.WriteFile(cams, out); err != nil {
		return err
	}
	printf(c.App.Writer, "wrote %d cameras to %s", len(cams), out)
	return nil
}

func formatOptions(c *cli.Context) (format.Options, error) {
	opts := format.Options{
		SkipDegenerate: c.Bool(formatFlagSkipDegenerate),
		Validate:       c.Bool(formatFlagValidate),
	}
	if dir := c.String(formatFlagImages); dir != "" {
		names, err := imageNames(dir)
		if err != nil {
			return opts, err
		}
		opts.ImageNames = names
	}
	return opts, nil
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".exr", ".tif", ".tiff"}

// imageNames lists the image files of dir in the order llff expects them. Other files, such as
// the pose array itself, are ignored.
func imageNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing images in %s", dir)
	}
	cams := make([]*camera.Camera, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !lo.Contains(imageExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		cams = append(cams, &camera.Camera{SourceImage: filepath.Join(dir, e.Name())})
	}
	camera.SortBySourceImage(cams)
	names := make([]string, 0, len(cams))
	for _, cam := range cams {
		names = append(names, cam.SourceImage)
	}
	return names, nil
}

func camerasTable(cams []*camera.Camera) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Image", "Translation", "Orientation (w, x, y, z)", "Focal (px)", "Resolution", "Near/Far"})
	for i, cam := range cams {
		q := cam.Orientation
		t.AppendRow(table.Row{
			i,
			cam.SourceImage,
			fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", cam.Translation.X, cam.Translation.Y, cam.Translation.Z),
			fmt.Sprintf("%.4f, %.4f, %.4f, %.4f", q.Real, q.Imag, q.Jmag, q.Kmag),
			fmt.Sprintf("%.2f, %.2f", cam.FocalLengthPx.X, cam.FocalLengthPx.Y),
			fmt.Sprintf("%.0fx%.0f", cam.Resolution.Width, cam.Resolution.Height),
			fmt.Sprintf("%.4f/%.4f", cam.NearFarBounds.Near, cam.NearFarBounds.Far),
		})
	}
	return t.Render()
}

func printf(w io.Writer, msg string, a ...interface{}) {
	if _, err := fmt.Fprintf(w, msg+"\n", a...); err != nil {
		logger.Debugw("failed to write output", "error", err)
	}
}
