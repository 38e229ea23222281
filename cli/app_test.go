package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"

	"github.com/fbranschke/camorph/format/llff"
	"github.com/fbranschke/camorph/utils"
)

func testRows() [][]float64 {
	row := func(x float64) []float64 {
		return []float64{
			1, 0, 0, x, 480,
			0, 1, 0, 2, 640,
			0, 0, 1, 3, 1200,
			0.1, 10,
		}
	}
	return [][]float64{row(0), row(1)}
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"camorph", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestFormats(t *testing.T) {
	out, err := runApp(t, "formats")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, llff.Name)
	test.That(t, out, test.ShouldContainSubstring, "near_far_bounds")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "poses_bounds.npy")
	out := filepath.Join(dir, "converted.npy")
	test.That(t, utils.WriteFloat64RowsFile(in, testRows()), test.ShouldBeNil)

	stdout, err := runApp(t, "convert", "--from", "llff", "--to", "llff", in, out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stdout, test.ShouldContainSubstring, "wrote 2 cameras")

	rows, err := utils.ReadFloat64RowsFile(out, llff.RowLength)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cmp.Diff(testRows(), rows, cmpopts.EquateApprox(0, 1e-9)), test.ShouldBeEmpty)

	t.Run("errors", func(t *testing.T) {
		_, err := runApp(t, "convert", "--from", "llff", "--to", "llff", in)
		test.That(t, err, test.ShouldNotBeNil)

		_, err = runApp(t, "convert", "--from", "llff", "--to", "nope", in, out)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "unknown format")

		_, err = runApp(t, "convert", "--from", "llff", "--to", "llff", filepath.Join(dir, "missing.npy"), out)
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "poses_bounds.npy")
	test.That(t, utils.WriteFloat64RowsFile(in, testRows()), test.ShouldBeNil)

	images := filepath.Join(dir, "images")
	test.That(t, os.Mkdir(images, 0o700), test.ShouldBeNil)
	test.That(t, os.Mkdir(filepath.Join(images, "masks"), 0o700), test.ShouldBeNil)
	for _, name := range []string{"img_0002.png", "img_0001.png", "notes.txt"} {
		test.That(t, os.WriteFile(filepath.Join(images, name), nil, 0o600), test.ShouldBeNil)
	}

	out, err := runApp(t, "inspect", "--images", images, in)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "img_0001.png")
	test.That(t, out, test.ShouldContainSubstring, "img_0002.png")
	test.That(t, out, test.ShouldNotContainSubstring, "masks")
	test.That(t, out, test.ShouldNotContainSubstring, "notes.txt")
	test.That(t, out, test.ShouldContainSubstring, "640x480")

	t.Run("convention", func(t *testing.T) {
		conv := filepath.Join(dir, "llff.json")
		test.That(t, os.WriteFile(conv,
			[]byte(`{"axes": ["-x", "-z", "y"], "camera_dir": [0, 0, -1], "camera_up": [-1, 0, 0]}`), 0o600),
			test.ShouldBeNil)
		out, err := runApp(t, "inspect", "--convention", conv, in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "X:1.0000, Y:2.0000, Z:3.0000")
	})

	t.Run("errors", func(t *testing.T) {
		_, err := runApp(t, "inspect")
		test.That(t, err, test.ShouldNotBeNil)

		_, err = runApp(t, "inspect", "--images", filepath.Join(dir, "nothing"), in)
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestImageNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.png", "c.JPG", "d.exr", ".DS_Store", "poses_bounds.npy", "a.png.xmp"} {
		test.That(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600), test.ShouldBeNil)
	}
	names, err := imageNames(dir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, names, test.ShouldResemble, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.JPG"),
		filepath.Join(dir, "d.exr"),
	})
}
