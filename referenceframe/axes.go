package referenceframe

import (
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Axis is a signed reference to one of the x, y or z axes.
type Axis struct {
	Index int
	Sign  float64
}

func (a Axis) String() string {
	sign := "+"
	if a.Sign < 0 {
		sign = "-"
	}
	return sign + string("xyz"[a.Index])
}

// ParseAxis parses labels like "x", "+y" or "-z".
func ParseAxis(label string) (Axis, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	sign := 1.
	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	switch s {
	case "x":
		return Axis{0, sign}, nil
	case "y":
		return Axis{1, sign}, nil
	case "z":
		return Axis{2, sign}, nil
	}
	return Axis{}, errors.Errorf("unknown axis label %q", label)
}

// ParseAxes builds the signed permutation whose rows are the target basis vectors expressed in
// source coordinates. ("-x", "-z", "y") gives rows -x, -z and +y.
func ParseAxes(axes [3]string) (*mat.Dense, error) {
	p := mat.NewDense(3, 3, nil)
	for row, label := range axes {
		a, err := ParseAxis(label)
		if err != nil {
			return nil, NewInvalidAxesError(axes, err.Error())
		}
		p.Set(row, a.Index, a.Sign)
	}
	if err := ValidateSignedPermutation(p); err != nil {
		return nil, NewInvalidAxesError(axes, err.Error())
	}
	return p, nil
}

// ValidateSignedPermutation checks that m is 3x3 with exactly one +1 or -1 in every row and column
// and zeros elsewhere.
func ValidateSignedPermutation(m mat.Matrix) error {
	if r, c := m.Dims(); r != 3 || c != 3 {
		return errors.Errorf("expected a 3x3 matrix, got %dx%d", r, c)
	}
	var rowCount, colCount [3]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			switch v := m.At(i, j); v {
			case 0:
			case 1, -1:
				rowCount[i]++
				colCount[j]++
			default:
				return errors.Errorf("entry (%d, %d) is %v, not 0 or ±1", i, j, v)
			}
		}
	}
	for i := 0; i < 3; i++ {
		if rowCount[i] != 1 {
			return errors.Errorf("row %d has %d nonzero entries", i, rowCount[i])
		}
		if colCount[i] != 1 {
			return errors.Errorf("axis %s is used %d times", Axis{i, 1}, colCount[i])
		}
	}
	return nil
}
