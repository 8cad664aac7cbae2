package xcorr

import (
	"errors"
	"math"
)

// Errors returned by Detect and Detection.Ratio.
var (
	ErrEmptyOutput  = errors.New("xcorr: empty correlation output")
	ErrPathological = errors.New("xcorr: runner-up correlation is not positive")
)

// Detection summarises a correlation run searched for a single match.
type Detection struct {
	// Index and Peak locate the first maximum.
	Index int
	Peak  float64

	// Next is the largest value strictly below Peak, or -Inf when every
	// value equals Peak.
	Next float64
}

// Detect finds the peak of a correlation output and its runner-up.
func Detect(out []float64) (Detection, error) {
	if len(out) == 0 {
		return Detection{}, ErrEmptyOutput
	}

	d := Detection{Index: 0, Peak: out[0], Next: math.Inf(-1)}
	for i, v := range out[1:] {
		if v > d.Peak {
			d.Index, d.Peak = i+1, v
		}
	}
	for _, v := range out {
		if v < d.Peak && v > d.Next {
			d.Next = v
		}
	}
	return d, nil
}

// Ratio returns Peak/Next, the detection certainty. It fails with
// ErrPathological when Next is zero or negative, which happens on data with
// no distinct runner-up.
func (d Detection) Ratio() (float64, error) {
	if d.Next <= 0 {
		return 0, ErrPathological
	}
	return d.Peak / d.Next, nil
}
