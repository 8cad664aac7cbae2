package xcorr

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cwbudde/algo-ringdsp/dsp/core"
)

// Sample is the set of sample element types the engine reads.
// Unsigned integers are zero-extended before arithmetic.
type Sample interface {
	~uint8 | ~uint16 | ~uint32 | ~float32 | ~float64
}

// Correlate runs job over samples against coeffs and stores the results at
// the start of output. It returns the number of results written.
//
// len(samples) must equal job.InputLen, len(coeffs) must equal job.CoeffLen
// and output must hold at least job.Results() values. When job.Flags has
// Scale, output[0] supplies the scale factor and is overwritten by the first
// result. A window longer than the input without Wrap yields zero results.
func Correlate[T Sample](samples []T, output, coeffs []float64, job Job) (int, error) {
	if err := job.validate(len(samples), len(coeffs)); err != nil {
		return 0, err
	}
	n := job.Results()
	if len(output) < n {
		return 0, fmt.Errorf("xcorr: %w: output holds %d values, job produces %d",
			core.ErrConfiguration, len(output), n)
	}

	scale := 1.0
	if job.Flags.Has(Scale) && len(output) > 0 {
		scale = output[0]
	}

	mean := dcReference(samples, job.Offset)
	reverse := job.Flags.Has(Reverse)
	for i := range n {
		output[i] = scale * windowSum(samples, coeffs, job.Position(i), mean, reverse)
	}

	if job.Flags.Has(CopyBack) {
		writeBack(samples, output[:n], mean)
	}
	return n, nil
}

// dcReference returns offset, or the mean of samples when offset is negative.
func dcReference[T Sample](samples []T, offset float64) float64 {
	if offset >= 0 {
		return offset
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s)
	}
	return sum / float64(len(samples))
}

// windowSum correlates the window whose newest sample is samples[p],
// walking backward and wrapping at the start of the buffer.
func windowSum[T Sample](samples []T, coeffs []float64, p int, mean float64, reverse bool) float64 {
	m := len(coeffs)
	last := len(samples) - 1
	var acc float64
	for k := range m {
		c := coeffs[m-1-k]
		if reverse {
			c = coeffs[k]
		}
		acc += c * (float64(samples[p]) - mean)
		p--
		if p < 0 {
			p = last
		}
	}
	return acc
}

// writeBack stores results+mean over the head of samples and mean over the
// remainder.
func writeBack[T Sample](samples []T, results []float64, mean float64) {
	conv := converterFor[T]()
	for i, r := range results {
		samples[i] = T(conv(r + mean))
	}
	core.Fill(samples[len(results):], T(conv(mean)))
}

// converterFor returns the float64 mapping applied before narrowing to T.
// Real types pass through; unsigned types round to nearest and saturate.
func converterFor[T Sample]() func(float64) float64 {
	var limit float64
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Uint8:
		limit = math.MaxUint8
	case reflect.Uint16:
		limit = math.MaxUint16
	case reflect.Uint32:
		limit = math.MaxUint32
	default:
		return func(v float64) float64 { return v }
	}
	return func(v float64) float64 {
		return core.Clamp(math.Round(v), 0, limit)
	}
}
