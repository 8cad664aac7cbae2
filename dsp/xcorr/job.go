package xcorr

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-ringdsp/dsp/core"
)

// Flag selects optional engine behaviour. Flags combine with bitwise OR.
type Flag uint8

// Flag values.
const (
	Wrap Flag = 1 << iota
	Scale
	Reverse
	CopyBack
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Wrap, "wrap"},
	{Scale, "scale"},
	{Reverse, "reverse"},
	{CopyBack, "copy-back"},
}

// Has reports whether every bit of x is set in f.
func (f Flag) Has(x Flag) bool {
	return f&x == x
}

func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range flagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if rest := f &^ (Wrap | Scale | Reverse | CopyBack); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// Job describes one correlation run.
type Job struct {
	InputLen int
	CoeffLen int
	Flags    Flag

	// Decimate evaluates every Decimate-th window. Values below 1 mean 1.
	Decimate int

	// Offset is the DC reference subtracted from every sample.
	// A negative Offset selects the arithmetic mean of the samples instead.
	Offset float64
}

// Decimation returns the effective decimation factor.
func (j Job) Decimation() int {
	if j.Decimate < 1 {
		return 1
	}
	return j.Decimate
}

// Windows returns the number of window positions before decimation.
func (j Job) Windows() int {
	if j.Flags.Has(Wrap) {
		return j.InputLen
	}
	return max(0, j.InputLen-j.CoeffLen+1)
}

// Results returns the number of values a run of j produces.
func (j Job) Results() int {
	return j.Windows() / j.Decimation()
}

// Position returns the index of the newest sample in the window of result i.
func (j Job) Position(i int) int {
	first := j.CoeffLen - 1
	if j.Flags.Has(Wrap) {
		first = 0
	}
	return first + i*j.Decimation()
}

func (j Job) validate(samples, coeffs int) error {
	if j.InputLen < 1 {
		return fmt.Errorf("xcorr: %w: input length must be > 0: %d", core.ErrConfiguration, j.InputLen)
	}
	if j.CoeffLen < 1 {
		return fmt.Errorf("xcorr: %w: coefficient length must be > 0: %d", core.ErrConfiguration, j.CoeffLen)
	}
	if samples != j.InputLen {
		return fmt.Errorf("xcorr: %w: job input length %d, got %d samples",
			core.ErrConfiguration, j.InputLen, samples)
	}
	if coeffs != j.CoeffLen {
		return fmt.Errorf("xcorr: %w: job coefficient length %d, got %d coefficients",
			core.ErrConfiguration, j.CoeffLen, coeffs)
	}
	return nil
}
