package xcorr

import (
	"fmt"

	"github.com/cwbudde/algo-ringdsp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Engine correlates successive acquisition buffers against one reference.
//
// Windows that lie inside the buffer are evaluated as a block product with
// vecmath; windows that wrap fall back to the scalar walk. Results match
// Correlate up to floating-point summation order.
//
// An Engine is not safe for concurrent use.
type Engine[T Sample] struct {
	coeffs  []float64
	ordered []float64 // coefficient for each window slot, oldest first
	cfg     engineConfig

	output   []float64
	centered []float64
	prod     []float64
}

// NewEngine returns an Engine for coeffs whose output holds up to capacity
// results. The coefficients are copied.
func NewEngine[T Sample](coeffs []float64, capacity int, opts ...Option) (*Engine[T], error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("xcorr: %w: empty coefficients", core.ErrConfiguration)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("xcorr: %w: capacity must be > 0: %d", core.ErrConfiguration, capacity)
	}

	cfg := defaultEngineConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	m := len(coeffs)
	e := &Engine[T]{
		coeffs:  make([]float64, m),
		ordered: make([]float64, m),
		cfg:     cfg,
		output:  make([]float64, capacity),
		prod:    make([]float64, m),
	}
	copy(e.coeffs, coeffs)
	for j := range m {
		if cfg.flags.Has(Reverse) {
			e.ordered[j] = coeffs[m-1-j]
		} else {
			e.ordered[j] = coeffs[j]
		}
	}
	return e, nil
}

// Job returns the job Process runs for a buffer of inputLen samples.
func (e *Engine[T]) Job(inputLen int) Job {
	return Job{
		InputLen: inputLen,
		CoeffLen: len(e.coeffs),
		Flags:    e.cfg.flags,
		Decimate: e.cfg.decimate,
		Offset:   e.cfg.offset,
	}
}

// Capacity returns the maximum number of results per call.
func (e *Engine[T]) Capacity() int {
	return len(e.output)
}

// Process correlates samples and returns the results. The returned slice
// aliases the engine's output buffer and is overwritten by the next call.
func (e *Engine[T]) Process(samples []T) ([]float64, error) {
	job := e.Job(len(samples))
	if err := job.validate(len(samples), len(e.coeffs)); err != nil {
		return nil, err
	}
	n := job.Results()
	if n > len(e.output) {
		return nil, fmt.Errorf("xcorr: %w: engine capacity %d, job produces %d",
			core.ErrConfiguration, len(e.output), n)
	}

	mean := dcReference(samples, job.Offset)
	e.centered = core.EnsureLen(e.centered, len(samples))
	for i, s := range samples {
		e.centered[i] = float64(s) - mean
	}

	m := len(e.coeffs)
	reverse := job.Flags.Has(Reverse)
	out := e.output[:n]
	for i := range out {
		p := job.Position(i)
		var acc float64
		if start := p - m + 1; start >= 0 {
			vecmath.MulBlock(e.prod, e.ordered, e.centered[start:p+1])
			for _, v := range e.prod {
				acc += v
			}
		} else {
			acc = windowSum(e.centered, e.coeffs, p, 0, reverse)
		}
		if job.Flags.Has(Scale) {
			acc *= e.cfg.scale
		}
		out[i] = acc
	}

	if job.Flags.Has(CopyBack) {
		writeBack(samples, out, mean)
	}
	return out, nil
}
