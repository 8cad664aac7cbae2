// Package xcorr provides a flag-configurable discrete correlation engine for
// complete acquisition buffers.
//
// [Correlate] slides a reference vector of M coefficients over L samples and
// returns one value per window position. The engine works on narrow unsigned
// integer samples (zero-extended, as delivered by an ADC) and on real samples;
// coefficients and results are always float64.
//
// # Job configuration
//
// A [Job] combines four independent flags with a decimation factor and a DC
// offset:
//
//   - [Wrap]: treat the samples as cyclic and produce L results (circular
//     correlation). Without it only windows that fit entirely inside the
//     buffer are evaluated, giving max(0, L-M+1) results.
//   - [Scale]: multiply every result by the value found in output[0] before
//     the call.
//   - [Reverse]: apply coefficients in natural order. By default the last
//     coefficient multiplies the newest sample of each window, so a reference
//     stored oldest-first correlates against the signal.
//   - [CopyBack]: after the run, overwrite the samples with the results plus
//     the DC reference, then fill the remainder of the buffer with the DC
//     reference.
//
// Decimation D evaluates every D-th window only, so decimated result i equals
// undecimated result i*D; [Job.Position] maps a result back to the newest
// sample of its window. Offset < 0 subtracts the mean of the samples;
// Offset >= 0 subtracts Offset itself, such as a known ADC mid-point.
//
// # Usage
//
//	job := xcorr.Job{InputLen: len(buf), CoeffLen: len(ref), Flags: xcorr.Scale, Offset: 2048}
//	out := make([]float64, len(buf))
//	out[0] = 0.001
//	n, err := xcorr.Correlate(buf, out, ref, job)
//	d, err := xcorr.Detect(out[:n])
//
// For repeated runs against the same reference, an [Engine] owns the
// coefficients, the output buffer and its scratch space.
//
// Worst-case work is O(L*M/D) per call; callers with a real-time budget size
// L and M accordingly.
package xcorr
