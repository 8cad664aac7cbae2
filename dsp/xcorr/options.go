package xcorr

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	flags    Flag
	decimate int
	offset   float64
	scale    float64
}

func defaultEngineConfig() engineConfig {
	return engineConfig{decimate: 1, offset: -1, scale: 1}
}

// WithWrap enables circular correlation.
func WithWrap() Option {
	return func(cfg *engineConfig) { cfg.flags |= Wrap }
}

// WithReverse applies the coefficients in natural order.
func WithReverse() Option {
	return func(cfg *engineConfig) { cfg.flags |= Reverse }
}

// WithCopyBack writes the mean-restored results back into the samples.
func WithCopyBack() Option {
	return func(cfg *engineConfig) { cfg.flags |= CopyBack }
}

// WithDecimation evaluates every d-th window. Values below 1 are ignored.
func WithDecimation(d int) Option {
	return func(cfg *engineConfig) {
		if d >= 1 {
			cfg.decimate = d
		}
	}
}

// WithOffset subtracts v from every sample. A negative v selects the sample
// mean, which is the default.
func WithOffset(v float64) Option {
	return func(cfg *engineConfig) { cfg.offset = v }
}

// WithScale multiplies every result by s.
func WithScale(s float64) Option {
	return func(cfg *engineConfig) {
		cfg.flags |= Scale
		cfg.scale = s
	}
}
