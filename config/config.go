// Package config loads filter configurations from YAML files and builds the
// matching filters and correlation jobs.
//
// Values missing from a file fall back to [Default]. Validation failures wrap
// core.ErrConfiguration.
package config

import (
	"fmt"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"

	"github.com/cwbudde/algo-ringdsp/dsp/core"
	"github.com/cwbudde/algo-ringdsp/dsp/filter/average"
	"github.com/cwbudde/algo-ringdsp/dsp/filter/fir"
	"github.com/cwbudde/algo-ringdsp/dsp/xcorr"
)

// Filter kinds.
const (
	KindFIR       = "fir"
	KindRealFIR   = "realfir"
	KindAverage   = "average"
	KindCorrelate = "correlate"
)

// Config selects and parameterises one filter.
//
// Capacity is the window length. For fir it may be left at 0 to take the
// coefficient count. realfir ignores Capacity, Shift and Coefficients and
// runs Taps on the float path.
type Config struct {
	Kind         string      `koanf:"kind" yaml:"kind"`
	Capacity     int         `koanf:"capacity" yaml:"capacity"`
	Shift        int         `koanf:"shift" yaml:"shift"`
	Coefficients []int32     `koanf:"coefficients" yaml:"coefficients"`
	Taps         []float64   `koanf:"taps" yaml:"taps,omitempty"`
	Correlate    Correlation `koanf:"correlate" yaml:"correlate"`
}

// Correlation configures the correlation engine.
type Correlation struct {
	Wrap     bool `koanf:"wrap" yaml:"wrap"`
	Reverse  bool `koanf:"reverse" yaml:"reverse"`
	CopyBack bool `koanf:"copy_back" yaml:"copy_back"`

	// Scale multiplies every result; 0 leaves results unscaled.
	Scale    float64 `koanf:"scale" yaml:"scale"`
	Decimate int     `koanf:"decimate" yaml:"decimate"`

	// Offset < 0 subtracts the buffer mean.
	Offset    float64   `koanf:"offset" yaml:"offset"`
	Reference []float64 `koanf:"reference" yaml:"reference"`
}

// Default returns an 8-tap boxcar FIR in Q3 and a mean-removing, unscaled
// correlation setup without a reference.
func Default() Config {
	return Config{
		Kind:         KindFIR,
		Shift:        3,
		Coefficients: []int32{1, 1, 1, 1, 1, 1, 1, 1},
		Correlate: Correlation{
			Decimate: 1,
			Offset:   -1,
		},
	}
}

// Load reads a YAML configuration file.
func Load(path string) (Config, error) {
	return load(file.Provider(path), path)
}

// Parse reads a YAML configuration from b.
func Parse(b []byte) (Config, error) {
	return load(rawbytes.Provider(b), "input")
}

func load(p koanf.Provider, name string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config: loading defaults: %w", err)
	}
	if err := k.Load(p, yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("config: loading %s: %w", name, err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", name, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the fields the selected kind depends on.
func (c Config) Validate() error {
	switch c.Kind {
	case KindFIR:
		if len(c.Coefficients) == 0 {
			return fmt.Errorf("config: %w: fir needs coefficients", core.ErrConfiguration)
		}
		if c.Capacity != 0 && c.Capacity != len(c.Coefficients) {
			return fmt.Errorf("config: %w: %d coefficients for capacity %d",
				core.ErrConfiguration, len(c.Coefficients), c.Capacity)
		}
	case KindRealFIR:
		if len(c.Taps) == 0 {
			return fmt.Errorf("config: %w: realfir needs taps", core.ErrConfiguration)
		}
	case KindAverage:
		if c.Capacity < 1 {
			return fmt.Errorf("config: %w: average capacity must be > 0: %d", core.ErrConfiguration, c.Capacity)
		}
	case KindCorrelate:
		if len(c.Correlate.Reference) == 0 {
			return fmt.Errorf("config: %w: correlate needs a reference", core.ErrConfiguration)
		}
	default:
		return fmt.Errorf("config: %w: unknown kind %q", core.ErrConfiguration, c.Kind)
	}
	return nil
}

// Flags returns the engine flags selected by the correlation settings.
func (c Correlation) Flags() xcorr.Flag {
	var f xcorr.Flag
	if c.Wrap {
		f |= xcorr.Wrap
	}
	if c.Scale != 0 {
		f |= xcorr.Scale
	}
	if c.Reverse {
		f |= xcorr.Reverse
	}
	if c.CopyBack {
		f |= xcorr.CopyBack
	}
	return f
}

// Job returns the correlation job for a buffer of inputLen samples.
func (c Config) Job(inputLen int) xcorr.Job {
	return xcorr.Job{
		InputLen: inputLen,
		CoeffLen: len(c.Correlate.Reference),
		Flags:    c.Correlate.Flags(),
		Decimate: c.Correlate.Decimate,
		Offset:   c.Correlate.Offset,
	}
}

// BuildFIR returns the fixed-point FIR described by c. A zero capacity
// takes the coefficient count.
func BuildFIR(c Config) (*fir.Fixed, error) {
	capacity := c.Capacity
	if capacity == 0 {
		capacity = len(c.Coefficients)
	}
	return fir.NewFixed(capacity, c.Coefficients, c.Shift)
}

// BuildRealFIR returns the float FIR described by c.Taps.
func BuildRealFIR(c Config) (*fir.Filter, error) {
	return fir.New(c.Taps)
}

// BuildAverage returns the moving-average filter described by c.
func BuildAverage[T core.Number](c Config) (*average.Filter[T], error) {
	return average.New[T](c.Capacity)
}

// BuildEngine returns a correlation engine for c whose output holds up to
// capacity results.
func BuildEngine[T xcorr.Sample](c Config, capacity int) (*xcorr.Engine[T], error) {
	cc := c.Correlate
	opts := []xcorr.Option{
		xcorr.WithDecimation(cc.Decimate),
		xcorr.WithOffset(cc.Offset),
	}
	if cc.Wrap {
		opts = append(opts, xcorr.WithWrap())
	}
	if cc.Reverse {
		opts = append(opts, xcorr.WithReverse())
	}
	if cc.CopyBack {
		opts = append(opts, xcorr.WithCopyBack())
	}
	if cc.Scale != 0 {
		opts = append(opts, xcorr.WithScale(cc.Scale))
	}
	return xcorr.NewEngine[T](cc.Reference, capacity, opts...)
}
