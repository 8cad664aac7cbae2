// Command filtwav streams a mono PCM WAV file through a configured filter.
//
// Usage:
//
//	filtwav [flags]
//
// The filter comes from a YAML file (see -mkconf). fir and average filters
// process the file one sample at a time, as an acquisition loop would.
// realfir filters the whole file as one float block and logs its gain.
// correlate runs the correlation engine over consecutive windows, logs the
// peak of each window and, with copy_back, writes the reconstructed signal.
//
// Examples:
//
//	filtwav -mkconf > filter.yml
//	filtwav -config filter.yml -in noisy.wav -out smooth.wav
//	filtwav -config burst.yml -in capture.wav -window 1000
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	yml "gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-ringdsp/config"
	"github.com/cwbudde/algo-ringdsp/dsp/core"
	"github.com/cwbudde/algo-ringdsp/dsp/xcorr"
)

// midPoint biases signed 16-bit PCM into the unsigned range.
const midPoint = 1 << 15

func main() {
	log.SetFlags(0)
	log.SetPrefix("filtwav: ")

	var (
		confPath = flag.String("config", "filter.yml", "YAML filter configuration")
		inPath   = flag.String("in", "", "input WAV file (mono PCM)")
		outPath  = flag.String("out", "", "output WAV file")
		window   = flag.Int("window", 0, "correlation window in samples (0 = whole file)")
		mkconf   = flag.Bool("mkconf", false, "print the default configuration and exit")
	)
	flag.Parse()

	if *mkconf {
		b, err := yml.Marshal(config.Default())
		if err != nil {
			log.Fatalf("encoding default configuration: %v", err)
		}
		os.Stdout.Write(b)
		return
	}

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*confPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, *inPath, *outPath, *window); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, inPath, outPath string, window int) error {
	buf, err := readWAV(inPath)
	if err != nil {
		return err
	}
	log.Printf("read %d samples at %d Hz, %d bit", len(buf.Data), buf.Format.SampleRate, buf.SourceBitDepth)

	switch cfg.Kind {
	case config.KindCorrelate:
		written, err := correlateWindows(cfg, buf.Data, window)
		if err != nil {
			return err
		}
		if !written {
			if outPath != "" {
				log.Printf("correlate without copy_back leaves the samples unchanged, not writing %s", outPath)
			}
			return nil
		}
	case config.KindRealFIR:
		if err := filterReal(cfg, buf.Data, buf.Format.SampleRate); err != nil {
			return err
		}
	default:
		if err := filterStream(cfg, buf.Data); err != nil {
			return err
		}
	}

	if outPath == "" {
		return nil
	}
	return writeWAV(outPath, buf)
}

// filterStream replaces every sample with the streaming filter output.
func filterStream(cfg config.Config, data []int) error {
	var update func(int32) int32
	switch cfg.Kind {
	case config.KindFIR:
		f, err := config.BuildFIR(cfg)
		if err != nil {
			return err
		}
		update = f.Update
	case config.KindAverage:
		f, err := config.BuildAverage[int32](cfg)
		if err != nil {
			return err
		}
		update = f.Update
	default:
		return fmt.Errorf("%w: %q is not a streaming filter", core.ErrConfiguration, cfg.Kind)
	}

	for i, x := range data {
		y := update(int32(x))
		data[i] = int(core.Clamp(float64(y), math.MinInt16, math.MaxInt16))
	}
	return nil
}

// filterReal runs data through the float FIR as one block and logs the gain
// at DC and at Nyquist.
func filterReal(cfg config.Config, data []int, sampleRate int) error {
	f, err := config.BuildRealFIR(cfg)
	if err != nil {
		return err
	}
	if sampleRate > 0 {
		rate := float64(sampleRate)
		log.Printf("realfir: %d taps, %.1f dB at DC, %.1f dB at %.0f Hz",
			f.Order()+1, f.MagnitudeDB(0, rate), f.MagnitudeDB(rate/2, rate), rate/2)
	}

	src := make([]float64, len(data))
	for i, x := range data {
		src[i] = float64(x)
	}
	dst := make([]float64, len(src))
	f.ProcessBlockTo(dst, src)
	for i, y := range dst {
		data[i] = int(core.Clamp(math.Round(y), math.MinInt16, math.MaxInt16))
	}
	return nil
}

// correlateWindows correlates consecutive windows of data against the
// configured reference. Samples are shifted to unsigned around midPoint, the
// way an ADC delivers them. A short final window is correlated on its own.
// It reports whether the samples were rewritten.
func correlateWindows(cfg config.Config, data []int, window int) (bool, error) {
	if window <= 0 || window > len(data) {
		window = len(data)
	}

	e, err := config.BuildEngine[uint16](cfg, window)
	if err != nil {
		return false, err
	}

	buf := make([]uint16, window)
	for start := 0; start < len(data); start += window {
		samples := buf[:min(window, len(data)-start)]
		for i := range samples {
			samples[i] = uint16(data[start+i] + midPoint)
		}

		out, err := e.Process(samples)
		if err != nil {
			return false, err
		}
		report(start, out, e.Job(len(samples)))

		if cfg.Correlate.CopyBack {
			for i, s := range samples {
				data[start+i] = int(s) - midPoint
			}
		}
	}
	return cfg.Correlate.CopyBack, nil
}

func report(start int, out []float64, job xcorr.Job) {
	d, err := xcorr.Detect(out)
	if err != nil {
		log.Printf("window @%d: no results", start)
		return
	}
	end := start + job.Position(d.Index)
	ratio, err := d.Ratio()
	if errors.Is(err, xcorr.ErrPathological) {
		log.Printf("window @%d: peak %.1f ending at sample %d, no distinct runner-up", start, d.Peak, end)
		return
	}
	log.Printf("window @%d: peak %.1f ending at sample %d, next %.1f, detection ratio %.2f",
		start, d.Peak, end, d.Next, ratio)
}

func readWAV(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}
	if d.NumChans != 1 || d.BitDepth != 16 {
		return nil, fmt.Errorf("%s: %d channels at %d bit, only 16-bit mono is supported",
			path, d.NumChans, d.BitDepth)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: reading PCM: %w", path, err)
	}
	buf.SourceBitDepth = int(d.BitDepth)
	return buf, nil
}

func writeWAV(path string, buf *audio.IntBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%s: writing PCM: %w", path, err)
	}
	return enc.Close()
}
