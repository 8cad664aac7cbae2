package xcorr

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ringdsp/internal/testutil"
)

func TestDetect(t *testing.T) {
	d, err := Detect([]float64{1, 4, 9, 2, 9, 3})
	if err != nil {
		t.Fatal(err)
	}
	if d.Index != 2 || d.Peak != 9 || d.Next != 4 {
		t.Fatalf("Detect = %+v, want index 2 peak 9 next 4", d)
	}
	r, err := d.Ratio()
	if err != nil || r != 2.25 {
		t.Fatalf("Ratio = %v, %v, want 2.25", r, err)
	}
}

func TestDetectEmpty(t *testing.T) {
	if _, err := Detect(nil); !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("error = %v, want ErrEmptyOutput", err)
	}
}

func TestDetectPathological(t *testing.T) {
	for _, out := range [][]float64{{5, 5, 5}, {3, 0, -1}, {-2, -4}} {
		d, err := Detect(out)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := d.Ratio(); !errors.Is(err, ErrPathological) {
			t.Fatalf("%v: Ratio error = %v, want ErrPathological", out, err)
		}
	}

	d, _ := Detect([]float64{5, 5})
	if !math.IsInf(d.Next, -1) {
		t.Fatalf("Next = %v, want -Inf", d.Next)
	}
}

func TestDetectBurstInNoise(t *testing.T) {
	const (
		n   = 1000
		mid = 2048
	)
	burst := testutil.PseudoRandomBurst
	noise := testutil.DeterministicNoise(2018, 800, n)

	samples := make([]uint16, n)
	for i, v := range noise {
		samples[i] = uint16(mid + v)
	}
	start := n - len(burst) - 20
	for j, s := range burst {
		samples[start+j] = uint16(float64(samples[start+j]) + 1000*s)
	}

	out := make([]float64, n)
	out[0] = 0.001
	cnt, err := Correlate(samples, out, burst, Job{
		InputLen: n, CoeffLen: len(burst), Flags: Scale, Offset: mid,
	})
	if err != nil {
		t.Fatal(err)
	}

	d, err := Detect(out[:cnt])
	if err != nil {
		t.Fatal(err)
	}
	// Result i covers the window ending at sample i+len(burst)-1.
	if want := start; d.Index != want {
		t.Fatalf("peak at %d, want %d", d.Index, want)
	}
	if r, err := d.Ratio(); err != nil || r <= 1 {
		t.Fatalf("Ratio = %v, %v, want > 1", r, err)
	}
}
