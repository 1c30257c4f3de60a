package sid

import "testing"

func TestResamplerRejectsZeroRate(t *testing.T) {
	if _, err := newResampler(SampleLinear, 0, 44100); err == nil {
		t.Fatal("expected error for zero clock frequency")
	}
	if _, err := newResampler(SampleLinear, ClockPAL, 0); err == nil {
		t.Fatal("expected error for zero sample frequency")
	}
}

func TestResamplerNearestEmitsAtExpectedRate(t *testing.T) {
	r, err := newResampler(SampleNearest, 1000, 100) // 10 cycles per sample
	if err != nil {
		t.Fatalf("newResampler: %v", err)
	}
	var emitted int
	var s int16
	for i := 0; i < 1000; i++ {
		if r.clockDirect(int32(i%100), 1, &s) {
			emitted++
		}
	}
	if emitted < 90 || emitted > 110 {
		t.Fatalf("expected roughly 100 samples from 1000 cycles at 10:1, got %d", emitted)
	}
}

func TestResamplerLinearInterpolatesBetweenSamples(t *testing.T) {
	r, err := newResampler(SampleLinear, 2, 1) // 2 cycles per sample
	if err != nil {
		t.Fatalf("newResampler: %v", err)
	}
	var s int16
	r.clockDirect(0, 1, &s)
	r.clockDirect(1000, 1, &s)
	if s <= 0 {
		t.Fatalf("expected nonzero interpolated sample, got %d", s)
	}
}

func TestResamplerBlipBufferAllocated(t *testing.T) {
	r, err := newResampler(SampleSinc, ClockPAL, 44100)
	if err != nil {
		t.Fatalf("newResampler: %v", err)
	}
	if r.bb == nil {
		t.Fatal("expected blip buffer to be allocated for SINC method")
	}
}

func TestClampSample(t *testing.T) {
	if clampSample(1 << 20) != 32767 {
		t.Fatal("expected positive clamp to 32767")
	}
	if clampSample(-(1 << 20)) != -32768 {
		t.Fatal("expected negative clamp to -32768")
	}
}
