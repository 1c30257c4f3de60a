package sid

import "testing"

func newTestWave() *wave {
	w := &wave{}
	w.reset()
	return w
}

func TestWaveAccumulatorStaysInRange(t *testing.T) {
	w := newTestWave()
	w.freq = 0xffff
	for i := 0; i < 1000; i++ {
		w.clock(100)
		if w.accumulator > accumulatorMask {
			t.Fatalf("accumulator %#x exceeds 24-bit range", w.accumulator)
		}
	}
}

func TestWaveZeroFrequencyNoAdvance(t *testing.T) {
	w := newTestWave()
	w.freq = 0
	w.accumulator = 0x123456
	before := w.accumulator
	w.clock(1000)
	if w.accumulator != before {
		t.Fatalf("accumulator moved with freq=0: %#x -> %#x", before, w.accumulator)
	}
}

func TestWaveTestBitResetsAccumulatorAndLFSR(t *testing.T) {
	w := newTestWave()
	w.freq = 1000
	w.clock(500)
	w.writeControl(CtrlTest)
	if w.accumulator != 0 {
		t.Fatalf("accumulator not zeroed by TEST: %#x", w.accumulator)
	}
	if w.shiftRegister != shiftRegReset {
		t.Fatalf("shift register not forced to reset pattern by TEST: %#x", w.shiftRegister)
	}
}

func TestWaveShiftRegisterRange(t *testing.T) {
	w := newTestWave()
	w.freq = 0xffff
	for i := 0; i < 10000; i++ {
		w.clock(50)
		if w.shiftRegister == 0 {
			t.Fatalf("shift register reached the all-zero lockup state")
		}
		if w.shiftRegister > shiftRegMask {
			t.Fatalf("shift register %#x exceeds 23-bit range", w.shiftRegister)
		}
	}
}

func TestWaveResetIdempotent(t *testing.T) {
	w := newTestWave()
	w.freq = 4000
	w.clock(12345)
	w.reset()
	first := *w
	w.reset()
	if *w != first {
		t.Fatalf("reset is not idempotent: %+v vs %+v", first, *w)
	}
}

func TestWaveNoWaveformSelectedIsZero(t *testing.T) {
	w := newTestWave()
	if got := w.output(); got != 0 {
		t.Fatalf("expected 0 with no waveform bits set, got %#x", got)
	}
}

func TestWaveNoiseCombinedWithOtherWaveformsIsZero(t *testing.T) {
	w := newTestWave()
	w.freq = 0x1111
	w.clock(5000)
	for _, wf := range []uint8{
		CtrlNoise | CtrlTriangle,
		CtrlNoise | CtrlSawtooth,
		CtrlNoise | CtrlPulse,
		CtrlNoise | CtrlSawtooth | CtrlTriangle,
		CtrlNoise | CtrlPulse | CtrlTriangle,
		CtrlNoise | CtrlPulse | CtrlSawtooth,
		CtrlNoise | CtrlPulse | CtrlSawtooth | CtrlTriangle,
	} {
		w.waveform = wf
		if got := w.output(); got != 0 {
			t.Fatalf("waveform %#x: expected 0 for noise-combined output, got %#x", wf, got)
		}
	}
}

func TestWaveSawtoothRamp(t *testing.T) {
	w := newTestWave()
	w.waveform = CtrlSawtooth
	w.freq = 1
	prev := w.outputSawtooth()
	rose := false
	for i := 0; i < 20; i++ {
		w.clock(1 << 12)
		cur := w.outputSawtooth()
		if cur > prev {
			rose = true
		}
		prev = cur
	}
	if !rose {
		t.Fatal("sawtooth output never increased")
	}
}

func TestWaveHardSync(t *testing.T) {
	master := newTestWave()
	slave := newTestWave()
	slave.syncSource = master
	slave.sync = true

	master.freq = 0xffff
	slave.freq = 1

	slave.accumulator = 0x654321
	for i := 0; i < 200 && !master.msbRising; i++ {
		master.clock(256)
	}
	slave.synchronize()
	if master.msbRising && slave.accumulator != 0 {
		t.Fatalf("hard sync did not reset slave accumulator: %#x", slave.accumulator)
	}
}

func TestWavePulseThreshold(t *testing.T) {
	w := newTestWave()
	w.waveform = CtrlPulse
	w.pw = 0x800 // half duty cycle
	w.accumulator = 0
	if w.outputPulse() != 0 {
		t.Fatalf("expected low pulse output below threshold")
	}
	w.accumulator = 0xfff000
	if w.outputPulse() != 0xfff {
		t.Fatalf("expected high pulse output above threshold")
	}
}
