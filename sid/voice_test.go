package sid

import "testing"

func TestVoiceOutputZeroWithZeroEnvelope(t *testing.T) {
	v := &voice{}
	v.reset()
	v.wave.waveform = CtrlSawtooth
	v.wave.freq = 1000
	v.wave.clock(5000)
	dac := newDACTables(Model8580)
	if got := v.output(dac); got != 0 {
		t.Fatalf("expected zero output with envelope at rest, got %d", got)
	}
}

func TestVoiceOutputScalesWithEnvelope(t *testing.T) {
	v := &voice{}
	v.reset()
	v.wave.waveform = CtrlSawtooth
	v.wave.freq = 1000
	v.wave.accumulator = 0xfff000
	dac := newDACTables(Model8580)

	v.env.envCounter = 0x80
	mid := v.output(dac)
	v.env.envCounter = 0xff
	full := v.output(dac)
	if full <= mid {
		t.Fatalf("expected higher envelope level to raise output: mid=%d full=%d", mid, full)
	}
}

func TestVoiceResetClearsMute(t *testing.T) {
	v := &voice{muted: true}
	v.reset()
	if v.muted {
		t.Fatal("reset should clear mute state")
	}
}
