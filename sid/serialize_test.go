package sid

import "testing"

func TestSerializeRoundTrip(t *testing.T) {
	c := newTestChip(t)
	c.Write(RegV1FreqLo, 0x34)
	c.Write(RegV1FreqHi, 0x12)
	c.Write(RegV1Ctrl, CtrlGate|CtrlSawtooth)
	c.Write(RegFilterFcHi, 0x55)
	c.Write(RegModeVol, ModeLP|0x0a)
	c.Clock(5000)

	buf := make([]byte, c.SerializeSize())
	if err := c.Serialize(buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restored := newTestChip(t)
	if err := restored.Deserialize(buf); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if restored.voices[0].wave.freq != c.voices[0].wave.freq {
		t.Fatalf("frequency mismatch after round trip: %#x vs %#x",
			restored.voices[0].wave.freq, c.voices[0].wave.freq)
	}
	if restored.voices[0].wave.accumulator != c.voices[0].wave.accumulator {
		t.Fatal("accumulator mismatch after round trip")
	}
	if restored.filter.fc != c.filter.fc {
		t.Fatal("filter cutoff mismatch after round trip")
	}
	if restored.filter.volume != c.filter.volume {
		t.Fatal("filter volume mismatch after round trip")
	}
}

func TestSerializeRejectsShortBuffer(t *testing.T) {
	c := newTestChip(t)
	buf := make([]byte, 4)
	if err := c.Serialize(buf); err == nil {
		t.Fatal("expected error for undersized buffer")
	}
}

func TestDeserializeRejectsWrongVersion(t *testing.T) {
	c := newTestChip(t)
	buf := make([]byte, c.SerializeSize())
	c.Serialize(buf)
	buf[0] = 0xff
	if err := c.Deserialize(buf); err == nil {
		t.Fatal("expected version mismatch error")
	}
}
