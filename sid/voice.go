package sid

// voice.go couples one oscillator and one envelope generator, and mixes
// their DAC outputs into a single signed sample contribution the way
// original_source/src/sid/sid.cc's SID::output() combines voice[i].wave and
// voice[i].envelope before summing.

type voice struct {
	wave wave
	env  envelope

	muted bool // voice 3 can be disconnected from the mix via Mode3Off
}

func (v *voice) reset() {
	v.wave.reset()
	v.env.reset()
	v.muted = false
}

func (v *voice) writeControl(value uint8) {
	v.wave.writeControl(value)
	v.env.writeControl(value)
}

// output returns the voice's contribution before mixing: the 12-bit waveform
// value and the 8-bit envelope level, each passed through its DAC table,
// multiplied and shifted right by 8, as sid.cc multiplies wave output by
// envelope output before summing voices.
func (v *voice) output(dac *dacTables) int32 {
	wv := dac.waveform[v.wave.output()]
	env := dac.envelope[v.env.output()]
	return (wv * env) >> 8
}
