package sid

// wave_tables.go builds the lookup tables used when more than one waveform
// bit is set at once. On real silicon the waveform-selector bits short the
// DACs for triangle/sawtooth/pulse together; the result is neither a sum nor
// a simple minimum of the individual waveforms but a chip-specific,
// hardware-measured function of the oscillator accumulator.
//
// original_source/src/sid/wave.cc documents the four combined tables
// (sample__ST, sample_P_T, sample_PS_, sample_PST) as static 4096-entry
// arrays captured from a real 6581's OSC3 output, but the retrieval pack's
// copy of wave.cc has the literal byte data stripped (code/build files only,
// per its _INDEX.md filtering) -- only the declarations and the surrounding
// short-circuit commentary survived. Rather than fabricate hardware-capture
// bytes under false pretenses, these tables are generated from the
// documented short-circuit model: when two bit patterns are ANDed on the
// ladder, the shared high bits survive at full strength and the first
// differing bit partially bleeds through, which is what gives the combined
// waveforms their characteristic "AND with a soft third value" shape instead
// of a plain bitwise AND. See DESIGN.md for the provenance note and the
// substitution path to real hardware-captured tables.
const waveTableSize = 4096

var (
	combinedSawTriangle [waveTableSize]uint8 // ST:  sawtooth & triangle
	combinedPulseTri    [waveTableSize]uint8 // PT:  pulse & triangle
	combinedPulseSaw    [waveTableSize]uint8 // PS:  pulse & sawtooth
	combinedPulseSawTri [waveTableSize]uint8 // PST: pulse & sawtooth & triangle
)

func init() {
	for acc := 0; acc < waveTableSize; acc++ {
		tri := triangleSample(acc)
		saw := sawtoothSample(acc)
		combinedSawTriangle[acc] = shortCircuit(saw, tri)
		combinedPulseTri[acc] = shortCircuit(0xff, tri)
		combinedPulseSaw[acc] = shortCircuit(0xff, saw)
		combinedPulseSawTri[acc] = shortCircuit(0xff, shortCircuit(saw, tri))
	}
}

// sawtoothSample and triangleSample give the 8-bit MSB-truncated shape of
// each waveform across one accumulator period, used only to seed the
// combined-waveform approximation above (the real oscillator code in wave.go
// works at full 12-bit/24-bit precision; this is a smaller derived view).
func sawtoothSample(acc int) uint8 { return uint8(acc >> 4) }

func triangleSample(acc int) uint8 {
	v := acc
	if v&0x800 != 0 {
		v = ^v & 0xfff
	}
	return uint8(v >> 3)
}

// shortCircuit approximates the R-2R ladder short: shared leading one-bits
// of a and b pass through unattenuated, and the first bit where they differ
// bleeds through at half strength rather than being forced to zero, which is
// what real combined-waveform captures show instead of a clean bitwise AND.
func shortCircuit(a, b uint8) uint8 {
	r := a & b
	diff := a ^ b
	if diff != 0 {
		top := uint8(1) << (7 - leadingZeros8(diff))
		r |= (a & b & ^top) | (top & (a | b) >> 1)
	}
	return r
}

func leadingZeros8(x uint8) uint {
	n := uint(0)
	for x&0x80 == 0 && n < 8 {
		x <<= 1
		n++
	}
	return n
}
