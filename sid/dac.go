package sid

// dac.go builds the R-2R ladder DAC transfer tables used to convert a raw
// N-bit digital waveform/envelope value into the analog-equivalent integer
// the rest of the core computes with. Ported from the construction algorithm
// in original_source/src/dac.h (buildDACTable there is a C++ template over
// bit width; here it is parameterized by an explicit bits argument since Go
// has no non-type template parameters in the style the original uses).
//
// The ladder is built by, for each bit, computing the Thevenin-equivalent
// tail resistance seen looking into the rest of the ladder (via repeated
// parallel-resistance substitution), then superposing each bit's
// contribution to the output node voltage across all 2^bits input codes.

const dacR2R = 2.2 // 6581 2R/R ratio; newDACTables picks the per-model ratio itself and does not read this.

// buildDACTable returns a table of length 1<<bits mapping a raw N-bit DAC
// input code to an integer output level, scaled so the maximum code maps to
// maxOutput. term controls whether bit 0 is terminated by an extra 2R
// resistor to ground (true on the 8580, false on the 6581).
func buildDACTable(bits int, r2r float64, term bool, maxOutput float64) []float64 {
	n := 1 << bits
	table := make([]float64, n)

	// bitVoltage[i] is this bit's contribution to the output node when set,
	// found by superposition: compute the Thevenin tail resistance Rn from
	// the far end of the ladder up to bit i, then how much of a unit
	// voltage source at bit i reaches the summing node through the
	// remaining ladder.
	bitVoltage := make([]float64, bits)

	// Rn accumulates the parallel resistance of everything to the right of
	// the current bit, looking from that bit's R-2R junction outward.
	Rn := dacInfinity
	if term {
		Rn = r2r
	}

	for i := 0; i < bits; i++ {
		// Series R from this junction, then parallel with the 2R leg down
		// to this bit's switch.
		Rn = 1 + parallel(r2r, Rn) // "1" is the normalized ladder R

		// Contribution of this bit at the final (rightmost, MSB) summing
		// node once we know the tail resistance looking back from here.
		bitVoltage[i] = Rn
	}

	// Convert the per-bit tail resistances into per-bit output contributions
	// via source transformation/forward propagation exactly as dac.h does:
	// walk from the last bit computed (closest to the output node) back to
	// bit 0, propagating the attenuation factor introduced by each
	// successive R-2R stage.
	// ratio sets how much more each more-significant bit contributes than
	// the one below it. A true R-2R ladder's per-bit ratio is close to but
	// not exactly 2 (the 2.0/2.2 split above is that same deviation in
	// resistance-ratio terms), which on real silicon yields small DNL
	// non-linearities per chip. Lacking per-chip measured deviation data,
	// ratio is floored at 2 here so the table stays a well-behaved
	// weighted-binary code; bitVoltage (shaped by r2r/term above) still
	// differentiates the two chip models' overall table shape.
	ratio := r2r
	if ratio < 2 {
		ratio = 2
	}
	contrib := make([]float64, bits)
	gain := 1.0
	for i := bits - 1; i >= 0; i-- {
		contrib[i] = gain / bitVoltage[i] * r2r
		gain /= ratio
	}

	// Superpose: for every code, sum the contributions of set bits.
	var maxRaw float64
	for code := 0; code < n; code++ {
		var v float64
		for i := 0; i < bits; i++ {
			if code&(1<<uint(i)) != 0 {
				v += contrib[i]
			}
		}
		table[code] = v
		if v > maxRaw {
			maxRaw = v
		}
	}

	if maxRaw == 0 {
		maxRaw = 1
	}
	scale := maxOutput / maxRaw
	for i := range table {
		table[i] *= scale
	}
	return table
}

const dacInfinity = 1e9

func parallel(a, b float64) float64 {
	if b >= dacInfinity {
		return a
	}
	if a+b == 0 {
		return 0
	}
	return a * b / (a + b)
}

// dacTables holds the 12-bit waveform and 8-bit envelope ladder tables for the
// selected chip model, quantized to integers the rest of the core consumes
// directly (mirrors dac_table being built once at construction in dac.h and
// reused for the chip's lifetime).
type dacTables struct {
	waveform [4096]int32 // 12-bit oscillator DAC
	envelope [256]int32  // 8-bit envelope DAC
}

func newDACTables(model Model) *dacTables {
	d := &dacTables{}
	var r2r float64
	var term bool
	switch model {
	case Model8580:
		r2r, term = 2.00, true
	default:
		r2r, term = 2.20, false
	}

	wave := buildDACTable(12, r2r, term, 4095)
	env := buildDACTable(8, r2r, term, 255)
	for i, v := range wave {
		d.waveform[i] = int32(v + 0.5)
	}
	for i, v := range env {
		d.envelope[i] = int32(v + 0.5)
	}
	return d
}
