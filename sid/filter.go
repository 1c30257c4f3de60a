package sid

import "math"

// filter.go implements the SID's programmable two-pole state-variable
// filter: a per-cycle difference equation over Vhp/Vbp/Vlp state driven by
// w0(cutoff) and 1/Q(resonance), three selectable outputs mixed by the mode
// register, and (6581 only) a soft-clipping non-linearity. spec.md's §4.4
// difference equations are implemented directly; original_source did not
// include reSID's filter.cc/filter.h (the file retrieved in its place,
// vice/6581.cc, is VICE's integration glue and carries no cutoff/resonance
// table data -- confirmed by grep), so the w0/1-over-Q tables here are
// generated from a documented parametrized curve rather than ported
// verbatim. See DESIGN.md for the Open Question resolution.

const filterTableSize = 2048 // 11-bit cutoff register range

type filterTables struct {
	w0    [filterTableSize]float64 // rad/s, indexed by 11-bit cutoff value
	invQ  [16]float64              // indexed by 4-bit resonance value
}

func newFilterTables(model Model) *filterTables {
	t := &filterTables{}
	for i := 0; i < filterTableSize; i++ {
		var hz float64
		switch model {
		case Model8580:
			// Linear warm-up from ~30Hz to ~18kHz.
			hz = 30 + float64(i)*(18000-30)/float64(filterTableSize-1)
		default:
			// 6581: non-linear, steeper warm-up in the lower half of the
			// range, the characteristic "honk" the real chip's process
			// variation produces; modeled with a power curve rather than a
			// single real chip's measured table.
			hz = 30 + math.Pow(float64(i)/float64(filterTableSize-1), 1.35)*(12000-30)
		}
		t.w0[i] = 2 * math.Pi * hz
	}
	for i := 0; i < 16; i++ {
		// 1/Q falls from ~1.43 (Q~0.7, gentle) to ~0.18 (Q~5.5, near
		// self-oscillation) across the 4-bit resonance range.
		q := 0.7 + float64(i)*(5.5-0.7)/15
		t.invQ[i] = 1 / q
	}
	return t
}

type filter struct {
	model   Model
	enabled bool

	fc  uint16 // 11-bit
	res uint8  // 4-bit

	routeV1, routeV2, routeV3, routeExt bool
	lp, bp, hp                          bool
	volume                              uint8

	vhp, vbp, vlp float64

	tables *filterTables
}

func newFilter(model Model, tables *filterTables) *filter {
	return &filter{model: model, tables: tables}
}

func (f *filter) reset() {
	f.fc, f.res = 0, 0
	f.routeV1, f.routeV2, f.routeV3, f.routeExt = false, false, false, false
	f.lp, f.bp, f.hp = false, false, false
	f.volume = 0
	f.vhp, f.vbp, f.vlp = 0, 0, 0
}

func (f *filter) writeFcLo(v uint8) { f.fc = (f.fc & 0x7f8) | uint16(v&0x07) }
func (f *filter) writeFcHi(v uint8) { f.fc = (f.fc & 0x007) | uint16(v)<<3 }

func (f *filter) writeResFilt(v uint8) {
	f.res = v >> 4
	f.routeV1 = v&FilterV1 != 0
	f.routeV2 = v&FilterV2 != 0
	f.routeV3 = v&FilterV3 != 0
	f.routeExt = v&FilterExt != 0
}

func (f *filter) writeModeVol(v uint8) {
	f.volume = v & ModeVolMask
	f.lp = v&ModeLP != 0
	f.bp = v&ModeBP != 0
	f.hp = v&ModeHP != 0
}

// clock advances the filter state by delta cycles given the summed input of
// all routed voices (already DAC-scaled) plus external input. delta is
// bounded by the orchestrator to maxFilterCycles so that w0*dt stays small
// enough for this explicit-Euler integration to remain stable (spec.md
// §4.4).
func (f *filter) clock(input float64, delta CycleCount) {
	if f.model == Model6581 {
		input = clip6581(input)
	}

	w0 := f.tables.w0[f.fc]
	invQ := f.tables.invQ[f.res]
	dt := float64(delta) / 1e6

	f.vhp = input - f.vlp - invQ*f.vbp
	f.vbp += w0 * dt * f.vhp
	f.vlp += w0 * dt * f.vbp
}

// clip6581 applies the 6581's asymmetric soft-clipping distortion,
// grounded on the teacher's SID_6581_FILTER_THRESHOLD_POS/NEG/KNEE constants
// in sid_constants.go (an explicitly accepted approximation per spec.md's
// Open Question on the clipping model).
func clip6581(v float64) float64 {
	const posThresh = 0.85 * 32768
	const negThresh = -0.75 * 32768
	const knee = 2.0
	if v > posThresh {
		over := (v - posThresh) / knee
		return posThresh + knee*math.Tanh(over)
	}
	if v < negThresh {
		over := (negThresh - v) / knee
		return negThresh - knee*math.Tanh(over)
	}
	return v
}

// output mixes the selected LP/BP/HP taps, matching SID::output()'s
// mode-bit OR-mixing (any combination of modes may be active at once).
func (f *filter) output() float64 {
	var sum float64
	if f.lp {
		sum += f.vlp
	}
	if f.bp {
		sum += f.vbp
	}
	if f.hp {
		sum += f.vhp
	}
	return sum
}
