package sid

import "math"

// extfilter.go implements the SID's passive external RC filter stage: a
// ~16kHz low-pass in series with a ~16Hz high-pass sitting between the chip
// and the C64's audio output jack. Ported from the coefficient derivation
// and clock() loop in original_source/src/extfilt.h.

const (
	extW0LP      = 1.0 / (10e3 * 1e-9) // 1/(R*C), low-pass corner
	extW0HP      = 1.0 / (1e3 * 10e-6) // 1/(R*C), high-pass corner
	extSamplePeriod = 1.0 / 1e6        // one SID clock cycle in seconds
	extMaxCycles = 10
)

type extFilterCoeffs struct {
	shiftLP, shiftHP uint
	mulLP, mulHP     uint32
}

func deriveExtCoeffs(deltaT float64) extFilterCoeffs {
	shiftLP := uint(math.Ceil(math.Log2(15 / (1 - math.Exp(-extW0LP*deltaT*extSamplePeriod)))))
	mulLP := uint32((1-math.Exp(-extW0LP*deltaT*extSamplePeriod))*float64(uint64(1)<<shiftLP) + 0.5)
	shiftHP := uint(math.Ceil(math.Log2(15 / (1 - math.Exp(-extW0HP*deltaT*extSamplePeriod)))))
	mulHP := uint32((1-math.Exp(-extW0HP*deltaT*extSamplePeriod))*float64(uint64(1)<<shiftHP) + 0.5)
	return extFilterCoeffs{shiftLP: shiftLP, mulLP: mulLP, shiftHP: shiftHP, mulHP: mulHP}
}

var (
	extCoeffsOneCycle   = deriveExtCoeffs(1)
	extCoeffsMaxCycles  = deriveExtCoeffs(extMaxCycles)
)

type externalFilter struct {
	vlp, vhp int32
	enabled  bool
}

func (f *externalFilter) reset(vi int32) {
	f.vlp = vi << 11
	f.vhp = 0
	f.enabled = true
}

func (f *externalFilter) setEnabled(on bool) { f.enabled = on }

func (f *externalFilter) clockOne(vi int32) {
	if !f.enabled {
		f.vlp = vi << 11
		f.vhp = 0
		return
	}
	vlpDelta := int64(extCoeffsOneCycle.mulLP) * (int64(vi)<<11 - int64(f.vlp)) >> extCoeffsOneCycle.shiftLP
	vhpDelta := int64(extCoeffsOneCycle.mulHP) * (int64(f.vlp) - int64(f.vhp)) >> extCoeffsOneCycle.shiftHP
	f.vhp += int32(vhpDelta)
	f.vlp += int32(vlpDelta)
}

// clock advances the filter by delta cycles (delta may be 0), batching full
// extMaxCycles chunks with the max-cycle coefficients and falling back to
// per-cycle stepping for the remainder, same as extfilt.h's clock(delta_t, vi).
func (f *externalFilter) clock(delta CycleCount, vi int32) {
	if !f.enabled {
		f.vlp = vi << 11
		f.vhp = 0
		return
	}
	for delta >= extMaxCycles {
		vlpDelta := int64(extCoeffsMaxCycles.mulLP) * (int64(vi)<<11 - int64(f.vlp)) >> extCoeffsMaxCycles.shiftLP
		vhpDelta := int64(extCoeffsMaxCycles.mulHP) * (int64(f.vlp) - int64(f.vhp)) >> extCoeffsMaxCycles.shiftHP
		f.vhp += int32(vhpDelta)
		f.vlp += int32(vlpDelta)
		delta -= extMaxCycles
	}
	for ; delta > 0; delta-- {
		f.clockOne(vi)
	}
}

// output returns the filtered sample, right-shifted back out of the
// 11-bit fixed-point headroom clock() accumulates in.
func (f *externalFilter) output() int32 {
	return (f.vlp - f.vhp) >> 11
}
