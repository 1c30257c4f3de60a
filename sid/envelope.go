package sid

// envelope.go implements one voice's ADSR envelope generator: a 15-bit rate
// counter clocked every cycle, an 8-bit envelope counter that free-runs
// 0->255 on attack and decays through a 5-step piecewise-exponential curve
// otherwise, and the sustain comparator. Ported from
// original_source/src/sid/envelope.cc/.h, including the rate-counter "delay
// bug": writing a shorter period while the counter's current value exceeds
// that period makes the counter wrap through 0x8000 before it next matches.

type envelopeState int

const (
	envAttack envelopeState = iota
	envDecaySustain
	envRelease
)

// ratePeriod maps a 4-bit attack/decay/release register value to the number
// of clock cycles between rate-counter matches (envelope.cc's
// frequency_divider_number).
var ratePeriod = [16]uint16{
	9, 32, 63, 95, 149, 220, 267, 313,
	392, 977, 1954, 3126, 3906, 11720, 19532, 31252,
}

// sustainLevel expands the 4-bit sustain register value to an 8-bit level.
var sustainLevel = [16]uint8{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
}

// expPeriodThresholds/expPeriodMultipliers give the 5-step piecewise
// exponential decay divider: an envelope value uses multiplier[i] rate-counter
// matches per envelope-counter step for the first i with value >= threshold[i].
var expPeriodThresholds = [6]uint8{0x5d, 0x36, 0x1a, 0x0e, 0x06, 0x00}
var expPeriodMultipliers = [6]uint8{1, 2, 4, 8, 16, 30}

type envelope struct {
	attack  uint8
	decay   uint8
	sustain uint8
	release uint8

	gate bool
	state envelopeState

	rateCounter uint16
	envCounter  uint8
	expCounter  uint8 // counts rate-counter matches up to expMultiplier() between decrements

	holdZero bool // true once release has reached 0 and is holding
}

func (e *envelope) reset() {
	*e = envelope{}
	e.state = envRelease
	e.holdZero = true
}

func (e *envelope) writeAttackDecay(v uint8) {
	e.attack = v >> 4
	e.decay = v & 0x0f
}

func (e *envelope) writeSustainRelease(v uint8) {
	e.sustain = v >> 4
	e.release = v & 0x0f
}

// writeControl handles the gate bit transition: 0->1 triggers ATTACK, 1->0
// triggers RELEASE. Per envelope.cc, the rate counter is not reset on a gate
// transition -- only the state (and with it the target rate period used to
// interpret the running counter) changes, and the exponential counter is
// zeroed.
func (e *envelope) writeControl(v uint8) {
	newGate := v&CtrlGate != 0
	if !e.gate && newGate {
		e.state = envAttack
		e.holdZero = false
		e.expCounter = 0
	} else if e.gate && !newGate {
		e.state = envRelease
		e.expCounter = 0
	}
	e.gate = newGate
}

func (e *envelope) currentRatePeriod() uint16 {
	switch e.state {
	case envAttack:
		return ratePeriod[e.attack]
	case envDecaySustain:
		return ratePeriod[e.decay]
	default:
		return ratePeriod[e.release]
	}
}

func expMultiplier(level uint8) uint8 {
	for i, t := range expPeriodThresholds {
		if level >= t {
			return expPeriodMultipliers[i]
		}
	}
	return expPeriodMultipliers[len(expPeriodMultipliers)-1]
}

// clock advances the envelope by delta cycles.
func (e *envelope) clock(delta CycleCount) {
	for delta > 0 {
		period := e.currentRatePeriod()
		step := e.stepsUntilMatch(period)
		if CycleCount(step) > delta {
			e.rateCounter = (e.rateCounter + uint16(delta)) & 0x7fff
			return
		}
		delta -= CycleCount(step)
		e.rateCounter = 0
		e.advanceOneStep(period)
	}
}

// stepsUntilMatch returns the number of cycles until rateCounter next equals
// period, reproducing the ADSR delay bug: if a newly-selected, shorter
// period is already below the running counter value, the counter must wrap
// through 0x8000 before it matches again instead of matching immediately.
func (e *envelope) stepsUntilMatch(period uint16) uint32 {
	if e.rateCounter < period {
		return uint32(period) - uint32(e.rateCounter)
	}
	return uint32(0x8000) + uint32(period) - uint32(e.rateCounter)
}

func (e *envelope) advanceOneStep(period uint16) {
	switch e.state {
	case envAttack:
		if e.envCounter == 0xff {
			e.state = envDecaySustain
			return
		}
		// Attack always steps on every rate-counter match regardless of
		// the exponential divider.
		e.envCounter++
		if e.envCounter == 0xff {
			e.state = envDecaySustain
		}
	case envDecaySustain:
		if e.envCounter <= sustainLevel[e.sustain] {
			return
		}
		e.expCounter++
		if e.expCounter < expMultiplier(e.envCounter) {
			return
		}
		e.expCounter = 0
		if e.envCounter > 0 {
			e.envCounter--
		}
	case envRelease:
		if e.holdZero {
			return
		}
		e.expCounter++
		if e.expCounter < expMultiplier(e.envCounter) {
			return
		}
		e.expCounter = 0
		if e.envCounter == 0 {
			e.holdZero = true
			return
		}
		e.envCounter--
	}
}

// output returns the current 8-bit envelope level.
func (e *envelope) output() uint8 { return e.envCounter }

// readENV returns the value exposed through the ENV3 register.
func (e *envelope) readENV() uint8 { return e.envCounter }
