// constants.go - MOS 6581/8580 SID register addresses and chip constants.
// See registers.go for the I/O memory map implementation.

package sid

// Model selects which physical SID revision's parameters to emulate.
type Model int

const (
	Model6581 Model = iota // original SID: non-linear filter, DC-biased mixer
	Model8580              // revised SID: more linear filter, cleaner mixer
)

// Register offsets within the 29-byte SID I/O page ($D400-$D41C on a C64).
const (
	RegV1FreqLo = 0x00
	RegV1FreqHi = 0x01
	RegV1PWLo   = 0x02
	RegV1PWHi   = 0x03
	RegV1Ctrl   = 0x04
	RegV1AD     = 0x05
	RegV1SR     = 0x06

	RegV2FreqLo = 0x07
	RegV2FreqHi = 0x08
	RegV2PWLo   = 0x09
	RegV2PWHi   = 0x0a
	RegV2Ctrl   = 0x0b
	RegV2AD     = 0x0c
	RegV2SR     = 0x0d

	RegV3FreqLo = 0x0e
	RegV3FreqHi = 0x0f
	RegV3PWLo   = 0x10
	RegV3PWHi   = 0x11
	RegV3Ctrl   = 0x12
	RegV3AD     = 0x13
	RegV3SR     = 0x14

	RegFilterFcLo  = 0x15
	RegFilterFcHi  = 0x16
	RegFilterResFi = 0x17
	RegModeVol     = 0x18

	RegPotX = 0x19
	RegPotY = 0x1a
	RegOsc3 = 0x1b
	RegEnv3 = 0x1c

	RegCount = 0x1d
)

// Voice control register bits.
const (
	CtrlGate     = 0x01
	CtrlSync     = 0x02
	CtrlRingMod  = 0x04
	CtrlTest     = 0x08
	CtrlTriangle = 0x10
	CtrlSawtooth = 0x20
	CtrlPulse    = 0x40
	CtrlNoise    = 0x80
)

// Filter routing/resonance register bits.
const (
	FilterV1  = 0x01
	FilterV2  = 0x02
	FilterV3  = 0x04
	FilterExt = 0x08
	FilterRes = 0xf0
)

// Mode/volume register bits.
const (
	ModeVolMask = 0x0f
	ModeLP      = 0x10
	ModeBP      = 0x20
	ModeHP      = 0x40
	Mode3Off    = 0x80
)

// Clock frequencies for the two common C64 video standards, in Hz.
const (
	ClockPAL  = 985248
	ClockNTSC = 1022727
)

// busValueDecayCycles is how long a byte written to a write-only register
// lingers on the data bus before a read of a write-only address falls back
// to zero, per spec.md's "~10,000 cycles" figure.
const busValueDecayCycles = 10000

// maxFilterCycles bounds how many cycles the filter (and, transitively, the
// oscillator sub-stepping loop) advances before re-checking sync/ring-mod
// and bus decay, mirroring reSID's SID::clock() outer loop.
const maxFilterCycles = 8

// CycleCount is a count of master clock cycles.
type CycleCount = uint32
