package sid

// registers.go implements the 29-byte register file's write dispatch and
// the data-bus decay model for reads of write-only addresses: a value
// written anywhere on the chip lingers on the bus and is returned by a read
// of any write-only register until busValueDecayCycles pass, after which
// reads fall back to zero. Grounded on original_source/src/sid/sid.cc's
// bus_value/bus_value_ttl handling and cross-checked against
// other_examples/beachviking-yet-another-sidplayer-go__sid.go's Read/Write.

type registerFile struct {
	busValue    uint8
	busValueTTL CycleCount
}

func (r *registerFile) age(delta CycleCount) {
	if r.busValueTTL > delta {
		r.busValueTTL -= delta
	} else {
		r.busValueTTL = 0
		r.busValue = 0
	}
}

func (r *registerFile) latch(v uint8) {
	r.busValue = v
	r.busValueTTL = busValueDecayCycles
}

// write dispatches a register write to the appropriate voice/filter field.
// addr is not masked here; Chip.Write drops addresses at or above RegCount
// before calling it (real hardware mirrors the register block every 32 bytes
// but the core need not model the mirroring itself -- the host's memory map
// decides what addr reaches here).
func (c *Chip) write(addr uint8, value uint8) {
	c.regs.latch(value)

	switch addr {
	case RegV1FreqLo:
		c.voices[0].wave.writeFreqLo(value)
	case RegV1FreqHi:
		c.voices[0].wave.writeFreqHi(value)
	case RegV1PWLo:
		c.voices[0].wave.writePWLo(value)
	case RegV1PWHi:
		c.voices[0].wave.writePWHi(value)
	case RegV1Ctrl:
		c.voices[0].writeControl(value)
	case RegV1AD:
		c.voices[0].env.writeAttackDecay(value)
	case RegV1SR:
		c.voices[0].env.writeSustainRelease(value)

	case RegV2FreqLo:
		c.voices[1].wave.writeFreqLo(value)
	case RegV2FreqHi:
		c.voices[1].wave.writeFreqHi(value)
	case RegV2PWLo:
		c.voices[1].wave.writePWLo(value)
	case RegV2PWHi:
		c.voices[1].wave.writePWHi(value)
	case RegV2Ctrl:
		c.voices[1].writeControl(value)
	case RegV2AD:
		c.voices[1].env.writeAttackDecay(value)
	case RegV2SR:
		c.voices[1].env.writeSustainRelease(value)

	case RegV3FreqLo:
		c.voices[2].wave.writeFreqLo(value)
	case RegV3FreqHi:
		c.voices[2].wave.writeFreqHi(value)
	case RegV3PWLo:
		c.voices[2].wave.writePWLo(value)
	case RegV3PWHi:
		c.voices[2].wave.writePWHi(value)
	case RegV3Ctrl:
		c.voices[2].writeControl(value)
	case RegV3AD:
		c.voices[2].env.writeAttackDecay(value)
	case RegV3SR:
		c.voices[2].env.writeSustainRelease(value)

	case RegFilterFcLo:
		c.filter.writeFcLo(value)
	case RegFilterFcHi:
		c.filter.writeFcHi(value)
	case RegFilterResFi:
		c.filter.writeResFilt(value)
	case RegModeVol:
		c.filter.writeModeVol(value)
		c.voices[2].muted = value&Mode3Off != 0
	}

	c.trace(addr, value)
}

// read dispatches a register read. Only potX/potY, OSC3, and ENV3 are truly
// readable on hardware; every other address returns whatever last sat on
// the data bus (subject to decay).
func (c *Chip) read(addr uint8) uint8 {
	switch addr {
	case RegPotX, RegPotY:
		return 0xff // no potentiometer wired up; reads as fully open
	case RegOsc3:
		return c.voices[2].wave.readOSC()
	case RegEnv3:
		return c.voices[2].env.readENV()
	default:
		return c.regs.busValue
	}
}
