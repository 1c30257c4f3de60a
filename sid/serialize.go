package sid

import (
	"encoding/binary"
	"math"
)

// serialize.go implements save-state snapshotting of all mutable chip
// state, grounded on the byte-layout pattern in
// user-none-go-chip-sn76489/serialize.go (encoding/binary little-endian
// packing with an explicit offset layout and a version byte). This is a
// supplemented feature beyond spec.md's literal text: any host embedding
// this core as part of an emulator will want rewind/save-state support the
// way the corpus's sibling sound-chip library already provides it.

const serializeVersion = 1

// perVoiceSize accounts for: accumulator(4) + shiftRegister(4) + freq(2) +
// pw(2) + waveform(1) + ringMod/sync/test/msbRising(1 packed) +
// env(attack/decay 1, sustain/release 1, gate/state 1, rateCounter 2,
// envCounter 1, expCounter 1) + holdZero/muted(1 packed) = 22 bytes.
const perVoiceSize = 22

// SerializeSize returns the number of bytes Serialize writes.
func (c *Chip) SerializeSize() int {
	return 1 + 3*perVoiceSize + filterSerializeSize + extFilterSerializeSize + registerSerializeSize
}

const filterSerializeSize = 2 + 1 + 1 + 1 + 8 + 8 + 8 + 1 // fc,res,routes+modes,volume,vhp,vbp,vlp,enabled
const extFilterSerializeSize = 4 + 4 + 1                  // vlp,vhp,enabled
const registerSerializeSize = 1 + 4                       // busValue, busValueTTL

// Serialize packs the oscillator, envelope, filter, external-filter and
// register-file state into buf, which must be at least SerializeSize() bytes.
// Resampler state and the external input sample are not included.
func (c *Chip) Serialize(buf []byte) error {
	if len(buf) < c.SerializeSize() {
		return errShortBuffer
	}
	off := 0
	buf[off] = serializeVersion
	off++

	for i := range c.voices {
		off += c.voices[i].serialize(buf[off:])
	}
	off += c.filter.serialize(buf[off:])
	off += c.ext.serialize(buf[off:])
	off += c.regs.serialize(buf[off:])
	return nil
}

// Deserialize restores chip state previously written by Serialize.
func (c *Chip) Deserialize(buf []byte) error {
	if len(buf) < 1 || buf[0] != serializeVersion {
		return errVersionMismatch
	}
	off := 1
	for i := range c.voices {
		off += c.voices[i].deserialize(buf[off:])
	}
	off += c.filter.deserialize(buf[off:])
	off += c.ext.deserialize(buf[off:])
	off += c.regs.deserialize(buf[off:])
	return nil
}

var (
	errShortBuffer     = serializeError("buffer too small")
	errVersionMismatch = serializeError("save-state version mismatch")
)

type serializeError string

func (e serializeError) Error() string { return string(e) }

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (v *voice) serialize(buf []byte) int {
	w := &v.wave
	binary.LittleEndian.PutUint32(buf[0:], w.accumulator)
	binary.LittleEndian.PutUint32(buf[4:], w.shiftRegister)
	binary.LittleEndian.PutUint16(buf[8:], w.freq)
	binary.LittleEndian.PutUint16(buf[10:], w.pw)
	buf[12] = w.waveform
	buf[13] = boolByte(w.msbRising)<<3 | boolByte(w.ringMod)<<2 | boolByte(w.sync)<<1 | boolByte(w.test)
	e := &v.env
	buf[14] = e.attack<<4 | e.decay
	buf[15] = e.sustain<<4 | e.release
	buf[16] = boolByte(e.gate)<<2 | uint8(e.state)&0x3
	binary.LittleEndian.PutUint16(buf[17:], e.rateCounter)
	buf[19] = e.envCounter
	buf[20] = e.expCounter
	buf[21] = boolByte(e.holdZero)<<1 | boolByte(v.muted)
	return perVoiceSize
}

func (v *voice) deserialize(buf []byte) int {
	w := &v.wave
	w.accumulator = binary.LittleEndian.Uint32(buf[0:])
	w.shiftRegister = binary.LittleEndian.Uint32(buf[4:])
	w.freq = binary.LittleEndian.Uint16(buf[8:])
	w.pw = binary.LittleEndian.Uint16(buf[10:])
	w.waveform = buf[12]
	w.ringMod = buf[13]&0x4 != 0
	w.sync = buf[13]&0x2 != 0
	w.test = buf[13]&0x1 != 0
	w.msbRising = buf[13]&0x8 != 0
	e := &v.env
	e.attack = buf[14] >> 4
	e.decay = buf[14] & 0x0f
	e.sustain = buf[15] >> 4
	e.release = buf[15] & 0x0f
	e.gate = buf[16]&0x4 != 0
	e.state = envelopeState(buf[16] & 0x3)
	e.rateCounter = binary.LittleEndian.Uint16(buf[17:])
	e.envCounter = buf[19]
	e.expCounter = buf[20]
	e.holdZero = buf[21]&0x2 != 0
	v.muted = buf[21]&0x1 != 0
	return perVoiceSize
}

func (f *filter) serialize(buf []byte) int {
	binary.LittleEndian.PutUint16(buf[0:], f.fc)
	buf[2] = f.res
	buf[3] = boolByte(f.routeV1) | boolByte(f.routeV2)<<1 | boolByte(f.routeV3)<<2 | boolByte(f.routeExt)<<3 |
		boolByte(f.lp)<<4 | boolByte(f.bp)<<5 | boolByte(f.hp)<<6
	buf[4] = f.volume
	putFloat64(buf[5:], f.vhp)
	putFloat64(buf[13:], f.vbp)
	putFloat64(buf[21:], f.vlp)
	buf[29] = boolByte(f.enabled)
	return filterSerializeSize
}

func (f *filter) deserialize(buf []byte) int {
	f.fc = binary.LittleEndian.Uint16(buf[0:])
	f.res = buf[2]
	bits := buf[3]
	f.routeV1 = bits&0x01 != 0
	f.routeV2 = bits&0x02 != 0
	f.routeV3 = bits&0x04 != 0
	f.routeExt = bits&0x08 != 0
	f.lp = bits&0x10 != 0
	f.bp = bits&0x20 != 0
	f.hp = bits&0x40 != 0
	f.volume = buf[4]
	f.vhp = getFloat64(buf[5:])
	f.vbp = getFloat64(buf[13:])
	f.vlp = getFloat64(buf[21:])
	f.enabled = buf[29] != 0
	return filterSerializeSize
}

func (e *externalFilter) serialize(buf []byte) int {
	binary.LittleEndian.PutUint32(buf[0:], uint32(e.vlp))
	binary.LittleEndian.PutUint32(buf[4:], uint32(e.vhp))
	buf[8] = boolByte(e.enabled)
	return extFilterSerializeSize
}

func (e *externalFilter) deserialize(buf []byte) int {
	e.vlp = int32(binary.LittleEndian.Uint32(buf[0:]))
	e.vhp = int32(binary.LittleEndian.Uint32(buf[4:]))
	e.enabled = buf[8] != 0
	return extFilterSerializeSize
}

func (r *registerFile) serialize(buf []byte) int {
	buf[0] = r.busValue
	binary.LittleEndian.PutUint32(buf[1:], uint32(r.busValueTTL))
	return registerSerializeSize
}

func (r *registerFile) deserialize(buf []byte) int {
	r.busValue = buf[0]
	r.busValueTTL = CycleCount(binary.LittleEndian.Uint32(buf[1:]))
	return registerSerializeSize
}

func putFloat64(buf []byte, v float64) { binary.LittleEndian.PutUint64(buf, math.Float64bits(v)) }
func getFloat64(buf []byte) float64    { return math.Float64frombits(binary.LittleEndian.Uint64(buf)) }
