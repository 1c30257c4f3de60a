// Package sid implements a cycle-accurate emulation core for the MOS
// 6581/8580 SID sound chip: three waveform oscillators with hard sync and
// ring modulation, three ADSR envelope generators, a programmable
// state-variable filter, the external RC filter stage, and a multi-mode
// resampler down to host audio rate. It has no dependency on any CPU
// emulator, GUI, or audio backend; a host drives it through Write/Read/
// Clock/ClockAndSample.
package sid

import "fmt"

// Config configures a Chip's chip model, clock rate, and output sampling.
type Config struct {
	Model      Model
	ClockFreq  float64 // master clock, Hz (ClockPAL or ClockNTSC are typical)
	SampleFreq float64 // host output sample rate, Hz
	Method     SamplingMethod
	PassFreq   float64 // passband edge, Hz; 0 selects a default; validated only, the resampler does not use it
	FilterGain float64 // must lie in 0.9-1.0; validated only, not applied to the output

	// Both filter stages are enabled by default (an "enabled" flag would
	// make the zero value of Config silently disable both stages, which
	// is never what a caller who didn't think about these fields wants);
	// set DisableFilter/DisableExternalFilter to opt out.
	DisableFilter         bool
	DisableExternalFilter bool
}

func (cfg Config) withDefaults() Config {
	if cfg.ClockFreq == 0 {
		cfg.ClockFreq = ClockPAL
	}
	if cfg.SampleFreq == 0 {
		cfg.SampleFreq = 44100
	}
	if cfg.PassFreq == 0 {
		cfg.PassFreq = 0.9 * cfg.SampleFreq / 2
	}
	if cfg.FilterGain == 0 {
		cfg.FilterGain = 0.97
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.SampleFreq <= 0 || cfg.ClockFreq <= 0 {
		return configErr(ErrInvalidSampleRate, "clock=%v sample=%v must be positive", cfg.ClockFreq, cfg.SampleFreq)
	}
	if cfg.PassFreq <= 0 || cfg.PassFreq > 0.9*cfg.SampleFreq/2 {
		return configErr(ErrInvalidPassband, "pass=%v exceeds 0.9*sampleFreq/2=%v", cfg.PassFreq, 0.9*cfg.SampleFreq/2)
	}
	if cfg.FilterGain < 0.9 || cfg.FilterGain > 1.0 {
		return configErr(ErrInvalidPassband, "filter gain %v outside [0.9, 1.0]", cfg.FilterGain)
	}
	return nil
}

// Chip is a complete SID core instance.
type Chip struct {
	cfg Config

	voices [3]voice
	filter *filter
	ext    externalFilter
	regs   registerFile

	dac    *dacTables
	ftabs  *filterTables
	resamp *resampler

	extInput int32

	traceEnabled bool
	traceBudget  int
}

// NewChip builds a Chip from cfg, applying defaults for zero-valued fields.
// An invalid Config returns a *ConfigError and a nil Chip.
func NewChip(cfg Config) (*Chip, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Chip{cfg: cfg}
	c.dac = newDACTables(cfg.Model)
	c.ftabs = newFilterTables(cfg.Model)
	c.filter = newFilter(cfg.Model, c.ftabs)
	c.filter.enabled = !cfg.DisableFilter

	resamp, err := newResampler(cfg.Method, cfg.ClockFreq, cfg.SampleFreq)
	if err != nil {
		return nil, err
	}
	c.resamp = resamp

	c.wireVoiceRing()
	c.Reset()
	return c, nil
}

// wireVoiceRing sets each voice's sync source to its ring predecessor,
// adjacency {0<-2, 1<-0, 2<-1}, per spec.md §9's index-based strategy: no
// voice ever holds a pointer escaping the owning Chip.
func (c *Chip) wireVoiceRing() {
	c.voices[0].wave.syncSource = &c.voices[2].wave
	c.voices[1].wave.syncSource = &c.voices[0].wave
	c.voices[2].wave.syncSource = &c.voices[1].wave
}

// Reset restores every component to its power-on state. The voice ring
// wiring (sync-source pointers) is untouched since it is construction-time
// topology, not chip state.
func (c *Chip) Reset() {
	for i := range c.voices {
		c.voices[i].reset()
	}
	c.filter.reset()
	c.ext.reset(0)
	c.ext.setEnabled(!c.cfg.DisableExternalFilter)
	c.regs = registerFile{}
	c.extInput = 0
}

// Configure re-derives sampling-related tables for a new Config without
// disturbing oscillator/envelope/filter state. It validates a copy first so
// a rejected Config leaves the Chip exactly as it was.
func (c *Chip) Configure(cfg Config) error {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}
	resamp, err := newResampler(cfg.Method, cfg.ClockFreq, cfg.SampleFreq)
	if err != nil {
		return err
	}
	if cfg.Model != c.cfg.Model {
		c.dac = newDACTables(cfg.Model)
		c.ftabs = newFilterTables(cfg.Model)
		c.filter.model = cfg.Model
		c.filter.tables = c.ftabs
	}
	c.filter.enabled = !cfg.DisableFilter
	c.ext.setEnabled(!cfg.DisableExternalFilter)
	c.cfg = cfg
	c.resamp = resamp
	return nil
}

// Write stores value at the given SID register address (0x00-0x1c).
func (c *Chip) Write(addr uint8, value uint8) {
	if addr >= RegCount {
		return
	}
	c.write(addr, value)
}

// Read returns the current value of the given SID register address.
func (c *Chip) Read(addr uint8) uint8 {
	if addr >= RegCount {
		return 0
	}
	return c.read(addr)
}

// Input sets the external audio sample the chip mixes in on every following
// cycle until the next Input or Reset, routed through the filter when
// FilterExt routing is enabled.
func (c *Chip) Input(sample int16) {
	c.extInput = int32(sample)
}

// Clock advances the chip by delta cycles without producing samples; the
// orchestration matches ClockAndSample's but discards its output.
func (c *Chip) Clock(delta CycleCount) {
	for delta > 0 {
		step := delta
		if step > maxFilterCycles {
			step = maxFilterCycles
		}
		c.clockSubStep(step)
		delta -= step
	}
}

// ClockAndSample advances the chip by up to delta cycles, writing resampled
// host-rate samples into buf, and returns the number of cycles actually
// consumed and the number of samples written. Following spec.md §6's retry
// contract, a host whose buffer fills mid-advance calls again with the
// remaining (delta - consumed) cycles.
func (c *Chip) ClockAndSample(delta CycleCount, buf []int16) (consumed CycleCount, written int) {
	for delta > 0 && written < len(buf) {
		step := delta
		if step > maxFilterCycles {
			step = maxFilterCycles
		}
		out := c.clockSubStep(step)
		delta -= step
		consumed += step

		switch c.resamp.method {
		case SampleNearest, SampleLinear:
			var s int16
			if c.resamp.clockDirect(out, step, &s) {
				buf[written] = s
				written++
			}
		case SampleFastSinc, SampleSinc:
			// The blip ring buffer accumulates deltas across a whole
			// ClockAndSample call (Clock does not feed it); samples are pulled separately via
			// Drain once the caller has pushed a full frame.
			c.resamp.clockBlip(uint64(consumed), out)
		}
	}
	return consumed, written
}

// Drain pulls any samples the blip-based resamplers (FAST_SINC/SINC) have
// finished synthesizing since the last call, after the caller has told the
// resampler how many cycles made up the frame via EndFrame. The returned
// count never exceeds what SamplesAvailable reported, so a caller sizing buf
// from DrainLen never gets back a short read it has to loop on.
func (c *Chip) Drain(buf []int16) int {
	if c.resamp.bb == nil {
		return 0
	}
	if avail := c.resamp.samplesAvailable(); avail < len(buf) {
		buf = buf[:avail]
	}
	return c.resamp.drain(buf)
}

// DrainLen reports how many samples a blip-based resampler (FAST_SINC/SINC)
// has ready to hand back via Drain right now; 0 for the direct methods.
func (c *Chip) DrainLen() int {
	return c.resamp.samplesAvailable()
}

// EndFrame tells a blip-based resampler how many cycles were actually
// pushed via ClockAndSample since the last EndFrame, letting it finalize
// that frame's bandlimited synthesis (github.com/arl/blip's EndFrame
// contract).
func (c *Chip) EndFrame(clocksUsed CycleCount) {
	if c.resamp.bb != nil {
		c.resamp.endFrame(int(clocksUsed))
	}
}

// clockSubStep advances every component by exactly step cycles (step <=
// maxFilterCycles) and returns the filter-stage output for that step. This
// is the orchestrator described in original_source/src/sid/sid.cc's
// SID::clock(): envelopes clock by the whole sub-step; oscillators
// sub-sub-step further, bounded by the minimum cycles-to-next-MSB-toggle
// among voices whose ring successor uses sync or ring-mod, so that sync and
// ring-mod transitions land on the correct cycle instead of being
// quantized to step's granularity.
func (c *Chip) clockSubStep(step CycleCount) int32 {
	c.regs.age(step)

	for i := range c.voices {
		c.voices[i].env.clock(step)
	}

	remaining := step
	for remaining > 0 {
		sub := c.minCyclesToNextToggle(remaining)
		for i := range c.voices {
			c.voices[i].wave.clock(sub)
		}
		for i := range c.voices {
			c.voices[i].wave.synchronize()
		}
		remaining -= sub
	}

	var mixed, unfiltered int32
	if c.filter.enabled && c.filter.routeV1 {
		mixed += c.voices[0].output(c.dac)
	} else {
		unfiltered += c.voices[0].output(c.dac)
	}
	if c.filter.enabled && c.filter.routeV2 {
		mixed += c.voices[1].output(c.dac)
	} else {
		unfiltered += c.voices[1].output(c.dac)
	}
	// The off-bit (Mode3Off) silences voice 3 only when it isn't routed
	// through the filter: on real hardware filt3 pulls voice 3's DAC
	// output off the "disconnect" path the off-bit otherwise severs.
	if !(c.voices[2].muted && !c.filter.routeV3) {
		if c.filter.enabled && c.filter.routeV3 {
			mixed += c.voices[2].output(c.dac)
		} else {
			unfiltered += c.voices[2].output(c.dac)
		}
	}
	if c.filter.enabled && c.filter.routeExt {
		mixed += c.extInput
	} else {
		unfiltered += c.extInput
	}

	var filtered int32
	if c.filter.enabled {
		c.filter.clock(float64(mixed), step)
		filtered = int32(c.filter.output())
	}

	total := filtered + unfiltered
	c.ext.clock(step, total)
	extOut := c.ext.output()

	vol := int32(c.filter.volume)
	return (extOut * vol) / 15
}

// minCyclesToNextToggle returns the fewest cycles, bounded by cap, until any
// voice whose ring successor has sync or ring-mod enabled crosses an
// accumulator MSB boundary, matching sid.cc's delta_t_osc inner-loop bound.
func (c *Chip) minCyclesToNextToggle(cap CycleCount) CycleCount {
	min := cap
	for i := range c.voices {
		successor := &c.voices[(i+1)%3].wave
		if !successor.sync && !successor.ringMod {
			continue
		}
		w := &c.voices[i].wave
		if w.freq == 0 || w.test {
			continue
		}
		var target uint32 = accumulatorMSB
		if w.accumulator&accumulatorMSB != 0 {
			target = 1 << 24
		}
		dist := uint64(target) - uint64(w.accumulator)
		cycles := (dist + uint64(w.freq) - 1) / uint64(w.freq)
		if CycleCount(cycles) < min {
			min = CycleCount(cycles)
		}
	}
	if min == 0 {
		min = 1
	}
	return min
}

// EnableTrace turns on register-write tracing for the next n writes,
// mirroring the teacher's debugEnabled/debugUntil counter in sid_engine.go.
func (c *Chip) EnableTrace(n int) { c.traceEnabled = true; c.traceBudget = n }

func (c *Chip) trace(addr, value uint8) {
	if !c.traceEnabled || c.traceBudget <= 0 {
		return
	}
	c.traceBudget--
	fmt.Printf("sid: write $%02x = $%02x\n", addr, value)
	if c.traceBudget == 0 {
		c.traceEnabled = false
	}
}
