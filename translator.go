package ocpwm

// Translation between the hardware-agnostic State and the channel's raw
// register encoding.

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrBadPolarity is returned by apply when the requested polarity is not
// Inverted. The hardware physically cannot drive the duty portion high, so
// any other request is rejected before a single register is written.
var ErrBadPolarity = errors.New("polarity not supported")

const nsecPerSec = 1000000000

// durationToTicks converts a duration to counter ticks at rate Hz, rounding
// to nearest. Intermediate arithmetic is 64-bit; results that do not fit
// the 32-bit reference registers clamp to the longest representable count
// rather than wrapping to a short one.
func durationToTicks(d time.Duration, rate uint32) uint32 {
	if d <= 0 {
		return 0
	}
	ns := uint64(d)
	if ns > (math.MaxUint64-nsecPerSec/2)/uint64(rate) {
		return math.MaxUint32
	}
	ticks := (ns*uint64(rate) + nsecPerSec/2) / nsecPerSec
	if ticks > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ticks)
}

// ticksToDuration converts a tick count back to a duration, with the same
// round-to-nearest rule so the two conversions are symmetric under
// round trips.
func ticksToDuration(ticks uint32, rate uint32) time.Duration {
	ns := (uint64(ticks)*nsecPerSec + uint64(rate)/2) / uint64(rate)
	return time.Duration(ns)
}

// readState decodes a channel's registers into a State. Pure read, no side
// effects, cannot fail.
func readState(w RegisterWindow, base uint32, rate uint32) State {
	periodTicks := w.read32(base + regLRC)
	dutyTicks := w.read32(base + regHRC)
	ctrl := w.read32(base + regCTRL)

	return State{
		Period:   ticksToDuration(periodTicks, rate),
		Duty:     ticksToDuration(dutyTicks, rate),
		Polarity: Inverted,
		Enabled:  ctrl&ctrlEN != 0,
	}
}

// applyState validates and programs a channel. The reference registers and
// the counter are written before CTRL is touched, so the edge triggered by
// the enable write observes the new period and duty rather than stale
// values. Only the EN and OE bits change in CTRL; clock source, one-shot,
// interrupt and capture bits are preserved as found.
func applyState(w RegisterWindow, base uint32, rate uint32, state State) error {
	if state.Polarity != Inverted {
		return fmt.Errorf("%w: this hardware cannot produce a %s output", ErrBadPolarity, state.Polarity)
	}

	w.write32(base+regLRC, durationToTicks(state.Period, rate))
	w.write32(base+regHRC, durationToTicks(state.Duty, rate))
	w.write32(base+regCNTR, 0)

	ctrl := w.read32(base + regCTRL)
	if state.Enabled {
		ctrl |= ctrlEN | ctrlOE
	} else {
		ctrl &^= ctrlEN | ctrlOE
	}
	w.write32(base+regCTRL, ctrl)

	return nil
}
