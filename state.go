package ocpwm

// Definitions relating to channel state.

import "time"

// Polarity of a PWM signal. Normal means the duty portion of each period is
// driven high; Inverted means it is driven low.
type Polarity int

const (
	Normal Polarity = iota
	Inverted
)

// String representation of a polarity.
func (p Polarity) String() string {
	switch p {
	case Normal:
		return "NORMAL"
	case Inverted:
		return "INVERTED"
	}
	return ""
}

// State is the hardware-agnostic configuration of one PWM channel. It is
// plain data exchanged with the consumer; nothing of it is retained in
// software once applied, the registers are the only store.
//
// The PTC core can only produce an inverted output, so Polarity must be
// Inverted on apply and always reads back as Inverted.
type State struct {
	// Period is the duration of a full cycle.
	Period time.Duration

	// Duty is the active portion of each period. For correct output it
	// must not exceed Period; the hardware does not enforce this and
	// neither does this layer.
	Duty time.Duration

	Polarity Polarity

	Enabled bool
}
