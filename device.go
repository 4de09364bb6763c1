package ocpwm

// Device lifecycle: binding a controller to its platform resources and
// dispatching per-channel calls into the register translator.

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrClockRate is returned from Attach when the platform clock reports a
// rate that is not strictly positive. The tick conversions would divide by
// it, so the device is unusable and nothing is registered.
var ErrClockRate = errors.New("clock rate is not positive")

type lifecycle int

const (
	unattached lifecycle = iota
	attached
	detached
)

// Device is one physical PTC controller. It owns the register window, the
// clock and the optional reset line from Attach until Detach, and lives
// exactly as long as that binding.
type Device struct {
	name    string
	variant *Variant
	plat    Platform
	logger  *slog.Logger

	// mu serialises apply's control register read-modify-write; a
	// concurrent apply on the same device could otherwise corrupt the
	// preserved control bits.
	mu sync.Mutex

	state     lifecycle
	window    RegisterWindow
	clock     Clock
	reset     Reset
	rate      uint32
	registrar Registrar
}

// NewDevice creates an unattached device for the given hardware variant.
// Nothing is acquired until Attach.
func NewDevice(name string, variant *Variant, platform Platform) *Device {
	return &Device{
		name:    name,
		variant: variant,
		plat:    platform,
		logger:  slog.Default().With("chip", name),
	}
}

func (d *Device) Name() string {
	return d.name
}

// Rate returns the counter clock frequency in Hz. Zero until attached.
func (d *Device) Rate() uint32 {
	return d.rate
}

// Attach acquires the controller's resources, in order: register window,
// clock (enabled), optional reset line (deasserted), then registers the
// device with the framework, declaring all channels. Any failure unwinds
// whatever was already acquired and leaves no partially-initialised device
// reachable. Attach is not re-entrant; a detached device stays detached.
func (d *Device) Attach(registrar Registrar) error {
	if d.state != unattached {
		return fmt.Errorf("chip %q cannot attach twice", d.name)
	}

	window, err := d.plat.MapResource(0)
	if err != nil {
		return fmt.Errorf("unable to map IO resources: %w", err)
	}

	clock, err := d.plat.Clock()
	if err != nil {
		d.plat.UnmapResource(window)
		return fmt.Errorf("unable to get pwm clock: %w", err)
	}
	if err := clock.Enable(); err != nil {
		d.plat.UnmapResource(window)
		return fmt.Errorf("unable to enable pwm clock: %w", err)
	}

	// A platform without a reset line returns (nil, nil), which is fine.
	// An error acquiring a line that exists is fatal: ignoring it could
	// leave the block held in reset, failing unpredictably at first use.
	reset, err := d.plat.Reset()
	if err != nil {
		clock.Disable()
		d.plat.UnmapResource(window)
		return fmt.Errorf("unable to get reset control: %w", err)
	}
	if reset != nil {
		reset.Deassert()
	}

	rate := clock.Rate()
	if rate == 0 {
		d.unwind(window, clock, reset)
		return fmt.Errorf("%w (chip %q)", ErrClockRate, d.name)
	}

	d.window = window
	d.clock = clock
	d.reset = reset
	d.rate = rate

	if err := registrar.RegisterChip(d, NumChannels, addressCells); err != nil {
		d.unwind(window, clock, reset)
		d.window = nil
		d.clock = nil
		d.reset = nil
		d.rate = 0
		return fmt.Errorf("cannot register chip %q: %w", d.name, err)
	}

	d.registrar = registrar
	d.state = attached
	d.logger.Info("pwm chip attached", "channels", NumChannels, "rate_hz", rate)
	return nil
}

// unwind releases resources acquired part-way through a failed attach:
// reset back asserted, clock disabled, window unmapped.
func (d *Device) unwind(window RegisterWindow, clock Clock, reset Reset) {
	if reset != nil {
		reset.Assert()
	}
	clock.Disable()
	d.plat.UnmapResource(window)
	d.logger.Warn("pwm chip attach failed, resources released")
}

// Detach releases the device: the reset line is asserted (if present), the
// clock disabled and the window unmapped. The device is removed from the
// framework first, so no per-channel call can be dispatched afterwards.
// Detached is terminal.
func (d *Device) Detach() error {
	if d.state != attached {
		return fmt.Errorf("chip %q is not attached", d.name)
	}

	d.registrar.UnregisterChip(d)

	if d.reset != nil {
		d.reset.Assert()
	}
	d.clock.Disable()
	d.plat.UnmapResource(d.window)

	d.window = nil
	d.clock = nil
	d.reset = nil
	d.state = detached
	d.logger.Info("pwm chip detached")
	return nil
}

// Channel is a view of one hardware channel, computed on demand from the
// device and an index. It stores nothing but the resolved register base.
type Channel struct {
	dev  *Device
	num  int
	base uint32
}

// Channel returns a view of channel number num, 0 to NumChannels-1.
func (d *Device) Channel(num int) (*Channel, error) {
	if errorChecking {
		if num < 0 || num >= NumChannels {
			return nil, fmt.Errorf("channel %d is not in range 0..%d", num, NumChannels-1)
		}
		if d.state != attached {
			return nil, fmt.Errorf("chip %q is not attached", d.name)
		}
	}
	return &Channel{dev: d, num: num, base: d.variant.Addressing(num)}, nil
}

func (c *Channel) Number() int {
	return c.num
}

// Apply programs the channel with the requested state. The only error path
// is validation: a polarity other than Inverted is rejected before any
// register write, leaving the hardware in its prior state.
func (c *Channel) Apply(state State) error {
	c.dev.mu.Lock()
	defer c.dev.mu.Unlock()
	return applyState(c.dev.window, c.base, c.dev.rate, state)
}

// State reads the channel's current configuration back out of the
// registers. It never fails and has no hardware side effects.
func (c *Channel) State() State {
	c.dev.mu.Lock()
	defer c.dev.mu.Unlock()
	return readState(c.dev.window, c.base, c.dev.rate)
}

// ResetCounter restarts the channel's counting sequence without touching
// the thresholds or control bits. Apply does this implicitly; this is for
// consumers that want a clean phase on an already-configured channel.
func (c *Channel) ResetCounter() {
	c.dev.mu.Lock()
	defer c.dev.mu.Unlock()
	c.dev.window.write32(c.base+regCNTR, 0)
}
