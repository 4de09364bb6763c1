/*
	Package ocpwm controls the OpenCores PTC pulse-width-modulation
	controller, a memory-mapped IP core with up to 8 independent channels.
	Each channel owns a 16 byte block of four 32-bit registers: a free
	running counter, a high reference count (duty threshold), a low
	reference count (period threshold) and a control register.

	The package translates between a hardware-agnostic State (period, duty
	and polarity as durations, plus an enabled flag) and the raw register
	encoding, and supports the two known memory layouts of the core: the
	generic layout, where channels sit at consecutive 16 byte strides, and
	the banked layout of the StarFive JH71x0, which places channels 4-7 in
	a second bank 32 KiB above the first.

	A Device binds one physical controller to its platform resources
	(register window, clock, optional reset line). Channels are views
	computed on demand from a device and an index; they hold no state of
	their own beyond what is in the hardware registers.
*/
package ocpwm

import (
	"fmt"
	"sync"
)

// If set to true, functions test that their constraints are met, e.g. that
// a channel index is in range and the device is still attached. This can be
// set with SetErrorChecking(). Setting to false bypasses the checks for
// performance.
var errorChecking bool = true

// Set error checking. This should be called before channels are obtained.
func SetErrorChecking(check bool) {
	errorChecking = check
}

// Registry is an in-process stand-in for a host PWM framework: devices
// register themselves on attach and consumers look chips up by name. A
// process typically uses the package-level default registry.
type Registry struct {
	mu    sync.Mutex
	chips map[string]*chipEntry
}

type chipEntry struct {
	dev      *Device
	channels int
	cells    int
}

func NewRegistry() *Registry {
	return &Registry{chips: make(map[string]*chipEntry)}
}

// RegisterChip records a device under its name, declaring how many channels
// it exposes and how many framework address cells a channel reference uses.
// Registering a name twice is an error, so a failed attach can be observed.
func (r *Registry) RegisterChip(dev *Device, channels, cells int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := dev.Name()
	if _, exists := r.chips[name]; exists {
		return fmt.Errorf("chip %q is already registered", name)
	}
	r.chips[name] = &chipEntry{dev: dev, channels: channels, cells: cells}
	return nil
}

// UnregisterChip removes a device from the registry. Unknown names are
// ignored; detach paths call this unconditionally.
func (r *Registry) UnregisterChip(dev *Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chips, dev.Name())
}

// Chip returns a registered device by name.
func (r *Registry) Chip(name string) (*Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.chips[name]
	if entry == nil {
		return nil, fmt.Errorf("no chip called %q is registered", name)
	}
	return entry.dev, nil
}

// Chips returns the names of all registered devices.
func (r *Registry) Chips() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.chips))
	for name := range r.chips {
		names = append(names, name)
	}
	return names
}

// The default registry used by the package-level functions.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry that Attach uses when
// no registrar is supplied.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// GetChip returns a chip from the default registry by name.
// e.g. to get the controller declared as "pwm0":
//
//	chip, err := ocpwm.GetChip("pwm0")
func GetChip(name string) (*Device, error) {
	return defaultRegistry.Chip(name)
}

// Map re-maps a number from one range to another, in the manner of the
// Arduino map function. Used by consumers such as the servo package to map
// an angle onto a duty range.
func Map(value int, fromLow int, fromHigh int, toLow int, toHigh int) int {
	return (value-fromLow)*(toHigh-toLow)/(fromHigh-fromLow) + toLow
}
