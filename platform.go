package ocpwm

// Interfaces the device needs from its platform. These are pre-existing
// services on a real system (bus enumeration, clock tree, reset
// controller); the package only consumes them. LinuxPlatform implements
// them over /dev/mem and the device tree, MockPlatform over memory.

// Platform provides the bus resources of one controller instance.
type Platform interface {
	// MapResource maps the controller's register window for the given
	// resource index. The PTC core exposes a single memory resource, so
	// the index is 0 everywhere in this package.
	MapResource(index int) (RegisterWindow, error)

	// UnmapResource releases a window returned by MapResource.
	UnmapResource(w RegisterWindow) error

	// Clock returns the clock feeding the channel counters.
	Clock() (Clock, error)

	// Reset returns the controller's reset line. A nil Reset with a nil
	// error means the platform wires no reset line to this controller,
	// which is not a fault. A non-nil error means the line exists but
	// could not be acquired; attach treats that as fatal.
	Reset() (Reset, error)
}

// Clock drives the PTC counters.
type Clock interface {
	Enable() error
	Disable()

	// Rate returns the clock frequency in Hz. A device with a rate that
	// is not strictly positive cannot attach.
	Rate() uint32
}

// Reset controls a reset line in front of the controller.
type Reset interface {
	Assert()
	Deassert()
}

// Registrar is the per-channel PWM framework a device registers with on
// attach. Registry implements it for in-process consumers.
type Registrar interface {
	RegisterChip(dev *Device, channels, cells int) error
	UnregisterChip(dev *Device)
}
