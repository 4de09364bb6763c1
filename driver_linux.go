//go:build linux

package ocpwm

// A platform backed by /dev/mem and the device tree, for boards where the
// PTC registers are reachable from userspace. The register window is
// mapped with mmap, page aligned, and handed to the translator as a plain
// byte slice.
//
// There is no clock framework in userspace: by the time a process runs,
// the kernel has already ungated the bus clock feeding the counters, so
// the clock here is a fixed-rate handle whose rate comes from the config
// or from the controller's device tree node. No reset line is wired
// through to userspace either; Reset reports absence, which attach treats
// as "no reset control needed".

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

const devMem = "/dev/mem"

type LinuxPlatform struct {
	Config ControllerConfig

	file   *os.File
	region mmap.MMap
}

func NewLinuxPlatform(config ControllerConfig) *LinuxPlatform {
	return &LinuxPlatform{Config: config}
}

// NewLinuxDevice builds an unattached device from a controller config.
func NewLinuxDevice(config ControllerConfig) (*Device, error) {
	variant, err := config.Variant()
	if err != nil {
		return nil, err
	}
	return NewDevice(config.Name, variant, NewLinuxPlatform(config)), nil
}

func (p *LinuxPlatform) MapResource(index int) (RegisterWindow, error) {
	if index != 0 {
		return nil, fmt.Errorf("controller has no memory resource %d", index)
	}
	if p.Config.Base == 0 {
		return nil, fmt.Errorf("controller %q has no base address configured", p.Config.Name)
	}

	file, err := os.OpenFile(devMem, os.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}

	// mmap offsets must be page aligned; the PTC base generally is, but
	// map from the enclosing page boundary and skew the window in case
	// it is not.
	page := uint64(unix.Getpagesize())
	aligned := p.Config.Base &^ (page - 1)
	skew := p.Config.Base - aligned

	region, err := mmap.MapRegion(file, int(uint64(p.Config.Size)+skew), mmap.RDWR, 0, int64(aligned))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("mapping %s at %#x: %w", devMem, p.Config.Base, err)
	}

	p.file = file
	p.region = region
	return RegisterWindow(region[skew:]), nil
}

func (p *LinuxPlatform) UnmapResource(w RegisterWindow) error {
	var err error
	if p.region != nil {
		err = p.region.Unmap()
		p.region = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	return err
}

func (p *LinuxPlatform) Clock() (Clock, error) {
	rate := p.Config.ClockHz
	if rate == 0 && p.Config.DTNode != "" {
		r, err := DTClockFrequency(p.Config.DTNode)
		if err != nil {
			return nil, fmt.Errorf("reading clock rate for %q: %w", p.Config.Name, err)
		}
		rate = r
	}
	if rate == 0 {
		return nil, fmt.Errorf("controller %q has no clock rate configured", p.Config.Name)
	}
	return &fixedClock{rate: rate}, nil
}

func (p *LinuxPlatform) Reset() (Reset, error) {
	return nil, nil
}

// fixedClock is an always-running clock at a known rate. Enable and
// Disable are bookkeeping only; the kernel owns the real gate.
type fixedClock struct {
	rate    uint32
	enabled bool
}

func (c *fixedClock) Enable() error {
	c.enabled = true
	return nil
}

func (c *fixedClock) Disable() {
	c.enabled = false
}

func (c *fixedClock) Rate() uint32 {
	return c.rate
}
