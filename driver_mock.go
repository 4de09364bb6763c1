package ocpwm

// A mock platform used for unit testing. The register window is an
// ordinary in-memory slice, so apply and get-state run the same code paths
// as against mapped hardware, and the clock/reset mocks record every call
// so tests can verify acquisition order and failure unwinding.

import (
	"fmt"
	"sync"
)

type MockPlatform struct {
	variant *Variant

	// Failure injection for the attach paths.
	MapErr   error
	ClockErr error
	ResetErr error

	// NoReset makes Reset report that no line is wired, which is the
	// benign absence case rather than an acquisition failure.
	NoReset bool

	clock  *MockClock
	reset  *MockReset
	window RegisterWindow

	mu       sync.Mutex
	events   []string
	unmapped int
}

// NewMockPlatform creates a platform backed by a zeroed register window
// sized for the variant, with a clock of the given rate and a reset line.
func NewMockPlatform(variant *Variant, rateHz uint32) *MockPlatform {
	p := &MockPlatform{variant: variant}
	p.clock = &MockClock{platform: p, rate: rateHz}
	p.reset = &MockReset{platform: p}
	return p
}

func (p *MockPlatform) MapResource(index int) (RegisterWindow, error) {
	if p.MapErr != nil {
		return nil, p.MapErr
	}
	if index != 0 {
		return nil, fmt.Errorf("mock platform has no resource %d", index)
	}
	if p.window == nil {
		p.window = make(RegisterWindow, p.variant.WindowSize)
	}
	return p.window, nil
}

func (p *MockPlatform) UnmapResource(w RegisterWindow) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unmapped++
	p.events = append(p.events, "unmap")
	return nil
}

func (p *MockPlatform) Clock() (Clock, error) {
	if p.ClockErr != nil {
		return nil, p.ClockErr
	}
	return p.clock, nil
}

func (p *MockPlatform) Reset() (Reset, error) {
	if p.ResetErr != nil {
		return nil, p.ResetErr
	}
	if p.NoReset {
		return nil, nil
	}
	return p.reset, nil
}

func (p *MockPlatform) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// MockEvents returns every clock, reset and unmap call in the order it
// happened, e.g. ["clock enable", "reset deassert", ...].
func (p *MockPlatform) MockEvents() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

// MockClock returns the platform's clock mock for direct inspection.
func (p *MockPlatform) MockClock() *MockClock {
	return p.clock
}

// MockReset returns the platform's reset mock for direct inspection.
func (p *MockPlatform) MockReset() *MockReset {
	return p.reset
}

// MockReadReg reads a raw register so tests can snapshot hardware state.
func (p *MockPlatform) MockReadReg(offset uint32) uint32 {
	return p.window.read32(offset)
}

// MockSetReg seeds a raw register value, e.g. pre-existing control bits.
func (p *MockPlatform) MockSetReg(offset uint32, value uint32) {
	if p.window == nil {
		p.window = make(RegisterWindow, p.variant.WindowSize)
	}
	p.window.write32(offset, value)
}

// MockSnapshot copies the whole register window, for verifying that a
// rejected apply wrote nothing.
func (p *MockPlatform) MockSnapshot() []byte {
	return append([]byte(nil), p.window...)
}

type MockClock struct {
	platform *MockPlatform
	rate     uint32

	EnableErr error
	Enabled   bool
	Enables   int
	Disables  int
}

func (c *MockClock) Enable() error {
	if c.EnableErr != nil {
		return c.EnableErr
	}
	c.Enabled = true
	c.Enables++
	c.platform.record("clock enable")
	return nil
}

func (c *MockClock) Disable() {
	c.Enabled = false
	c.Disables++
	c.platform.record("clock disable")
}

func (c *MockClock) Rate() uint32 {
	return c.rate
}

type MockReset struct {
	platform *MockPlatform

	Asserted  bool
	Asserts   int
	Deasserts int
}

func (r *MockReset) Assert() {
	r.Asserted = true
	r.Asserts++
	r.platform.record("reset assert")
}

func (r *MockReset) Deassert() {
	r.Asserted = false
	r.Deasserts++
	r.platform.record("reset deassert")
}
