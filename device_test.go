package ocpwm

// Unit tests for the device lifecycle: resource acquisition order, failure
// unwinding, detach, and per-channel dispatch through both layouts.

import (
	"errors"
	"testing"
	"time"
)

func TestAttachAcquiresResources(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	platform := NewMockPlatform(variant, 24000000)
	registry := NewRegistry()

	dev := NewDevice("pwm0", variant, platform)
	if err := dev.Attach(registry); err != nil {
		t.Fatalf("attach failed: %s", err)
	}

	clock := platform.MockClock()
	if !clock.Enabled || clock.Enables != 1 {
		t.Errorf("clock should be enabled exactly once, got enables=%d enabled=%v", clock.Enables, clock.Enabled)
	}
	reset := platform.MockReset()
	if reset.Asserted || reset.Deasserts != 1 {
		t.Errorf("reset should be deasserted exactly once, got deasserts=%d asserted=%v", reset.Deasserts, reset.Asserted)
	}
	if dev.Rate() != 24000000 {
		t.Errorf("device rate: got %d, want 24000000", dev.Rate())
	}

	got, err := registry.Chip("pwm0")
	if err != nil {
		t.Fatalf("registry lookup after attach failed: %s", err)
	}
	if got != dev {
		t.Error("registry returned a different device")
	}
}

func TestAttachWithoutResetLine(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	platform := NewMockPlatform(variant, 24000000)
	platform.NoReset = true

	dev := NewDevice("pwm0", variant, platform)
	if err := dev.Attach(NewRegistry()); err != nil {
		t.Fatalf("a missing reset line is not an error, but attach failed: %s", err)
	}
	if platform.MockReset().Deasserts != 0 {
		t.Error("no reset line exists, nothing should have been deasserted")
	}
}

func TestAttachMapFailure(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	platform := NewMockPlatform(variant, 24000000)
	platform.MapErr = errors.New("resource window unavailable")

	dev := NewDevice("pwm0", variant, platform)
	if err := dev.Attach(NewRegistry()); err == nil {
		t.Fatal("attach should have failed when the window cannot be mapped")
	}
	if platform.MockClock().Enables != 0 {
		t.Error("the clock must not be touched when mapping fails first")
	}
}

func TestAttachClockFailure(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	platform := NewMockPlatform(variant, 24000000)
	platform.ClockErr = errors.New("clock unavailable")

	dev := NewDevice("pwm0", variant, platform)
	if err := dev.Attach(NewRegistry()); err == nil {
		t.Fatal("attach should have failed when the clock is unavailable")
	}
}

func TestAttachResetAcquisitionFailure(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	platform := NewMockPlatform(variant, 24000000)
	platform.ResetErr = errors.New("reset controller unavailable")

	dev := NewDevice("pwm0", variant, platform)
	if err := dev.Attach(NewRegistry()); err == nil {
		t.Fatal("a reset acquisition error should abort attach")
	}
	if platform.MockClock().Enabled {
		t.Error("the clock must be disabled again when reset acquisition fails")
	}
}

func TestAttachZeroClockRate(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	platform := NewMockPlatform(variant, 0)
	registry := NewRegistry()

	dev := NewDevice("pwm0", variant, platform)
	err := dev.Attach(registry)
	if err == nil {
		t.Fatal("attach should have failed with a zero clock rate")
	}
	if !errors.Is(err, ErrClockRate) {
		t.Errorf("expected ErrClockRate, got: %s", err)
	}

	if platform.MockClock().Enabled {
		t.Error("the clock must not be left enabled on the failure path")
	}
	if !platform.MockReset().Asserted {
		t.Error("the reset line must be re-asserted on the failure path")
	}
	if _, err := registry.Chip("pwm0"); err == nil {
		t.Error("a device that failed to attach must not be reachable")
	}
}

func TestAttachRegistrationFailure(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	registry := NewRegistry()

	// Occupy the name so the second registration is refused.
	first := NewDevice("pwm0", variant, NewMockPlatform(variant, 24000000))
	if err := first.Attach(registry); err != nil {
		t.Fatalf("setup attach failed: %s", err)
	}

	platform := NewMockPlatform(variant, 24000000)
	dev := NewDevice("pwm0", variant, platform)
	if err := dev.Attach(registry); err == nil {
		t.Fatal("attach should have failed when registration is refused")
	}

	if platform.MockClock().Enabled {
		t.Error("no dangling enabled clock may remain after a failed registration")
	}
	if !platform.MockReset().Asserted {
		t.Error("the reset line must be re-asserted after a failed registration")
	}

	// Unwind order: reset back first, then the clock, then the window.
	events := platform.MockEvents()
	if len(events) < 3 {
		t.Fatalf("expected at least 3 events, got %v", events)
	}
	tail := events[len(events)-3:]
	if tail[0] != "reset assert" || tail[1] != "clock disable" || tail[2] != "unmap" {
		t.Errorf("unwind order was %v, want [reset assert, clock disable, unmap]", tail)
	}
}

func TestDetach(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	platform := NewMockPlatform(variant, 24000000)
	registry := NewRegistry()

	dev := NewDevice("pwm0", variant, platform)
	if err := dev.Attach(registry); err != nil {
		t.Fatalf("attach failed: %s", err)
	}
	if err := dev.Detach(); err != nil {
		t.Fatalf("detach failed: %s", err)
	}

	if platform.MockClock().Enabled {
		t.Error("detach must disable the clock")
	}
	if !platform.MockReset().Asserted {
		t.Error("detach must assert the reset line")
	}
	if _, err := registry.Chip("pwm0"); err == nil {
		t.Error("a detached device must not be reachable through the registry")
	}

	events := platform.MockEvents()
	tail := events[len(events)-3:]
	if tail[0] != "reset assert" || tail[1] != "clock disable" || tail[2] != "unmap" {
		t.Errorf("detach order was %v, want [reset assert, clock disable, unmap]", tail)
	}

	// Detached is terminal.
	if err := dev.Detach(); err == nil {
		t.Error("a second detach should have failed")
	}
	if _, err := dev.Channel(0); err == nil {
		t.Error("channels of a detached device should not be handed out")
	}
}

func TestAttachTwice(t *testing.T) {
	variant, _ := LookupVariant(CompatibleGeneric)
	dev := NewDevice("pwm0", variant, NewMockPlatform(variant, 24000000))

	if err := dev.Attach(NewRegistry()); err != nil {
		t.Fatalf("attach failed: %s", err)
	}
	if err := dev.Attach(NewRegistry()); err == nil {
		t.Error("re-entrant attach should have failed")
	}
}

func TestChannelRange(t *testing.T) {
	dev, _ := attachTestChip(t, CompatibleGeneric, 24000000)

	for num := 0; num < NumChannels; num++ {
		ch, err := dev.Channel(num)
		if err != nil {
			t.Errorf("channel %d should exist: %s", num, err)
			continue
		}
		if ch.Number() != num {
			t.Errorf("channel number: got %d, want %d", ch.Number(), num)
		}
	}

	if _, err := dev.Channel(-1); err == nil {
		t.Error("channel -1 should not exist")
	}
	if _, err := dev.Channel(NumChannels); err == nil {
		t.Errorf("channel %d should not exist", NumChannels)
	}
}

func TestBankedChannelRegisterPlacement(t *testing.T) {
	dev, platform := attachTestChip(t, CompatibleJH71x0, 24000000)

	ch, err := dev.Channel(5)
	if err != nil {
		t.Fatalf("channel 5: %s", err)
	}
	state := State{Period: time.Millisecond, Duty: 500 * time.Microsecond, Polarity: Inverted, Enabled: true}
	if err := ch.Apply(state); err != nil {
		t.Fatalf("apply failed: %s", err)
	}

	// Channel 5 lives one stride into the upper bank.
	base := uint32(32768 + 16)
	if got := platform.MockReadReg(base + regLRC); got != 24000 {
		t.Errorf("banked period register: got %d, want 24000", got)
	}
	if got := platform.MockReadReg(base + regHRC); got != 12000 {
		t.Errorf("banked duty register: got %d, want 12000", got)
	}

	// The lower bank must be untouched.
	if got := platform.MockReadReg(5*channelStride + regLRC); got != 0 {
		t.Errorf("identity-layout offset was written in the banked layout: %d", got)
	}
}
