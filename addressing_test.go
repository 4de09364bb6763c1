package ocpwm

// Unit tests for the channel addressing strategies and the variant table.

import "testing"

func TestIdentityAddressing(t *testing.T) {
	for ch := 0; ch < NumChannels; ch++ {
		want := uint32(ch) * 16
		if got := identityAddressing(ch); got != want {
			t.Errorf("identity channel %d: got %#x, want %#x", ch, got, want)
		}
	}
}

func TestBankedAddressing(t *testing.T) {
	for ch := 0; ch < 4; ch++ {
		want := uint32(ch) * 16
		if got := bankedAddressing(ch); got != want {
			t.Errorf("banked channel %d: got %#x, want %#x", ch, got, want)
		}
	}
	for ch := 4; ch < NumChannels; ch++ {
		want := uint32(ch-4)*16 + 32768
		if got := bankedAddressing(ch); got != want {
			t.Errorf("banked channel %d: got %#x, want %#x", ch, got, want)
		}
	}
}

func TestLookupVariant(t *testing.T) {
	generic, err := LookupVariant(CompatibleGeneric)
	if err != nil {
		t.Fatalf("lookup of %s failed: %s", CompatibleGeneric, err)
	}
	if generic.WindowSize != 8*16 {
		t.Errorf("generic window size: got %#x, want %#x", generic.WindowSize, 8*16)
	}

	banked, err := LookupVariant(CompatibleJH71x0)
	if err != nil {
		t.Fatalf("lookup of %s failed: %s", CompatibleJH71x0, err)
	}
	if banked.WindowSize != 32768+4*16 {
		t.Errorf("banked window size: got %#x, want %#x", banked.WindowSize, 32768+4*16)
	}

	if _, err := LookupVariant("acme,pwm-unknown"); err == nil {
		t.Error("lookup of an unknown compatible should have failed")
	}
}

func TestMatchVariant(t *testing.T) {
	// A JH71x0 node lists the specific compatible before the generic
	// one; the specific one must win.
	v, err := MatchVariant([]string{CompatibleJH71x0, CompatibleGeneric})
	if err != nil {
		t.Fatalf("match failed: %s", err)
	}
	if v.Compatible != CompatibleJH71x0 {
		t.Errorf("match picked %s, want %s", v.Compatible, CompatibleJH71x0)
	}

	if _, err := MatchVariant([]string{"acme,pwm-unknown"}); err == nil {
		t.Error("match with no known compatible should have failed")
	}
}
