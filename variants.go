package ocpwm

import "fmt"

// Variant describes one supported memory layout of the PTC core. The set of
// variants is static configuration built once at startup; it is never
// mutated afterwards.
type Variant struct {
	// Compatible is the device-tree compatibility identifier the variant
	// is declared under.
	Compatible string

	// Addressing locates each channel's register block.
	Addressing ChannelAddressing

	// WindowSize is the register span the variant needs mapped, from the
	// controller base to the end of the last channel block.
	WindowSize uint32
}

// Compatibility identifiers understood by LookupVariant.
const (
	CompatibleGeneric = "opencores,pwm-ocores"
	CompatibleJH71x0  = "starfive,jh71x0-pwm"
)

var variants = []*Variant{
	{
		Compatible: CompatibleGeneric,
		Addressing: identityAddressing,
		WindowSize: NumChannels * channelStride,
	},
	{
		Compatible: CompatibleJH71x0,
		Addressing: bankedAddressing,
		WindowSize: bankOffset + 4*channelStride,
	},
}

// LookupVariant returns the variant declared under a compatibility
// identifier, or an error if the hardware is not a PTC core this package
// knows.
func LookupVariant(compatible string) (*Variant, error) {
	for _, v := range variants {
		if v.Compatible == compatible {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no PWM controller variant is compatible with %q", compatible)
}

// MatchVariant walks a device's compatibility list, most specific first,
// and returns the first variant that matches. This is the form device tree
// supplies: e.g. a JH7110 node lists "starfive,jh71x0-pwm" before
// "opencores,pwm-ocores".
func MatchVariant(compatibles []string) (*Variant, error) {
	for _, c := range compatibles {
		if v, err := LookupVariant(c); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no PWM controller variant matches %v", compatibles)
}
