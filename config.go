package ocpwm

// YAML controller descriptions. A config names the hardware variant and
// the platform resources a Linux platform needs to reach it. Values left
// out fall back to sensible defaults after parsing.
//
// Example:
//
//	name: pwm0
//	compatible: starfive,jh71x0-pwm
//	base: 0x12d90000
//	dt-node: soc/pwm@12d90000

import (
	"gopkg.in/yaml.v3"
)

type ControllerConfig struct {
	// Name is what the chip registers under, e.g. "pwm0".
	Name string `yaml:"name"`

	// Compatible selects the addressing variant. Defaults to the
	// generic core layout.
	Compatible string `yaml:"compatible"`

	// Base is the physical address of the controller's register window.
	Base uint64 `yaml:"base"`

	// Size is the span of the window to map. Defaults to the variant's
	// register span.
	Size uint32 `yaml:"size"`

	// ClockHz is the counter clock rate. When 0 the rate is read from
	// the device tree node instead.
	ClockHz uint32 `yaml:"clock-hz"`

	// DTNode is the controller's device tree node relative to the tree
	// root, e.g. "soc/pwm@12d90000". Optional; used to read the clock
	// rate when ClockHz is not given.
	DTNode string `yaml:"dt-node"`
}

// LoadConfig parses a YAML controller description and applies defaults.
func LoadConfig(data []byte) (*ControllerConfig, error) {
	var config ControllerConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if err := applyDefaults(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills in missing configuration values. An unknown
// compatible string is an error here rather than at attach time, so a bad
// config is rejected as early as possible.
func applyDefaults(config *ControllerConfig) error {
	if config.Name == "" {
		config.Name = "pwm0"
	}
	if config.Compatible == "" {
		config.Compatible = CompatibleGeneric
	}

	variant, err := LookupVariant(config.Compatible)
	if err != nil {
		return err
	}
	if config.Size == 0 {
		config.Size = variant.WindowSize
	}
	return nil
}

// Variant resolves the addressing variant the config declares.
func (c *ControllerConfig) Variant() (*Variant, error) {
	return LookupVariant(c.Compatible)
}
