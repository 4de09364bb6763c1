package ocpwm

// Helpers for reading flattened device tree properties out of
// /proc/device-tree. On device-tree systems this is where a controller's
// compatibility identifiers and counter clock rate come from.

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Overridden in tests to point at a fixture tree.
var deviceTreeRoot = "/proc/device-tree"

func dtProperty(node string, property string) ([]byte, error) {
	return os.ReadFile(filepath.Join(deviceTreeRoot, node, property))
}

// DTCompatible returns the compatibility identifiers of a device tree
// node, most specific first, e.g. for a JH71x0 PWM node:
// ["starfive,jh71x0-pwm", "opencores,pwm-ocores"].
func DTCompatible(node string) ([]string, error) {
	data, err := dtProperty(node, "compatible")
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\x00"), "\x00"), nil
}

// DTClockFrequency returns the clock-frequency property of a node in Hz.
func DTClockFrequency(node string) (uint32, error) {
	return dtU32(node, "clock-frequency")
}

// dtU32 reads a single-cell property. Device tree cells are big-endian.
func dtU32(node string, property string) (uint32, error) {
	data, err := dtProperty(node, property)
	if err != nil {
		return 0, err
	}
	if len(data) < 4 {
		return 0, fmt.Errorf("device tree property %s/%s is not a u32 cell", node, property)
	}
	return binary.BigEndian.Uint32(data[:4]), nil
}

// MatchNode resolves a device tree node to the hardware variant it
// declares, walking the node's compatibility list through the variant
// table.
func MatchNode(node string) (*Variant, error) {
	compatibles, err := DTCompatible(node)
	if err != nil {
		return nil, err
	}
	return MatchVariant(compatibles)
}
