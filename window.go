package ocpwm

// Register access over a mapped controller window.

import "encoding/binary"

// RegisterWindow is a 32-bit little-endian view over the controller's
// register block. On hardware it is the mmap'd /dev/mem region (mmap.MMap
// is a []byte); in tests it is an ordinary in-memory slice, so the same
// translation code runs against both.
type RegisterWindow []byte

func (w RegisterWindow) read32(offset uint32) uint32 {
	return binary.LittleEndian.Uint32(w[offset : offset+4])
}

func (w RegisterWindow) write32(offset uint32, value uint32) {
	binary.LittleEndian.PutUint32(w[offset:offset+4], value)
}
