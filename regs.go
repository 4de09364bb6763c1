package ocpwm

// Per-channel register offsets. Each channel owns a 16 byte block of four
// 32-bit registers at a base computed by the addressing strategy.
const (
	regCNTR = 0x0 // current counter value, write 0 to restart the cycle
	regHRC  = 0x4 // high reference count, the duty threshold
	regLRC  = 0x8 // low reference count, the period threshold
	regCTRL = 0xC // control
)

// CTRL register bits. Only EN and OE are ever changed by this package; the
// remaining bits are read and written back untouched.
const (
	ctrlEN      = 1 << 0 // counter enable
	ctrlECLK    = 1 << 1 // count the external clock input instead of the bus clock
	ctrlNEC     = 1 << 2 // external clock is counted on its negative edge
	ctrlOE      = 1 << 3 // drive the PWM output pin
	ctrlSINGLE  = 1 << 4 // one-shot: stop counting after one period
	ctrlINTE    = 1 << 5 // interrupt enable
	ctrlINT     = 1 << 6 // interrupt status
	ctrlCNTRRST = 1 << 7 // hold the counter in reset
	ctrlCAPTE   = 1 << 8 // capture mode enable
)

const (
	// NumChannels is the channel count of the PTC core. Both known
	// layouts expose all 8.
	NumChannels = 8

	// channelStride is the size of one channel's register block.
	channelStride = 0x10

	// bankOffset separates the two channel banks in the JH71x0 layout.
	bankOffset = 1 << 15

	// addressCells is the number of framework address cells declared
	// when a device registers its channels.
	addressCells = 3
)
