package ocpwm

// Channel addressing strategies. A strategy is a pure function from channel
// index to the offset of that channel's register block within the controller
// window. The strategy is selected once, at match time, so the translator
// stays layout-agnostic and new SoC variants only need a new function here.
//
// Callers guarantee 0 <= channel < NumChannels; the exported entry points
// range-check before dispatching, so no check is repeated here.

// ChannelAddressing computes a channel's register block offset.
type ChannelAddressing func(channel int) uint32

// identityAddressing is the generic PTC layout: consecutive 16 byte blocks
// from the controller base.
func identityAddressing(channel int) uint32 {
	return uint32(channel) * channelStride
}

// bankedAddressing is the StarFive JH71x0 layout. The SoC physically
// segments the channels into two groups of four: channels 0-3 sit at the
// generic offsets, channels 4-7 repeat the same strides in a second bank
// 32 KiB above the base.
func bankedAddressing(channel int) uint32 {
	if channel > 3 {
		return uint32(channel%4)*channelStride + bankOffset
	}
	return uint32(channel) * channelStride
}
