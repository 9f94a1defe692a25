// Package pixel synthesizes the flat-color tracking images and handles
// the packed 32-bit color representation used throughout the service.
package pixel

// DefaultColor is the fully transparent black used when a request carries
// no explicit color.
var DefaultColor = [4]uint8{0, 0, 0, 0}

// Pack combines four 8-bit channels into a single unsigned 32-bit value
// (red in the top byte, alpha in the bottom). Channels must already be in
// [0,255]; callers clamp before packing.
func Pack(red, green, blue, alpha uint8) uint32 {
	return uint32(red)<<24 | uint32(green)<<16 | uint32(blue)<<8 | uint32(alpha)
}

// Unpack extracts the four 8-bit channels from a packed color.
func Unpack(color uint32) (red, green, blue, alpha uint8) {
	red = uint8(color >> 24)
	green = uint8(color >> 16)
	blue = uint8(color >> 8)
	alpha = uint8(color)
	return
}
