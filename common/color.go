package common

import (
	"fmt"
	"strings"

	"cogentcore.org/core/colors"
)

// Color is a linear RGB color with components in [0, 1].
type Color [3]float32

// ColorFromHex converts a packed 0xRRGGBB value into a Color.
func ColorFromHex(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255.0,
		float32((hex>>8)&0xff) / 255.0,
		float32(hex&0xff) / 255.0,
	}
}

const hexDigits = "0123456789abcdefABCDEF"

// ParseColor parses a CSS-style hex color ("#rgb", "#rrggbb" or "#rrggbbaa";
// the "#" may also be "0x" or absent) into a Color. Alpha is dropped.
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a hex color
func ParseColor(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "#")
	if len(raw) > 2 && (raw[:2] == "0x" || raw[:2] == "0X") {
		raw = raw[2:]
	}
	// FromHex scans with Sscanf and ignores scan failures, so reject stray characters first.
	if raw == "" || strings.Trim(raw, hexDigits) != "" {
		return Color{}, fmt.Errorf("invalid color %q: not a hex color", s)
	}
	c, err := colors.FromHex(raw)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}, nil
}

// Hex packs the color back into 0xRRGGBB, rounding each channel.
func (c Color) Hex() uint32 {
	var out uint32
	for _, ch := range c {
		out = out<<8 | uint32(Clamp(ch, 0, 1)*255+0.5)
	}
	return out
}
