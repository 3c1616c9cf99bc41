package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB color in canonical "#rrggbb" form.
type Color string

// ParseColor accepts "#rrggbb", "rrggbb" or the short "#rgb" form in any case and
// returns the canonical lowercase value.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color("#" + strings.ToLower(hex)), nil
}

// RGBColor builds a Color from its components.
func RGBColor(r, g, b uint8) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// RGB returns the components. An invalid color yields black.
func (c Color) RGB() (r, g, b uint8) {
	v, err := strconv.ParseUint(strings.TrimPrefix(string(c), "#"), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

func (c Color) String() string { return string(c) }
