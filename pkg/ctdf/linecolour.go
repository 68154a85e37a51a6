package ctdf

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var namedLineColours = []struct {
	keywords *regexp.Regexp
	hex      string
}{
	{regexp.MustCompile(`(?i)グリーン|緑|green`), "#16a34a"},
	{regexp.MustCompile(`(?i)ブルー|青|blue`), "#2563eb"},
	{regexp.MustCompile(`(?i)オレンジ|橙|orange`), "#f97316"},
	{regexp.MustCompile(`(?i)イエロー|黄|yellow`), "#eab308"},
	{regexp.MustCompile(`(?i)パープル|紫|purple`), "#a855f7"},
	{regexp.MustCompile(`(?i)レッド|赤|red`), "#ef4444"},
	{regexp.MustCompile(`(?i)ピンク|pink`), "#ec4899"},
	{regexp.MustCompile(`(?i)ブラウン|茶|brown`), "#92400e"},
	{regexp.MustCompile(`(?i)ブラック|黒|black`), "#111827"},
}

// LineColour picks a display colour for a line. The feed's own route_color wins,
// then a colour named in the line name, then a stable colour hashed from the name.
func LineColour(line Line) string {
	if colour := strings.TrimPrefix(strings.TrimSpace(line.Colour), "#"); colour != "" {
		return "#" + strings.ToLower(colour)
	}

	for _, named := range namedLineColours {
		if named.keywords.MatchString(line.Name) {
			return named.hex
		}
	}

	hue := float64(hashLineName(line.Name) % 360)
	return hslToHex(hue, 0.65, 0.52)
}

// 31-multiplier string hash over UTF-16 code units so colours match the web client
func hashLineName(name string) uint32 {
	var hash int32
	for _, unit := range utf16Units(name) {
		hash = (hash << 5) - hash + int32(unit)
	}
	return uint32(hash)
}

func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
		} else {
			units = append(units, uint16(r))
		}
	}
	return units
}

func hslToHex(h float64, s float64, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r1, g1, b1 float64
	switch {
	case hp < 1:
		r1, g1, b1 = c, x, 0
	case hp < 2:
		r1, g1, b1 = x, c, 0
	case hp < 3:
		r1, g1, b1 = 0, c, x
	case hp < 4:
		r1, g1, b1 = 0, x, c
	case hp < 5:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}

	m := l - c/2
	return fmt.Sprintf("#%02x%02x%02x", clamp255(math.Round((r1+m)*255)), clamp255(math.Round((g1+m)*255)), clamp255(math.Round((b1+m)*255)))
}

func clamp255(value float64) int {
	return int(math.Max(0, math.Min(255, value)))
}
