// Package export serializes sampled colors into the delta-encoded text block
// consumed by external scripting tools.
//
// The script format is eight lines joined with "\n" and without a trailing
// newline. Every line starts with exactly eight spaces and ends in a comma.
// With the indent left out, the lines are:
//
//	x1,
//	y1,
//	x2,
//	y2,
//	"BBGGRR",
//	"dx|dy|BBGGRR,dx|dy|BBGGRR,...",
//	0,
//	0.9,
//
// The first color is the anchor and is written as a bare BGR hex. Every other
// color is written as its offset from the anchor (not from the previous
// color) followed by its BGR hex. Consumers parse the lines by position, so
// the layout must not change.
package export

import (
	"strconv"
	"strings"

	"github.com/ironsheep/pixel-picker-mcp/internal/imaging"
)

const indent = "        "

// Script renders a region and its colors in the script format. It returns ""
// when region is nil or colors is empty.
func Script(region *imaging.Region, colors []imaging.PixelColor) string {
	if region == nil || len(colors) == 0 {
		return ""
	}
	anchor, deltas := encodeColors(colors)

	return joinLines(
		strconv.Itoa(region.X1)+",",
		strconv.Itoa(region.Y1)+",",
		strconv.Itoa(region.X2)+",",
		strconv.Itoa(region.Y2)+",",
		strconv.Quote(anchor)+",",
		strconv.Quote(deltas)+",",
		"0,",
		"0.9,",
	)
}

// Colors renders only the two quoted color lines of the script format. It
// needs no region and returns "" when colors is empty.
func Colors(colors []imaging.PixelColor) string {
	if len(colors) == 0 {
		return ""
	}
	anchor, deltas := encodeColors(colors)

	return joinLines(
		strconv.Quote(anchor)+",",
		strconv.Quote(deltas)+",",
	)
}

func encodeColors(colors []imaging.PixelColor) (anchor, deltas string) {
	first := colors[0]

	parts := make([]string, 0, len(colors)-1)
	for _, c := range colors[1:] {
		parts = append(parts, strconv.Itoa(c.X-first.X)+"|"+strconv.Itoa(c.Y-first.Y)+"|"+bareHex(c.BGRHex))
	}
	return bareHex(first.BGRHex), strings.Join(parts, ",")
}

func bareHex(hex string) string {
	return strings.Replace(hex, "#", "", 1)
}

func joinLines(lines ...string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteString(line)
	}
	return b.String()
}
