package picker

import "github.com/ironsheep/pixel-picker-mcp/internal/imaging"

// SlotCount is the fixed number of color slots.
const SlotCount = 10

// Palette is a fixed array of SlotCount optional colors. Colors are stored by
// value, so saving a hover sample never aliases it.
type Palette struct {
	slots [SlotCount]*imaging.PixelColor
}

// Set stores a copy of c in slot i. Returns false if i is out of range.
func (p *Palette) Set(i int, c imaging.PixelColor) bool {
	if i < 0 || i >= SlotCount {
		return false
	}
	p.slots[i] = &c
	return true
}

// Clear empties slot i. Returns false if i is out of range.
func (p *Palette) Clear(i int) bool {
	if i < 0 || i >= SlotCount {
		return false
	}
	p.slots[i] = nil
	return true
}

// Reset empties every slot.
func (p *Palette) Reset() {
	p.slots = [SlotCount]*imaging.PixelColor{}
}

// Get returns the color in slot i.
func (p *Palette) Get(i int) (imaging.PixelColor, bool) {
	if i < 0 || i >= SlotCount || p.slots[i] == nil {
		return imaging.PixelColor{}, false
	}
	return *p.slots[i], true
}

// Slots returns a snapshot of all slots; empty slots are nil.
func (p *Palette) Slots() []*imaging.PixelColor {
	out := make([]*imaging.PixelColor, SlotCount)
	for i, c := range p.slots {
		if c != nil {
			cp := *c
			out[i] = &cp
		}
	}
	return out
}

// Filled returns the non-empty slots in slot order.
func (p *Palette) Filled() []imaging.PixelColor {
	var out []imaging.PixelColor
	for _, c := range p.slots {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}
