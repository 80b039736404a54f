package pack

import "github.com/JohnstonJ/dv"

// NoInfo is the 0xFF pack: all five bytes are 0xFF, representing a
// deliberately blank slot (as opposed to a tape dropout, which this
// codec treats as a nil Pack). Parsing discards any non-0xFF trailing
// bytes rather than failing, since a near-blank pack is more likely a
// minor dropout within an otherwise-intentional NoInfo slot than a
// different pack type we don't recognize.
type NoInfo struct{}

func (p *NoInfo) PackType() Type            { return TypeNoInfo }
func (p *NoInfo) Validate(dv.System) string { return "" }
func (p *NoInfo) ToBinary(dv.System) ([]byte, error) {
	return []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, nil
}

func parseNoInfo(buf []byte, _ dv.System) Pack {
	return &NoInfo{}
}

// TextFields returns nil: NoInfo carries no values, so it has no text
// fields to round-trip through the CSV layer.
func (p *NoInfo) TextFields() map[string]FieldSchema { return nil }

// Unknown is the catch-all variant for a pack type byte this codec does
// not recognize. Unlike every other variant, it does not assert buf[0]
// against a fixed type byte, and it preserves all 5 bytes verbatim on
// round-trip rather than normalizing them.
type Unknown struct {
	raw [5]byte
}

func (p *Unknown) PackType() Type            { return Type(p.raw[0]) }
func (p *Unknown) Validate(dv.System) string { return "" }
func (p *Unknown) ToBinary(dv.System) ([]byte, error) {
	out := make([]byte, 5)
	copy(out, p.raw[:])
	return out, nil
}

func parseUnknown(buf []byte, _ dv.System) Pack {
	u := &Unknown{}
	copy(u.raw[:], buf)
	return u
}

// TextFields returns nil: an Unknown pack's meaning isn't known, so it has
// no named fields to expose to the CSV layer.
func (p *Unknown) TextFields() map[string]FieldSchema { return nil }
