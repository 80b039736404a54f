package pack

import "github.com/JohnstonJ/dv"

// genericBinaryGroup is an opaque 4-byte payload carried by the binary
// group packs. The standard defines no further structure for it; the
// codec preserves it verbatim.
type genericBinaryGroup struct {
	Value [4]byte
}

func (g genericBinaryGroup) validate() string { return "" }

// binaryGroupTextFields returns the single-field text-field schema shared
// by every binary-group pack: the raw 4 bytes formatted as "0xAABBCCDD".
func binaryGroupTextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"": {
			Parse: func(text string) map[string]any {
				b, err := parseHexBytesText(text, 4)
				if err != nil {
					panic(err)
				}
				var v *[4]byte
				if b != nil {
					var arr [4]byte
					copy(arr[:], b)
					v = &arr
				}
				return map[string]any{"Value": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["Value"].(*[4]byte)
				if v == nil {
					return ""
				}
				return formatHexBytesText(v[:])
			},
		},
	}
}

// TitleBinaryGroup is the 0x14 pack.
type TitleBinaryGroup struct{ genericBinaryGroup }

func (p *TitleBinaryGroup) PackType() Type            { return TypeTitleBinaryGroup }
func (p *TitleBinaryGroup) Validate(dv.System) string { return p.validate() }
func (p *TitleBinaryGroup) TextFields() map[string]FieldSchema { return binaryGroupTextFields() }
func (p *TitleBinaryGroup) ToBinary(dv.System) ([]byte, error) {
	return []byte{byte(TypeTitleBinaryGroup), p.Value[0], p.Value[1], p.Value[2], p.Value[3]}, nil
}
func parseTitleBinaryGroup(buf []byte, _ dv.System) Pack {
	return &TitleBinaryGroup{genericBinaryGroup{Value: [4]byte{buf[1], buf[2], buf[3], buf[4]}}}
}

// AAUXBinaryGroup is the 0x54 pack.
type AAUXBinaryGroup struct{ genericBinaryGroup }

func (p *AAUXBinaryGroup) PackType() Type            { return TypeAAUXBinaryGroup }
func (p *AAUXBinaryGroup) Validate(dv.System) string { return p.validate() }
func (p *AAUXBinaryGroup) TextFields() map[string]FieldSchema { return binaryGroupTextFields() }
func (p *AAUXBinaryGroup) ToBinary(dv.System) ([]byte, error) {
	return []byte{byte(TypeAAUXBinaryGroup), p.Value[0], p.Value[1], p.Value[2], p.Value[3]}, nil
}
func parseAAUXBinaryGroup(buf []byte, _ dv.System) Pack {
	return &AAUXBinaryGroup{genericBinaryGroup{Value: [4]byte{buf[1], buf[2], buf[3], buf[4]}}}
}

// VAUXBinaryGroup is the 0x64 pack.
type VAUXBinaryGroup struct{ genericBinaryGroup }

func (p *VAUXBinaryGroup) PackType() Type            { return TypeVAUXBinaryGroup }
func (p *VAUXBinaryGroup) Validate(dv.System) string { return p.validate() }
func (p *VAUXBinaryGroup) TextFields() map[string]FieldSchema { return binaryGroupTextFields() }
func (p *VAUXBinaryGroup) ToBinary(dv.System) ([]byte, error) {
	return []byte{byte(TypeVAUXBinaryGroup), p.Value[0], p.Value[1], p.Value[2], p.Value[3]}, nil
}
func parseVAUXBinaryGroup(buf []byte, _ dv.System) Pack {
	return &VAUXBinaryGroup{genericBinaryGroup{Value: [4]byte{buf[1], buf[2], buf[3], buf[4]}}}
}
