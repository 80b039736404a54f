package pack

import (
	"fmt"
	"strconv"

	"github.com/JohnstonJ/dv"
)

// SourceCode identifies how the recorded video was originally captured.
// Its wire encoding is unusual: the 2-bit source_code field is
// disambiguated further by sentinel values of the tv_channel BCD digits
// (all-0xE or all-0xF), per IEC 61834-4:1998 Table 9.
type SourceCode uint8

const (
	SourceCodeCamera          SourceCode = iota
	SourceCodeLineMUSE
	SourceCodeLine
	SourceCodeCable
	SourceCodePrerecordedTape
	SourceCodeTuner
)

// ColorFramesID is the 2-bit CLF field.
type ColorFramesID uint8

const (
	ColorFramesIDAOr1_2Field ColorFramesID = 0x0
	ColorFramesIDBOr3_4Field ColorFramesID = 0x1
	ColorFramesID5_6Field    ColorFramesID = 0x2
	ColorFramesID7_8Field    ColorFramesID = 0x3
)

// VAUXSource is the 0x60 pack.
//
// Wire layout:
//
//	byte1: tvChannelTens(4) | tvChannelUnits(4)
//	byte2: blackAndWhite(1) | en(1) | colorFramesID(2) | tvChannelHundreds(4)
//	byte3: sourceCodeRaw(2) | fieldCount(1) | sourceType(5)
//	byte4: tunerCategory(8)
type VAUXSource struct {
	// SourceCode is nil for the (rare) "unknown" wire pattern
	// (sourceCodeRaw == 0x3 with all tv_channel digits == 0xF).
	SourceCode      *SourceCode
	TVChannel       *int // 0-999, present only for Cable/Tuner
	BlackAndWhite   bool
	EN              bool // wire bit of undocumented purpose, preserved verbatim
	ColorFramesID   ColorFramesID
	FieldCount      int // 50 or 60
	SourceType      SourceType
	TunerCategory   *uint8 // present only when SourceCode == Tuner
}

func (p *VAUXSource) PackType() Type { return TypeVAUXSource }

func (p *VAUXSource) Validate(dv.System) string {
	if p.FieldCount != 50 && p.FieldCount != 60 {
		return "VAUXSource field count must be 50 or 60"
	}
	if p.SourceCode != nil && (*p.SourceCode == SourceCodeCable || *p.SourceCode == SourceCodeTuner) {
		if p.TVChannel == nil || *p.TVChannel < 0 || *p.TVChannel > 999 {
			return "VAUXSource TV channel is required and must be 0-999 for cable/tuner sources"
		}
	}
	isTuner := p.SourceCode != nil && *p.SourceCode == SourceCodeTuner
	if isTuner != (p.TunerCategory != nil) {
		return "VAUXSource tuner category must be present if and only if the source is a tuner"
	}
	return ""
}

func bcdDigits3(v int) (hundreds, tens, units byte) {
	return byte(v / 100 % 10), byte(v / 10 % 10), byte(v % 10)
}

func (p *VAUXSource) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("VAUXSource: %s", msg)
	}

	var hundreds, tens, units byte = 0xF, 0xF, 0xF
	var sourceCodeRaw byte
	switch {
	case p.SourceCode == nil:
		sourceCodeRaw = 0x3
	case *p.SourceCode == SourceCodeCamera:
		sourceCodeRaw = 0x0
	case *p.SourceCode == SourceCodeLineMUSE:
		sourceCodeRaw = 0x1
		hundreds, tens, units = 0xE, 0xE, 0xE
	case *p.SourceCode == SourceCodeLine:
		sourceCodeRaw = 0x1
	case *p.SourceCode == SourceCodeCable:
		sourceCodeRaw = 0x2
		hundreds, tens, units = bcdDigits3(*p.TVChannel)
	case *p.SourceCode == SourceCodePrerecordedTape:
		sourceCodeRaw = 0x3
		hundreds, tens, units = 0xE, 0xE, 0xE
	case *p.SourceCode == SourceCodeTuner:
		sourceCodeRaw = 0x3
		hundreds, tens, units = bcdDigits3(*p.TVChannel)
	}

	var bw, en byte
	if p.BlackAndWhite {
		bw = 1
	}
	if p.EN {
		en = 1
	}

	var fc byte
	if p.FieldCount == 50 {
		fc = 1
	}

	tunerCategory := byte(0xFF)
	if p.TunerCategory != nil {
		tunerCategory = *p.TunerCategory
	}

	b1 := tens<<4 | units
	b2 := bw<<7 | en<<6 | byte(p.ColorFramesID)<<4 | hundreds
	b3 := sourceCodeRaw<<6 | fc<<5 | byte(p.SourceType)&0x1F
	b4 := tunerCategory

	return []byte{byte(TypeVAUXSource), b1, b2, b3, b4}, nil
}

// sourceCodeNames maps SourceCode to its CSV text representation.
var sourceCodeNames = map[SourceCode]string{
	SourceCodeCamera:          "CAMERA",
	SourceCodeLineMUSE:        "LINE_MUSE",
	SourceCodeLine:            "LINE",
	SourceCodeCable:           "CABLE",
	SourceCodePrerecordedTape: "PRERECORDED_TAPE",
	SourceCodeTuner:           "TUNER",
}

func sourceCodeByName(name string) (SourceCode, bool) {
	for v, n := range sourceCodeNames {
		if n == name {
			return v, true
		}
	}
	return 0, false
}

// TextFields returns the CSV text-field schema for VAUXSource: source
// code, TV channel, tuner category, and field count.
func (p *VAUXSource) TextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"source_code": {
			Parse: func(text string) map[string]any {
				var v *SourceCode
				if text != "" {
					sc, ok := sourceCodeByName(text)
					if !ok {
						panic(fmt.Errorf("unrecognized source code value %q", text))
					}
					v = &sc
				}
				return map[string]any{"SourceCode": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["SourceCode"].(*SourceCode)
				if v == nil {
					return ""
				}
				return sourceCodeNames[*v]
			},
		},
		"tv_channel": {
			Parse: func(text string) map[string]any {
				v, err := parseIntText(text)
				if err != nil {
					panic(err)
				}
				return map[string]any{"TVChannel": v}
			},
			Format: func(values map[string]any) string {
				return formatIntText(asIntPtr(values["TVChannel"]))
			},
		},
		"tuner_category": {
			Parse: func(text string) map[string]any {
				var v *uint8
				if text != "" {
					n, err := strconv.ParseUint(text, 10, 8)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading tuner category %q: %w", text, err))
					}
					u := uint8(n)
					v = &u
				}
				return map[string]any{"TunerCategory": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["TunerCategory"].(*uint8)
				if v == nil {
					return ""
				}
				return strconv.Itoa(int(*v))
			},
		},
		"field_count": {
			Parse: func(text string) map[string]any {
				v, err := strconv.Atoi(text)
				if err != nil {
					panic(fmt.Errorf("parsing error while reading field count %q: %w", text, err))
				}
				return map[string]any{"FieldCount": v}
			},
			Format: func(values map[string]any) string {
				return strconv.Itoa(values["FieldCount"].(int))
			},
		},
	}
}

func parseVAUXSource(buf []byte, system dv.System) Pack {
	b1, b2, b3, b4 := buf[1], buf[2], buf[3], buf[4]

	tens := (b1 >> 4) & 0xF
	units := b1 & 0xF
	hundreds := b2 & 0xF
	sourceCodeRaw := (b3 >> 6) & 0x3
	fieldCount := 60
	if (b3>>5)&0x1 == 1 {
		fieldCount = 50
	}
	sourceType := SourceType(b3 & 0x1F)
	tunerCategory := b4

	isE := hundreds == 0xE && tens == 0xE && units == 0xE
	isF := hundreds == 0xF && tens == 0xF && units == 0xF
	numeric := hundreds <= 9 && tens <= 9 && units <= 9

	p := &VAUXSource{
		BlackAndWhite: (b2>>7)&0x1 == 1,
		EN:            (b2>>6)&0x1 == 1,
		ColorFramesID: ColorFramesID((b2 >> 4) & 0x3),
		FieldCount:    fieldCount,
		SourceType:    sourceType,
	}

	switch sourceCodeRaw {
	case 0x0:
		if !isF {
			return nil
		}
		sc := SourceCodeCamera
		p.SourceCode = &sc
	case 0x1:
		sc := SourceCodeLine
		if isE {
			sc = SourceCodeLineMUSE
		} else if !isF {
			return nil
		}
		p.SourceCode = &sc
	case 0x2:
		if !numeric {
			return nil
		}
		sc := SourceCodeCable
		p.SourceCode = &sc
		ch := int(hundreds)*100 + int(tens)*10 + int(units)
		p.TVChannel = &ch
	case 0x3:
		switch {
		case isE:
			sc := SourceCodePrerecordedTape
			p.SourceCode = &sc
		case isF:
			p.SourceCode = nil
		default:
			if !numeric {
				return nil
			}
			sc := SourceCodeTuner
			p.SourceCode = &sc
			ch := int(hundreds)*100 + int(tens)*10 + int(units)
			p.TVChannel = &ch
			tc := tunerCategory
			p.TunerCategory = &tc
		}
	}

	if p.SourceCode == nil || *p.SourceCode != SourceCodeTuner {
		if tunerCategory != 0xFF {
			return nil
		}
	}

	if p.Validate(system) != "" {
		return nil
	}
	return p
}
