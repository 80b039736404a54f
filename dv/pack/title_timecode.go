package pack

import (
	"fmt"

	"github.com/JohnstonJ/dv"
)

// BlankFlag indicates whether a discontinuity in the absolute track number
// exists prior to the current track. It physically overlaps the
// TitleTimecode color-frame bit: both are carried by the same wire bit, so
// the two must always agree.
type BlankFlag uint8

const (
	BlankFlagDiscontinuous BlankFlag = 0
	BlankFlagContinuous    BlankFlag = 1
)

// TitleTimecode is the 0x13 pack: SMPTE timecode plus the blank flag that
// shares its color-frame bit.
type TitleTimecode struct {
	genericTimecode
	BlankFlag *BlankFlag
}

func (p *TitleTimecode) PackType() Type { return TypeTitleTimecode }

func (p *TitleTimecode) Validate(system dv.System) string {
	if msg := p.validateTime(system); msg != "" {
		return msg
	}
	if (p.BlankFlag == nil) != (p.ColorFrame == nil) {
		return "blank flag and color frame must be present or absent together"
	}
	if p.BlankFlag != nil && uint8(*p.BlankFlag) != uint8(*p.ColorFrame) {
		return "blank flag must equal color frame, since they share the same wire bit"
	}
	return ""
}

// TextFields returns the CSV text-field schema for TitleTimecode: the
// fields shared by every timecode pack plus blank_flag, which physically
// overlaps color_frame on the wire.
func (p *TitleTimecode) TextFields() map[string]FieldSchema {
	fields := timecodeTextFields()
	fields["blank_flag"] = FieldSchema{
		Parse: func(text string) map[string]any {
			var v *BlankFlag
			switch text {
			case "":
			case "DISCONTINUOUS":
				bf := BlankFlagDiscontinuous
				v = &bf
			case "CONTINUOUS":
				bf := BlankFlagContinuous
				v = &bf
			default:
				panic(fmt.Errorf("unrecognized blank flag value %q", text))
			}
			return map[string]any{"BlankFlag": v}
		},
		Format: func(values map[string]any) string {
			v, _ := values["BlankFlag"].(*BlankFlag)
			if v == nil {
				return ""
			}
			if *v == BlankFlagContinuous {
				return "CONTINUOUS"
			}
			return "DISCONTINUOUS"
		},
	}
	return fields
}

func parseTitleTimecode(buf []byte, system dv.System) Pack {
	g, ok := parseGenericTimecode(buf, system)
	if !ok {
		return nil
	}
	p := &TitleTimecode{genericTimecode: g}
	if g.ColorFrame != nil {
		bf := BlankFlag(*g.ColorFrame)
		p.BlankFlag = &bf
	}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}

func (p *TitleTimecode) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("TitleTimecode: %s", msg)
	}
	b := p.genericTimecode.toBinary(system)
	return []byte{byte(TypeTitleTimecode), b[0], b[1], b[2], b[3]}, nil
}
