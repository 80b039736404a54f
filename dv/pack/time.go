package pack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JohnstonJ/dv"
)

// ColorFrame indicates whether a timecode's color-framing sequence is
// synchronized to the recording.
type ColorFrame uint8

const (
	ColorFrameUnsynchronized ColorFrame = 0
	ColorFrameSynchronized   ColorFrame = 1
)

// Polarity indicates the polarity-correction bit of a timecode.
type Polarity uint8

const (
	PolarityEven Polarity = 0
	PolarityOdd  Polarity = 1
)

// genericTimecode holds the fields shared by every timecode-shaped pack:
// TitleTimecode, AAUXRecordingTime, and VAUXRecordingTime.
//
// Wire layout (bytes 1-4 of the pack, all fields optional via the BCD
// all-ones sentinel):
//
//	byte1 (PC1): cf(1) | df(1) | frame_tens(2) | frame_units(4)
//	byte2 (PC2): pc-or-bgf0(1) | second_tens(3) | second_units(4)
//	byte3 (PC3): bgf0-or-bgf2(1) | minute_tens(3) | minute_units(4)
//	byte4 (PC4): bgf2-or-pc(1) | bgf1(1) | hour_tens(2) | hour_units(4)
//
// The polarity-correction bit and the two halves of the binary-group-flag
// field physically swap wire position between the two systems: on
// System525_60, PC goes in byte2 and the two halves of BGF go in byte3/
// byte4; on System625_50, BGF0 moves to byte2 and PC moves to byte4. This
// is a documented design requirement, not an implementation quirk.
type genericTimecode struct {
	Hour, Minute, Second, Frame *int
	DropFrame                   *bool
	ColorFrame                  *ColorFrame
	Polarity                    *Polarity
	BinaryGroupFlags            *uint8 // 3 bits, 0-7
}

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func colorPtr(v ColorFrame) *ColorFrame { return &v }
func polarityPtr(v Polarity) *Polarity  { return &v }
func u8Ptr(v uint8) *uint8       { return &v }

// parseBCDField decodes a tens/units BCD pair where an all-ones bit
// pattern (tens and units both saturated) signifies "absent". ok is false
// if the field is present but not legal BCD.
func parseBCDField(tens, tensWidth int, units int) (value int, absent, ok bool) {
	tensMax := (1 << uint(tensWidth)) - 1
	if tens == tensMax && units == 0xF {
		return 0, true, true
	}
	if tens > 9 || units > 9 {
		return 0, false, false
	}
	return tens*10 + units, false, true
}

func parseGenericTimecode(buf []byte, system dv.System) (genericTimecode, bool) {
	pc1, pc2, pc3, pc4 := buf[1], buf[2], buf[3], buf[4]

	cf := ColorFrame((pc1 >> 7) & 0x1)
	df := (pc1>>6)&0x1 == 1
	frameTens := int((pc1 >> 4) & 0x3)
	frameUnits := int(pc1 & 0xF)

	secondTens := int((pc2 >> 4) & 0x7)
	secondUnits := int(pc2 & 0xF)

	minuteTens := int((pc3 >> 4) & 0x7)
	minuteUnits := int(pc3 & 0xF)

	bgf1 := (pc4 >> 6) & 0x1
	hourTens := int((pc4 >> 4) & 0x3)
	hourUnits := int(pc4 & 0xF)

	var pc, bgf0, bgf2 uint8
	if system == dv.System525_60 {
		pc = (pc2 >> 7) & 0x1
		bgf0 = (pc3 >> 7) & 0x1
		bgf2 = (pc4 >> 7) & 0x1
	} else {
		bgf0 = (pc2 >> 7) & 0x1
		bgf2 = (pc3 >> 7) & 0x1
		pc = (pc4 >> 7) & 0x1
	}

	frame, frameAbsent, ok := parseBCDField(frameTens, 2, frameUnits)
	if !ok {
		return genericTimecode{}, false
	}
	second, secondAbsent, ok := parseBCDField(secondTens, 3, secondUnits)
	if !ok {
		return genericTimecode{}, false
	}
	minute, minuteAbsent, ok := parseBCDField(minuteTens, 3, minuteUnits)
	if !ok {
		return genericTimecode{}, false
	}
	hour, hourAbsent, ok := parseBCDField(hourTens, 2, hourUnits)
	if !ok {
		return genericTimecode{}, false
	}

	// Time must be entirely present or entirely absent.
	if frameAbsent != secondAbsent || secondAbsent != minuteAbsent || minuteAbsent != hourAbsent {
		return genericTimecode{}, false
	}

	g := genericTimecode{
		ColorFrame:        colorPtr(cf),
		DropFrame:         boolPtr(df),
		Polarity:          polarityPtr(Polarity(pc)),
		BinaryGroupFlags:  u8Ptr(bgf2<<2 | bgf1<<1 | bgf0),
	}
	if !frameAbsent {
		g.Frame = intPtr(frame)
		g.Second = intPtr(second)
		g.Minute = intPtr(minute)
		g.Hour = intPtr(hour)
	}
	return g, true
}

func (g genericTimecode) toBinary(system dv.System) [4]byte {
	var pc1, pc2, pc3, pc4 byte

	frameTens, frameUnits := 0x3, 0xF
	secondTens, secondUnits := 0x7, 0xF
	minuteTens, minuteUnits := 0x7, 0xF
	hourTens, hourUnits := 0x3, 0xF
	if g.Frame != nil {
		frameTens, frameUnits = *g.Frame/10, *g.Frame%10
		secondTens, secondUnits = *g.Second/10, *g.Second%10
		minuteTens, minuteUnits = *g.Minute/10, *g.Minute%10
		hourTens, hourUnits = *g.Hour/10, *g.Hour%10
	}

	var cf, df uint8
	if g.ColorFrame != nil {
		cf = uint8(*g.ColorFrame)
	}
	if g.DropFrame != nil && *g.DropFrame {
		df = 1
	}
	pc1 = cf<<7 | df<<6 | byte(frameTens)<<4 | byte(frameUnits)

	var pc, bgf0, bgf1, bgf2 uint8
	if g.Polarity != nil {
		pc = uint8(*g.Polarity)
	}
	if g.BinaryGroupFlags != nil {
		bgf := *g.BinaryGroupFlags
		bgf0 = bgf & 0x1
		bgf1 = (bgf >> 1) & 0x1
		bgf2 = (bgf >> 2) & 0x1
	}

	if system == dv.System525_60 {
		pc2 = pc<<7 | byte(secondTens)<<4 | byte(secondUnits)
		pc3 = bgf0<<7 | byte(minuteTens)<<4 | byte(minuteUnits)
		pc4 = bgf2<<7 | bgf1<<6 | byte(hourTens)<<4 | byte(hourUnits)
	} else {
		pc2 = bgf0<<7 | byte(secondTens)<<4 | byte(secondUnits)
		pc3 = bgf2<<7 | byte(minuteTens)<<4 | byte(minuteUnits)
		pc4 = pc<<7 | bgf1<<6 | byte(hourTens)<<4 | byte(hourUnits)
	}

	return [4]byte{pc1, pc2, pc3, pc4}
}

// validateTime checks range and drop-frame coherence rules shared by every
// timecode-shaped pack. maxFrame is the per-system frame ceiling
// (System.MaxFrameNumber()).
func (g genericTimecode) validateTime(system dv.System) string {
	if g.Frame == nil {
		// Time absent: every other time field must also be absent.
		if g.Hour != nil || g.Minute != nil || g.Second != nil {
			return "timecode hour/minute/second must be absent together with frame"
		}
		return ""
	}
	if *g.Frame < 0 || *g.Frame > system.MaxFrameNumber() {
		return "timecode frame number is out of range for the system"
	}
	if *g.Second < 0 || *g.Second > 59 {
		return "timecode second is out of range"
	}
	if *g.Minute < 0 || *g.Minute > 59 {
		return "timecode minute is out of range"
	}
	if *g.Hour < 0 || *g.Hour > 23 {
		return "timecode hour is out of range"
	}
	if g.DropFrame != nil && *g.DropFrame {
		if system != dv.System525_60 {
			return "drop-frame timecode is only legal on the 525-60 system"
		}
		if *g.Minute%10 != 0 && *g.Second == 0 && *g.Frame < 2 {
			return "drop-frame timecode has a frame number that should have been dropped"
		}
	}
	return ""
}

// timecodeTextFields returns the text-field schema shared by every
// timecode-shaped pack: the main "HH:MM:SS;FF"-style value plus the
// color_frame, polarity_correction, and binary_group_flags sub-fields.
func timecodeTextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"": {
			Parse: func(text string) map[string]any {
				hour, minute, second, frame, dropFrame, err := parseTimecodeText(text)
				if err != nil {
					panic(err)
				}
				return map[string]any{
					"Hour": hour, "Minute": minute, "Second": second,
					"Frame": frame, "DropFrame": dropFrame,
				}
			},
			Format: func(values map[string]any) string {
				return formatTimecodeText(
					asIntPtr(values["Hour"]), asIntPtr(values["Minute"]), asIntPtr(values["Second"]),
					asIntPtr(values["Frame"]), asBoolPtr(values["DropFrame"]))
			},
		},
		"color_frame": {
			Parse: func(text string) map[string]any {
				var v *ColorFrame
				switch text {
				case "":
				case "UNSYNCHRONIZED":
					v = colorPtr(ColorFrameUnsynchronized)
				case "SYNCHRONIZED":
					v = colorPtr(ColorFrameSynchronized)
				default:
					panic(fmt.Errorf("unrecognized color frame value %q", text))
				}
				return map[string]any{"ColorFrame": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["ColorFrame"].(*ColorFrame)
				if v == nil {
					return ""
				}
				if *v == ColorFrameSynchronized {
					return "SYNCHRONIZED"
				}
				return "UNSYNCHRONIZED"
			},
		},
		"polarity_correction": {
			Parse: func(text string) map[string]any {
				var v *Polarity
				switch text {
				case "":
				case "EVEN":
					v = polarityPtr(PolarityEven)
				case "ODD":
					v = polarityPtr(PolarityOdd)
				default:
					panic(fmt.Errorf("unrecognized polarity correction value %q", text))
				}
				return map[string]any{"Polarity": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["Polarity"].(*Polarity)
				if v == nil {
					return ""
				}
				if *v == PolarityOdd {
					return "ODD"
				}
				return "EVEN"
			},
		},
		"binary_group_flags": {
			Parse: func(text string) map[string]any {
				var v *uint8
				if text != "" {
					n, err := strconv.ParseUint(strings.TrimPrefix(text, "0x"), 16, 8)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading binary group flags %q: %w", text, err))
					}
					v = u8Ptr(uint8(n))
				}
				return map[string]any{"BinaryGroupFlags": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["BinaryGroupFlags"].(*uint8)
				if v == nil {
					return ""
				}
				return fmt.Sprintf("0x%X", *v)
			},
		},
	}
}

func asIntPtr(v any) *int {
	p, _ := v.(*int)
	return p
}

func asBoolPtr(v any) *bool {
	p, _ := v.(*bool)
	return p
}

// IncrementFrame advances the timecode by one frame, applying NTSC
// drop-frame skip-to-2 semantics when DropFrame is set. It is a no-op if
// the time is absent.
func (g *genericTimecode) IncrementFrame(system dv.System) {
	if g.Frame == nil {
		return
	}
	*g.Frame++
	if *g.Frame > system.MaxFrameNumber() {
		*g.Frame = 0
		*g.Second++
		if *g.Second > 59 {
			*g.Second = 0
			*g.Minute++
			if *g.Minute > 59 {
				*g.Minute = 0
				*g.Hour = (*g.Hour + 1) % 24
			}
		}
		if g.DropFrame != nil && *g.DropFrame && system == dv.System525_60 {
			if *g.Minute%10 != 0 && *g.Second == 0 {
				*g.Frame = 2
			}
		}
	}
}
