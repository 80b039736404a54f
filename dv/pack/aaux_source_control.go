package pack

import (
	"fmt"
	"strconv"

	"github.com/JohnstonJ/dv"
)

// AAUXRecordingMode is the 3-bit recording-mode field. Only a sparse set
// of values is defined by the standard; the others (0, 2, 6) are not
// legal and cause a parse failure.
type AAUXRecordingMode uint8

const (
	AAUXRecordingModeOriginal          AAUXRecordingMode = 1
	AAUXRecordingModeOneChannelInsert  AAUXRecordingMode = 3
	AAUXRecordingModeFourChannelInsert AAUXRecordingMode = 4
	AAUXRecordingModeTwoChannelInsert  AAUXRecordingMode = 5
	AAUXRecordingModeInvalid           AAUXRecordingMode = 7
)

func aauxRecordingModeLegal(v uint8) bool {
	switch AAUXRecordingMode(v) {
	case AAUXRecordingModeOriginal, AAUXRecordingModeOneChannelInsert,
		AAUXRecordingModeFourChannelInsert, AAUXRecordingModeTwoChannelInsert,
		AAUXRecordingModeInvalid:
		return true
	default:
		return false
	}
}

// InsertChannel is the 3-bit insert-channel field; 0x7 means "unknown".
type InsertChannel uint8

const (
	InsertChannel1       InsertChannel = 0x0
	InsertChannel2       InsertChannel = 0x1
	InsertChannel3       InsertChannel = 0x2
	InsertChannel4       InsertChannel = 0x3
	InsertChannels1And2  InsertChannel = 0x4
	InsertChannels3And4  InsertChannel = 0x5
	InsertChannelsAll1To4 InsertChannel = 0x6
)

// AAUXSourceControl is the 0x51 pack.
//
// Wire layout:
//
//	PC1: cgms(2) | isr(2) | cmp(2) | ss(2)
//	PC2: recStart(1,inverted) | recEnd(1,inverted) | recMode(3) | insertChannel(3)
//	PC3: forward(1) | speed(7)
//	PC4: one(1) | genreCategory(7)
type AAUXSourceControl struct {
	CopyProtection   *CopyProtection
	InputSource      *InputSource
	CompressionCount *CompressionCount
	SourceSituation  *SourceSituation
	RecordStart      bool
	RecordEnd        bool
	RecordingMode    AAUXRecordingMode
	InsertChannel    *InsertChannel
	Forward          bool
	PlaybackSpeed    *float64
	GenreCategory    uint8
}

func (p *AAUXSourceControl) PackType() Type { return TypeAAUXSourceControl }

func (p *AAUXSourceControl) Validate(dv.System) string {
	if !aauxRecordingModeLegal(uint8(p.RecordingMode)) {
		return "AAUXSourceControl recording mode is not a legal value"
	}
	if p.GenreCategory > 0x7F {
		return "AAUXSourceControl genre category is out of range"
	}
	return ""
}

func (p *AAUXSourceControl) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("AAUXSourceControl: %s", msg)
	}

	var cgms, isr, cmp uint8 = 0x3, 0x3, 0x3
	if p.CopyProtection != nil {
		cgms = uint8(*p.CopyProtection)
	}
	if p.InputSource != nil {
		isr = uint8(*p.InputSource)
	}
	if p.CompressionCount != nil {
		cmp = uint8(*p.CompressionCount)
	}
	ss := to2Bit((*uint8)(nil))
	if p.SourceSituation != nil {
		v := uint8(*p.SourceSituation)
		ss = to2Bit(&v)
	}
	pc1 := cgms<<6 | isr<<4 | cmp<<2 | ss

	var recSt, recEnd byte
	if !p.RecordStart {
		recSt = 1
	}
	if !p.RecordEnd {
		recEnd = 1
	}
	insertCh := byte(0x7)
	if p.InsertChannel != nil {
		insertCh = byte(*p.InsertChannel)
	}
	pc2 := recSt<<7 | recEnd<<6 | byte(p.RecordingMode)<<3 | insertCh

	var forward byte
	if p.Forward {
		forward = 1
	}
	speedBits := byte(0x7F)
	if p.PlaybackSpeed != nil {
		if bits, ok := playbackSpeedToBits(*p.PlaybackSpeed); ok {
			speedBits = bits
		}
	}
	pc3 := forward<<7 | speedBits&0x7F

	pc4 := byte(1)<<7 | p.GenreCategory&0x7F

	return []byte{byte(TypeAAUXSourceControl), pc1, pc2, pc3, pc4}, nil
}

// aauxRecordingModeNames maps AAUXRecordingMode to its CSV text
// representation.
var aauxRecordingModeNames = map[AAUXRecordingMode]string{
	AAUXRecordingModeOriginal:          "ORIGINAL",
	AAUXRecordingModeOneChannelInsert:  "ONE_CHANNEL_INSERT",
	AAUXRecordingModeFourChannelInsert: "FOUR_CHANNEL_INSERT",
	AAUXRecordingModeTwoChannelInsert:  "TWO_CHANNEL_INSERT",
	AAUXRecordingModeInvalid:           "INVALID",
}

func aauxRecordingModeByName(name string) (AAUXRecordingMode, bool) {
	for v, n := range aauxRecordingModeNames {
		if n == name {
			return v, true
		}
	}
	return 0, false
}

// TextFields returns the CSV text-field schema for AAUXSourceControl:
// recording mode, genre category, and playback speed.
func (p *AAUXSourceControl) TextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"recording_mode": {
			Parse: func(text string) map[string]any {
				v, ok := aauxRecordingModeByName(text)
				if !ok {
					panic(fmt.Errorf("unrecognized recording mode value %q", text))
				}
				return map[string]any{"RecordingMode": v}
			},
			Format: func(values map[string]any) string {
				return aauxRecordingModeNames[values["RecordingMode"].(AAUXRecordingMode)]
			},
		},
		"genre_category": {
			Parse: func(text string) map[string]any {
				var v uint8
				if text != "" {
					n, err := strconv.ParseUint(text, 0, 8)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading genre category %q: %w", text, err))
					}
					v = uint8(n)
				}
				return map[string]any{"GenreCategory": v}
			},
			Format: func(values map[string]any) string {
				return fmt.Sprintf("0x%X", values["GenreCategory"].(uint8))
			},
		},
		"playback_speed": {
			Parse: func(text string) map[string]any {
				var v *float64
				if text != "" {
					f, err := strconv.ParseFloat(text, 64)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading playback speed %q: %w", text, err))
					}
					v = &f
				}
				return map[string]any{"PlaybackSpeed": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["PlaybackSpeed"].(*float64)
				if v == nil {
					return ""
				}
				return strconv.FormatFloat(*v, 'g', -1, 64)
			},
		},
	}
}

func parseAAUXSourceControl(buf []byte, system dv.System) Pack {
	pc1, pc2, pc3, pc4 := buf[1], buf[2], buf[3], buf[4]

	if (pc4>>7)&0x1 != 1 {
		return nil
	}

	cgms := nullable2Bit((pc1 >> 6) & 0x3)
	isr := nullable2Bit((pc1 >> 4) & 0x3)
	cmp := nullable2Bit((pc1 >> 2) & 0x3)
	ss := nullable2Bit(pc1 & 0x3)

	recMode := (pc2 >> 3) & 0x7
	if !aauxRecordingModeLegal(recMode) {
		return nil
	}
	insertChRaw := pc2 & 0x7
	var insertCh *InsertChannel
	if insertChRaw != 0x7 {
		ic := InsertChannel(insertChRaw)
		insertCh = &ic
	}

	speedBits := pc3 & 0x7F
	speed := playbackSpeeds[speedBits]

	p := &AAUXSourceControl{
		RecordStart:   (pc2>>7)&0x1 == 0,
		RecordEnd:     (pc2>>6)&0x1 == 0,
		RecordingMode: AAUXRecordingMode(recMode),
		InsertChannel: insertCh,
		Forward:       (pc3>>7)&0x1 == 1,
		PlaybackSpeed: speed,
		GenreCategory: pc4 & 0x7F,
	}
	if cgms != nil {
		v := CopyProtection(*cgms)
		p.CopyProtection = &v
	}
	if isr != nil {
		v := InputSource(*isr)
		p.InputSource = &v
	}
	if cmp != nil {
		v := CompressionCount(*cmp)
		p.CompressionCount = &v
	}
	if ss != nil {
		v := SourceSituation(*ss)
		p.SourceSituation = &v
	}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}
