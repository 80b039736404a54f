package pack

import (
	"fmt"
	"strconv"

	"github.com/JohnstonJ/dv"
)

func audioSampleMinMax(system dv.System, hz int) (min, max int, ok bool) {
	table, ok := audioSampleRange[system == dv.System525_60]
	if !ok {
		return 0, 0, false
	}
	r, ok := table[hz]
	if !ok {
		return 0, 0, false
	}
	return r[0], r[1], true
}

// AAUXSource is the 0x50 pack: audio source parameters for one audio
// block.
//
// Wire layout:
//
//	PC1: lockedMode(1) | one_1(1) | afSize(6)
//	PC2: stereoMode(1) | channelCount(2) | blockPairing(1) | audioMode(4)
//	PC3: one_2(1) | multiLanguage(1) | fieldCount(1) | sourceType(5)
//	PC4: emphasisOn(1) | emphasisTimeConstant(1) | sampleFrequency(2) | quantization(4)
type AAUXSource struct {
	SampleFrequency      SampleFrequency
	Quantization         AudioQuantization
	AudioSamplesPerFrame int
	Locked               bool
	Stereo               bool
	ChannelCount         int // 1 or 2
	BlockPairing         bool
	AudioMode            uint8 // raw 4-bit value
	MultiLanguage        bool
	SourceType           SourceType
	FieldCount           int // 50 or 60
	EmphasisOn           bool
	EmphasisTimeConstant bool
}

func (p *AAUXSource) PackType() Type { return TypeAAUXSource }

func (p *AAUXSource) Validate(system dv.System) string {
	min, max, ok := audioSampleMinMax(system, p.SampleFrequency.Hz())
	if !ok {
		return "AAUXSource sample frequency is not valid for this system"
	}
	if p.AudioSamplesPerFrame < min || p.AudioSamplesPerFrame > max {
		return "AAUXSource audio samples per frame is out of range"
	}
	if p.ChannelCount != 1 && p.ChannelCount != 2 {
		return "AAUXSource channel count must be 1 or 2"
	}
	if p.FieldCount != 50 && p.FieldCount != 60 {
		return "AAUXSource field count must be 50 or 60"
	}
	return ""
}

func (p *AAUXSource) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("AAUXSource: %s", msg)
	}
	min, _, _ := audioSampleMinMax(system, p.SampleFrequency.Hz())
	afSize := p.AudioSamplesPerFrame - min

	var lf, chn, pa, sm byte
	if !p.Locked {
		lf = 1
	}
	if p.Stereo {
		sm = 1
	}
	if p.ChannelCount == 2 {
		chn = 1
	}
	if p.BlockPairing {
		pa = 1
	}
	pc1 := lf<<7 | 1<<6 | byte(afSize&0x3F)
	pc2 := sm<<7 | chn<<5 | pa<<4 | p.AudioMode&0xF

	var ml, fc byte
	if !p.MultiLanguage {
		ml = 1
	}
	if p.FieldCount == 50 {
		fc = 1
	}
	pc3 := 1<<7 | ml<<6 | fc<<5 | byte(p.SourceType)&0x1F

	var ef, tc byte
	if !p.EmphasisOn {
		ef = 1
	}
	if p.EmphasisTimeConstant {
		tc = 1
	}
	pc4 := ef<<7 | tc<<6 | byte(p.SampleFrequency)<<4 | byte(p.Quantization)&0xF

	return []byte{byte(TypeAAUXSource), pc1, pc2, pc3, pc4}, nil
}

// quantizationNames maps AudioQuantization to its CSV text representation.
var quantizationNames = map[AudioQuantization]string{
	AudioQuantizationLinear16Bit:    "LINEAR_16_BIT",
	AudioQuantizationNonlinear12Bit: "NONLINEAR_12_BIT",
	AudioQuantizationLinear20Bit:    "LINEAR_20_BIT",
}

func quantizationByName(name string) (AudioQuantization, bool) {
	for v, n := range quantizationNames {
		if n == name {
			return v, true
		}
	}
	return 0, false
}

// TextFields returns the CSV text-field schema for AAUXSource: sample
// frequency (Hz), quantization scheme, and audio samples per frame.
func (p *AAUXSource) TextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"sample_frequency": {
			Parse: func(text string) map[string]any {
				hz, err := strconv.Atoi(text)
				if err != nil {
					panic(fmt.Errorf("parsing error while reading sample frequency %q: %w", text, err))
				}
				var v SampleFrequency
				switch hz {
				case 48000:
					v = SampleFrequency48000
				case 44100:
					v = SampleFrequency44100
				case 32000:
					v = SampleFrequency32000
				default:
					panic(fmt.Errorf("unrecognized sample frequency %q", text))
				}
				return map[string]any{"SampleFrequency": v}
			},
			Format: func(values map[string]any) string {
				return strconv.Itoa(values["SampleFrequency"].(SampleFrequency).Hz())
			},
		},
		"quantization": {
			Parse: func(text string) map[string]any {
				v, ok := quantizationByName(text)
				if !ok {
					panic(fmt.Errorf("unrecognized quantization value %q", text))
				}
				return map[string]any{"Quantization": v}
			},
			Format: func(values map[string]any) string {
				return quantizationNames[values["Quantization"].(AudioQuantization)]
			},
		},
		"audio_samples_per_frame": {
			Parse: func(text string) map[string]any {
				v, err := strconv.Atoi(text)
				if err != nil {
					panic(fmt.Errorf("parsing error while reading audio samples per frame %q: %w", text, err))
				}
				return map[string]any{"AudioSamplesPerFrame": v}
			},
			Format: func(values map[string]any) string {
				return strconv.Itoa(values["AudioSamplesPerFrame"].(int))
			},
		},
	}
}

func parseAAUXSource(buf []byte, system dv.System) Pack {
	pc1, pc2, pc3, pc4 := buf[1], buf[2], buf[3], buf[4]

	if (pc1>>6)&0x1 != 1 || (pc3>>7)&0x1 != 1 {
		return nil
	}

	sampleFreq := SampleFrequency((pc4 >> 4) & 0x3)
	hz := sampleFreq.Hz()
	if hz == 0 {
		return nil
	}
	afSize := int(pc1 & 0x3F)
	min, max, ok := audioSampleMinMax(system, hz)
	if !ok {
		return nil
	}
	samples := min + afSize
	if samples > max {
		return nil
	}

	channelCount := 1
	if (pc2>>5)&0x3 == 1 {
		channelCount = 2
	}

	fieldCount := 60
	if (pc3>>5)&0x1 == 1 {
		fieldCount = 50
	}

	p := &AAUXSource{
		SampleFrequency:      sampleFreq,
		Quantization:         AudioQuantization(pc4 & 0xF),
		AudioSamplesPerFrame: samples,
		Locked:               (pc1>>7)&0x1 == 0,
		Stereo:               (pc2>>7)&0x1 == 1,
		ChannelCount:         channelCount,
		BlockPairing:         (pc2>>4)&0x1 == 1,
		AudioMode:            pc2 & 0xF,
		MultiLanguage:        (pc3>>6)&0x1 == 0,
		SourceType:           SourceType(pc3 & 0x1F),
		FieldCount:           fieldCount,
		EmphasisOn:           (pc4>>7)&0x1 == 0,
		EmphasisTimeConstant: (pc4>>6)&0x1 == 1,
	}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}
