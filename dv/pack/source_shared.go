package pack

// SourceType is the 5-bit video/audio source-type field shared by
// AAUXSource and VAUXSource. Several values are reserved by the standard;
// per the open question noted in the design, this codec treats all
// 0x00-0x1F values as legal rather than rejecting reserved ones.
type SourceType uint8

const (
	SourceTypeStandardDefinitionCompressedChroma SourceType = 0x00
	SourceTypeAnalogHighDefinition1125_1250      SourceType = 0x02
	SourceTypeStandardDefinitionMoreChroma       SourceType = 0x04
)

// AudioQuantization is the audio sample quantization/encoding scheme.
type AudioQuantization uint8

const (
	AudioQuantizationLinear16Bit    AudioQuantization = 0
	AudioQuantizationNonlinear12Bit AudioQuantization = 1
	AudioQuantizationLinear20Bit    AudioQuantization = 2
)

// SampleFrequency maps the 2-bit wire field to an actual Hz value.
type SampleFrequency uint8

const (
	SampleFrequency48000 SampleFrequency = 0
	SampleFrequency44100 SampleFrequency = 1
	SampleFrequency32000 SampleFrequency = 2
)

// Hz returns the sample rate in Hz, or 0 if the wire value is reserved.
func (s SampleFrequency) Hz() int {
	switch s {
	case SampleFrequency48000:
		return 48000
	case SampleFrequency44100:
		return 44100
	case SampleFrequency32000:
		return 32000
	default:
		return 0
	}
}

// audioSampleRange gives the [min, max] legal audio samples per frame for
// a given system and sample rate, per IEC 61834-2:1998 Section 6 Table 25.
// The on-wire af_size field is an offset from min.
var audioSampleRange = map[bool]map[int][2]int{
	true: { // System525_60
		32000: {1053, 1080},
		44100: {1452, 1489},
		48000: {1580, 1620},
	},
	false: { // System625_50
		32000: {1264, 1296},
		44100: {1742, 1786},
		48000: {1896, 1944},
	},
}
