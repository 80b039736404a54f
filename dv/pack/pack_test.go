package pack

import (
	"testing"

	"github.com/JohnstonJ/dv"
)

func TestBCDRoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, 9, 10, 42, 99} {
		b := bcdEncode(v)
		got, ok := bcdDecode(b)
		if !ok {
			t.Fatalf("bcdDecode(bcdEncode(%d)) reported invalid", v)
		}
		if got != v {
			t.Errorf("bcdDecode(bcdEncode(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestBCDRejectsNonDecimalDigits(t *testing.T) {
	if _, ok := bcdDecode(0xAF); ok {
		t.Error("bcdDecode(0xAF) should be invalid: 0xA is not a decimal digit")
	}
}

func TestParseBinaryDispatchesByType(t *testing.T) {
	buf := []byte{byte(TypeNoInfo), 0xFF, 0xFF, 0xFF, 0xFF}
	p := ParseBinary(buf, dv.System525_60)
	if p == nil {
		t.Fatal("ParseBinary(NoInfo) returned nil")
	}
	if p.PackType() != TypeNoInfo {
		t.Errorf("PackType() = %#x, want %#x", p.PackType(), TypeNoInfo)
	}
}

func TestParseBinaryRejectsWrongLength(t *testing.T) {
	if p := ParseBinary([]byte{0x13, 0x00, 0x00, 0x00}, dv.System525_60); p != nil {
		t.Error("ParseBinary accepted a 4-byte buffer")
	}
}

func TestTextValueRoundTrip(t *testing.T) {
	p := &TitleTimecode{}
	const text = "12:34:56;12"

	values := ParseTextValue(p, "", text)
	got := ToTextValue(p, "", values)
	if got != text {
		t.Errorf("ToTextValue(ParseTextValue(%q)) = %q, want %q", text, got, text)
	}
}

func TestValueTextFieldsNilForNoInfo(t *testing.T) {
	p := ParseBinary([]byte{byte(TypeNoInfo), 0xFF, 0xFF, 0xFF, 0xFF}, dv.System525_60)
	if fields := ValueTextFields(p); fields != nil {
		t.Errorf("ValueTextFields(NoInfo) = %v, want nil", fields)
	}
}

func TestAAUXSourceRoundTrip(t *testing.T) {
	p := &AAUXSource{
		SampleFrequency:      SampleFrequency48000,
		Quantization:         AudioQuantizationLinear16Bit,
		AudioSamplesPerFrame: 1600,
		Locked:               true,
		Stereo:               true,
		ChannelCount:         2,
		SourceType:           SourceTypeStandardDefinitionCompressedChroma,
		FieldCount:           60,
		EmphasisOn:           false,
	}
	buf, err := p.ToBinary(dv.System525_60)
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	got := ParseBinary(buf, dv.System525_60)
	if got == nil {
		t.Fatal("ParseBinary returned nil for a validly-serialized AAUXSource")
	}
	gotP, ok := got.(*AAUXSource)
	if !ok {
		t.Fatalf("ParseBinary returned %T, want *AAUXSource", got)
	}
	if gotP.AudioSamplesPerFrame != p.AudioSamplesPerFrame {
		t.Errorf("AudioSamplesPerFrame = %d, want %d", gotP.AudioSamplesPerFrame, p.AudioSamplesPerFrame)
	}
	if gotP.ChannelCount != p.ChannelCount {
		t.Errorf("ChannelCount = %d, want %d", gotP.ChannelCount, p.ChannelCount)
	}
}

func TestAAUXSourceValidateRejectsOutOfRangeSamples(t *testing.T) {
	p := &AAUXSource{
		SampleFrequency:      SampleFrequency48000,
		Quantization:         AudioQuantizationLinear16Bit,
		AudioSamplesPerFrame: 100000,
		ChannelCount:         1,
		FieldCount:           60,
	}
	if msg := p.Validate(dv.System525_60); msg == "" {
		t.Error("Validate accepted an impossible audio sample count")
	}
}
