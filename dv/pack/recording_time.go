package pack

import "github.com/JohnstonJ/dv"

// AAUXRecordingTime is the 0x53 pack: the timecode in effect when the
// audio in this audio block was recorded.
type AAUXRecordingTime struct {
	genericTimecode
}

func (p *AAUXRecordingTime) PackType() Type { return TypeAAUXRecordingTime }

func (p *AAUXRecordingTime) Validate(system dv.System) string {
	return p.validateTime(system)
}

func (p *AAUXRecordingTime) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("AAUXRecordingTime: %s", msg)
	}
	b := p.genericTimecode.toBinary(system)
	return []byte{byte(TypeAAUXRecordingTime), b[0], b[1], b[2], b[3]}, nil
}

// TextFields returns the CSV text-field schema shared by every
// timecode-shaped pack (see TitleTimecode.TextFields for the format).
func (p *AAUXRecordingTime) TextFields() map[string]FieldSchema { return timecodeTextFields() }

func parseAAUXRecordingTime(buf []byte, system dv.System) Pack {
	g, ok := parseGenericTimecode(buf, system)
	if !ok {
		return nil
	}
	p := &AAUXRecordingTime{genericTimecode: g}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}

// VAUXRecordingTime is the 0x63 pack: the timecode in effect when the
// video in this track was recorded.
type VAUXRecordingTime struct {
	genericTimecode
}

func (p *VAUXRecordingTime) PackType() Type { return TypeVAUXRecordingTime }

func (p *VAUXRecordingTime) Validate(system dv.System) string {
	return p.validateTime(system)
}

func (p *VAUXRecordingTime) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("VAUXRecordingTime: %s", msg)
	}
	b := p.genericTimecode.toBinary(system)
	return []byte{byte(TypeVAUXRecordingTime), b[0], b[1], b[2], b[3]}, nil
}

// TextFields returns the CSV text-field schema shared by every
// timecode-shaped pack (see TitleTimecode.TextFields for the format).
func (p *VAUXRecordingTime) TextFields() map[string]FieldSchema { return timecodeTextFields() }

func parseVAUXRecordingTime(buf []byte, system dv.System) Pack {
	g, ok := parseGenericTimecode(buf, system)
	if !ok {
		return nil
	}
	p := &VAUXRecordingTime{genericTimecode: g}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}
