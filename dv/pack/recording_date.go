package pack

import "github.com/JohnstonJ/dv"

// AAUXRecordingDate is the 0x52 pack: the calendar date in effect when the
// audio in this audio block was recorded.
type AAUXRecordingDate struct {
	genericDate
}

func (p *AAUXRecordingDate) PackType() Type          { return TypeAAUXRecordingDate }
func (p *AAUXRecordingDate) Validate(dv.System) string { return p.validateDate() }

func (p *AAUXRecordingDate) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("AAUXRecordingDate: %s", msg)
	}
	b := p.genericDate.toBinary()
	return []byte{byte(TypeAAUXRecordingDate), b[0], b[1], b[2], b[3]}, nil
}

// TextFields returns the CSV text-field schema shared by every
// date-shaped pack (see dateTextFields for the format).
func (p *AAUXRecordingDate) TextFields() map[string]FieldSchema { return dateTextFields() }

func parseAAUXRecordingDate(buf []byte, system dv.System) Pack {
	g, ok := parseGenericDate(buf)
	if !ok {
		return nil
	}
	p := &AAUXRecordingDate{genericDate: g}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}

// VAUXRecordingDate is the 0x62 pack: the calendar date in effect when the
// video in this track was recorded.
type VAUXRecordingDate struct {
	genericDate
}

func (p *VAUXRecordingDate) PackType() Type          { return TypeVAUXRecordingDate }
func (p *VAUXRecordingDate) Validate(dv.System) string { return p.validateDate() }

func (p *VAUXRecordingDate) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("VAUXRecordingDate: %s", msg)
	}
	b := p.genericDate.toBinary()
	return []byte{byte(TypeVAUXRecordingDate), b[0], b[1], b[2], b[3]}, nil
}

// TextFields returns the CSV text-field schema shared by every
// date-shaped pack (see dateTextFields for the format).
func (p *VAUXRecordingDate) TextFields() map[string]FieldSchema { return dateTextFields() }

func parseVAUXRecordingDate(buf []byte, system dv.System) Pack {
	g, ok := parseGenericDate(buf)
	if !ok {
		return nil
	}
	p := &VAUXRecordingDate{genericDate: g}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}
