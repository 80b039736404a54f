/*
DESCRIPTION
  pack.go defines the Pack interface implemented by every 5-byte DV pack
  variant, the pack type registry, and the binary dispatch function.
  Field bit layouts for each variant are documented in their own files and
  are drawn from IEC 61834-4:1998 and SMPTE 306M-2002, as reproduced by the
  reference Python implementation this module's test fixtures were
  verified against.
*/

package pack

import (
	"fmt"

	"github.com/JohnstonJ/dv"
)

// Size is the fixed length in bytes of every pack.
const Size = 5

// Type is the leading type byte of a pack that selects its variant.
type Type uint8

const (
	TypeTitleTimecode      Type = 0x13
	TypeTitleBinaryGroup   Type = 0x14
	TypeAAUXSource         Type = 0x50
	TypeAAUXSourceControl  Type = 0x51
	TypeAAUXRecordingDate  Type = 0x52
	TypeAAUXRecordingTime  Type = 0x53
	TypeAAUXBinaryGroup    Type = 0x54
	TypeVAUXSource         Type = 0x60
	TypeVAUXSourceControl  Type = 0x61
	TypeVAUXRecordingDate  Type = 0x62
	TypeVAUXRecordingTime  Type = 0x63
	TypeVAUXBinaryGroup    Type = 0x64
	TypeCameraConsumer1    Type = 0x70
	TypeCameraConsumer2    Type = 0x71
	TypeCameraShutter      Type = 0x79
	TypeNoInfo             Type = 0xFF
)

// ValidationError is returned by ToBinary when the receiver's fields fail
// Validate and therefore cannot be safely serialized.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// FieldSchema is a named subset of a pack's fields used by the external
// CSV/text layer. The zero-value key ("") names the default/main value.
type FieldSchema struct {
	// Parse converts a text value into a subset of field values, returned
	// as a map keyed by field name. It panics on malformed syntax; callers
	// at the CSV boundary are expected to catch this.
	Parse func(text string) map[string]any
	// Format converts a subset of field values (by name) back to text.
	Format func(values map[string]any) string
}

// Pack is the uniform interface implemented by every 5-byte pack variant.
type Pack interface {
	// PackType returns the variant's leading type byte.
	PackType() Type

	// Validate reports whether the receiver's fields are consistent and
	// safe to serialize. It returns "" if the pack is valid, or a
	// human-readable description of the first failure found.
	Validate(system dv.System) string

	// ToBinary serializes the receiver to a 5-byte pack. It returns a
	// ValidationError if Validate fails.
	ToBinary(system dv.System) ([]byte, error)
}

// TextFields returns the named field subsets exposed by variant for the
// external CSV/text layer. Packs that do not participate in text-field
// round-tripping (NoInfo, Unknown) return nil.
type textFielder interface {
	TextFields() map[string]FieldSchema
}

// ValueTextFields returns p's named text-field schema, or nil if p does
// not participate in text-field round-tripping (a nil Pack, NoInfo, or
// Unknown).
func ValueTextFields(p Pack) map[string]FieldSchema {
	tf, ok := p.(textFielder)
	if !ok {
		return nil
	}
	return tf.TextFields()
}

// ParseTextValue parses text for field name of p's variant (the zero
// value "" selects the main/default field) and returns the resulting
// partial set of field values, keyed by Go struct field name. It panics
// if text is malformed, or if the variant has no such field.
func ParseTextValue(p Pack, name, text string) map[string]any {
	schema, ok := ValueTextFields(p)[name]
	if !ok {
		panic(fmt.Errorf("pack %T has no text field %q", p, name))
	}
	return schema.Parse(text)
}

// ToTextValue is the inverse of ParseTextValue: it formats the named
// field subset of p's variant back to text.
func ToTextValue(p Pack, name string, values map[string]any) string {
	schema, ok := ValueTextFields(p)[name]
	if !ok {
		panic(fmt.Errorf("pack %T has no text field %q", p, name))
	}
	return schema.Format(values)
}

// ParseBinary reads buf[0] and dispatches to the matching variant's
// binary parser. It returns nil if the pack fails to validate (a "silent
// drop", per the error-handling design: no pack that fails validation is
// ever returned by a successful parse, except Unknown which is
// deliberately permissive).
func ParseBinary(buf []byte, system dv.System) Pack {
	if len(buf) != Size {
		return nil
	}

	switch Type(buf[0]) {
	case TypeTitleTimecode:
		return parseTitleTimecode(buf, system)
	case TypeTitleBinaryGroup:
		return parseTitleBinaryGroup(buf, system)
	case TypeAAUXSource:
		return parseAAUXSource(buf, system)
	case TypeAAUXSourceControl:
		return parseAAUXSourceControl(buf, system)
	case TypeAAUXRecordingDate:
		return parseAAUXRecordingDate(buf, system)
	case TypeAAUXRecordingTime:
		return parseAAUXRecordingTime(buf, system)
	case TypeAAUXBinaryGroup:
		return parseAAUXBinaryGroup(buf, system)
	case TypeVAUXSource:
		return parseVAUXSource(buf, system)
	case TypeVAUXSourceControl:
		return parseVAUXSourceControl(buf, system)
	case TypeVAUXRecordingDate:
		return parseVAUXRecordingDate(buf, system)
	case TypeVAUXRecordingTime:
		return parseVAUXRecordingTime(buf, system)
	case TypeVAUXBinaryGroup:
		return parseVAUXBinaryGroup(buf, system)
	case TypeCameraConsumer1:
		return parseCameraConsumer1(buf, system)
	case TypeCameraConsumer2:
		return parseCameraConsumer2(buf, system)
	case TypeCameraShutter:
		return parseCameraShutter(buf, system)
	case TypeNoInfo:
		return parseNoInfo(buf, system)
	default:
		return parseUnknown(buf, system)
	}
}
