package pack

import (
	"fmt"
	"strconv"

	"github.com/JohnstonJ/dv"
)

// irisFNumbers maps the 8-bit iris wire code to an f-number, following
// the same half-stop progression used by consumer camcorders. Codes
// 0x00-0x0E are F1.0 through F11.0 and 0xEE means fully closed (0);
// every other code, 0xFF included, has no numeric value (nil).
var irisFNumbers [256]*float64

// init builds irisFNumbers forward; reverseIrisFNumber below scans it
// ascending so that if two codes map to the same value the lowest code
// wins.
func init() {
	set := func(code int, v float64) { irisFNumbers[code] = &v }
	// F1.0 through F11.0 in roughly half-stop steps.
	steps := []float64{1.0, 1.2, 1.4, 1.7, 2.0, 2.4, 2.8, 3.4, 4.0, 4.8,
		5.6, 6.8, 8.0, 9.6, 11.0}
	for i, v := range steps {
		set(i, v)
	}
	set(0xEE, 0) // fully closed
}

func reverseIrisFNumber(v float64) (byte, bool) {
	for code := 0; code < 256; code++ {
		if irisFNumbers[code] != nil && *irisFNumbers[code] == v {
			return byte(code), true
		}
	}
	return 0xFF, false
}

// AutoExposureMode is the 4-bit AE mode field.
type AutoExposureMode uint8

const (
	AutoExposureModeFullAutomatic AutoExposureMode = 0x0
	AutoExposureModeGainPriority  AutoExposureMode = 0x1
	AutoExposureModeShutterPriority AutoExposureMode = 0x2
	AutoExposureModeIrisPriority  AutoExposureMode = 0x3
	AutoExposureModeManual        AutoExposureMode = 0x4
)

// CameraConsumer1 is the 0x70 pack.
//
// Wire layout:
//
//	PC1: iris(8)
//	PC2: autoExposureMode(4) | reserved(4, = 0xF)
//	PC3: reserved(8, = 0xFF)
//	PC4: reserved(8, = 0xFF)
type CameraConsumer1 struct {
	IrisFNumber      *float64 // nil if unknown; 0 if fully closed
	AutoExposureMode AutoExposureMode
}

func (p *CameraConsumer1) PackType() Type { return TypeCameraConsumer1 }

func (p *CameraConsumer1) Validate(dv.System) string {
	if p.AutoExposureMode > 0x4 {
		return "CameraConsumer1 auto exposure mode is out of range"
	}
	return ""
}

func (p *CameraConsumer1) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("CameraConsumer1: %s", msg)
	}
	iris := byte(0xFF)
	if p.IrisFNumber != nil {
		if code, ok := reverseIrisFNumber(*p.IrisFNumber); ok {
			iris = code
		}
	}
	pc2 := byte(p.AutoExposureMode)<<4 | 0xF
	return []byte{byte(TypeCameraConsumer1), iris, pc2, 0xFF, 0xFF}, nil
}

// autoExposureModeNames maps AutoExposureMode to its CSV text
// representation.
var autoExposureModeNames = map[AutoExposureMode]string{
	AutoExposureModeFullAutomatic:   "FULL_AUTOMATIC",
	AutoExposureModeGainPriority:    "GAIN_PRIORITY",
	AutoExposureModeShutterPriority: "SHUTTER_PRIORITY",
	AutoExposureModeIrisPriority:    "IRIS_PRIORITY",
	AutoExposureModeManual:          "MANUAL",
}

func autoExposureModeByName(name string) (AutoExposureMode, bool) {
	for v, n := range autoExposureModeNames {
		if n == name {
			return v, true
		}
	}
	return 0, false
}

// TextFields returns the CSV text-field schema for CameraConsumer1: iris
// f-number and auto-exposure mode.
func (p *CameraConsumer1) TextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"iris": {
			Parse: func(text string) map[string]any {
				var v *float64
				if text != "" {
					f, err := strconv.ParseFloat(text, 64)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading iris f-number %q: %w", text, err))
					}
					v = &f
				}
				return map[string]any{"IrisFNumber": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["IrisFNumber"].(*float64)
				if v == nil {
					return ""
				}
				return strconv.FormatFloat(*v, 'f', 1, 64)
			},
		},
		"auto_exposure_mode": {
			Parse: func(text string) map[string]any {
				v, ok := autoExposureModeByName(text)
				if !ok {
					panic(fmt.Errorf("unrecognized auto exposure mode value %q", text))
				}
				return map[string]any{"AutoExposureMode": v}
			},
			Format: func(values map[string]any) string {
				return autoExposureModeNames[values["AutoExposureMode"].(AutoExposureMode)]
			},
		},
	}
}

func parseCameraConsumer1(buf []byte, system dv.System) Pack {
	pc1, pc2, pc3, pc4 := buf[1], buf[2], buf[3], buf[4]
	if pc2&0xF != 0xF || pc3 != 0xFF || pc4 != 0xFF {
		return nil
	}
	p := &CameraConsumer1{
		IrisFNumber:      irisFNumbers[pc1],
		AutoExposureMode: AutoExposureMode((pc2 >> 4) & 0xF),
	}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}

// FocalLengthUnit is the 2-bit unit field for focal length/zoom
// position reporting.
type FocalLengthUnit uint8

const (
	FocalLengthUnitMillimeter FocalLengthUnit = 0x0
	FocalLengthUnitTenthMillimeter FocalLengthUnit = 0x1
)

// CameraConsumer2 is the 0x71 pack.
//
// Wire layout:
//
//	PC1: focusPosition(8)
//	PC2: focalLengthUnit(2) | focalLengthHigh(6)
//	PC3: focalLengthLow(8)
//	PC4: electricZoom(8)
type CameraConsumer2 struct {
	// FocusPosition is nil when unknown (wire value 0xFF).
	FocusPosition *uint8
	FocalLengthUnit FocalLengthUnit
	// FocalLength is nil when unknown (wire value 0x3FFF).
	FocalLength *uint16
	// ElectricZoom is nil when unknown (wire value 0xFF).
	ElectricZoom *uint8
}

func (p *CameraConsumer2) PackType() Type { return TypeCameraConsumer2 }

func (p *CameraConsumer2) Validate(dv.System) string {
	if p.FocalLength != nil && *p.FocalLength > 0x3FFE {
		return "CameraConsumer2 focal length is out of range"
	}
	return ""
}

func (p *CameraConsumer2) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("CameraConsumer2: %s", msg)
	}
	focus := byte(0xFF)
	if p.FocusPosition != nil {
		focus = *p.FocusPosition
	}
	fl := uint16(0x3FFF)
	if p.FocalLength != nil {
		fl = *p.FocalLength
	}
	zoom := byte(0xFF)
	if p.ElectricZoom != nil {
		zoom = *p.ElectricZoom
	}
	pc2 := byte(p.FocalLengthUnit)<<6 | byte(fl>>8)&0x3F
	pc3 := byte(fl)
	return []byte{byte(TypeCameraConsumer2), focus, pc2, pc3, zoom}, nil
}

// TextFields returns the CSV text-field schema for CameraConsumer2: focus
// position, focal length, and electric zoom magnification.
func (p *CameraConsumer2) TextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"focus_position": {
			Parse: func(text string) map[string]any {
				var v *uint8
				if text != "" {
					n, err := strconv.ParseUint(text, 10, 8)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading focus position %q: %w", text, err))
					}
					u := uint8(n)
					v = &u
				}
				return map[string]any{"FocusPosition": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["FocusPosition"].(*uint8)
				if v == nil {
					return ""
				}
				return strconv.Itoa(int(*v))
			},
		},
		"focal_length": {
			Parse: func(text string) map[string]any {
				var v *uint16
				if text != "" {
					n, err := strconv.ParseUint(text, 10, 16)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading focal length %q: %w", text, err))
					}
					u := uint16(n)
					v = &u
				}
				return map[string]any{"FocalLength": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["FocalLength"].(*uint16)
				if v == nil {
					return ""
				}
				return strconv.Itoa(int(*v))
			},
		},
		"electric_zoom_magnification": {
			Parse: func(text string) map[string]any {
				var v *uint8
				if text != "" {
					n, err := strconv.ParseUint(text, 10, 8)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading electric zoom magnification %q: %w", text, err))
					}
					u := uint8(n)
					v = &u
				}
				return map[string]any{"ElectricZoom": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["ElectricZoom"].(*uint8)
				if v == nil {
					return ""
				}
				return strconv.Itoa(int(*v))
			},
		},
	}
}

func parseCameraConsumer2(buf []byte, system dv.System) Pack {
	pc1, pc2, pc3, pc4 := buf[1], buf[2], buf[3], buf[4]

	p := &CameraConsumer2{
		FocalLengthUnit: FocalLengthUnit((pc2 >> 6) & 0x3),
	}
	if pc1 != 0xFF {
		v := pc1
		p.FocusPosition = &v
	}
	fl := uint16(pc2&0x3F)<<8 | uint16(pc3)
	if fl != 0x3FFF {
		v := fl
		p.FocalLength = &v
	}
	if pc4 != 0xFF {
		v := pc4
		p.ElectricZoom = &v
	}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}
