package pack

import (
	"fmt"
	"strconv"

	"github.com/JohnstonJ/dv"
)

// CameraShutter is the 0x79 pack: the electronic shutter speed,
// expressed as professional-line shutter speed (PC1/PC2) and as a
// consumer-line 15-bit shutter speed value (PC3/PC4).
//
// Wire layout:
//
//	PC1: shutterSpeedProfessional1(8)
//	PC2: shutterSpeedProfessional2(8)
//	PC3: shutterSpeedConsumerLSB(8)
//	PC4: one(1) | shutterSpeedConsumerMSB(7)
type CameraShutter struct {
	// ShutterSpeedProfessional is nil when unused (both PC1 and PC2 are
	// 0xFF).
	ShutterSpeedProfessional *uint16
	// ShutterSpeedConsumer is nil when unknown (wire value 0x7FFF).
	ShutterSpeedConsumer *uint16
}

func (p *CameraShutter) PackType() Type { return TypeCameraShutter }

func (p *CameraShutter) Validate(dv.System) string {
	if p.ShutterSpeedConsumer != nil && *p.ShutterSpeedConsumer > 0x7FFE {
		return "CameraShutter consumer shutter speed is out of range"
	}
	return ""
}

func (p *CameraShutter) ToBinary(system dv.System) ([]byte, error) {
	if msg := p.Validate(system); msg != "" {
		return nil, newValidationError("CameraShutter: %s", msg)
	}
	var pc1, pc2 byte = 0xFF, 0xFF
	if p.ShutterSpeedProfessional != nil {
		pc1 = byte(*p.ShutterSpeedProfessional >> 8)
		pc2 = byte(*p.ShutterSpeedProfessional)
	}
	consumer := uint16(0x7FFF)
	if p.ShutterSpeedConsumer != nil {
		consumer = *p.ShutterSpeedConsumer
	}
	pc3 := byte(consumer)
	pc4 := byte(1)<<7 | byte(consumer>>8)&0x7F
	return []byte{byte(TypeCameraShutter), pc1, pc2, pc3, pc4}, nil
}

// TextFields returns the CSV text-field schema for CameraShutter: the
// consumer-line and professional-line shutter speed values.
func (p *CameraShutter) TextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"shutter_speed_consumer": {
			Parse: func(text string) map[string]any {
				var v *uint16
				if text != "" {
					n, err := strconv.ParseUint(text, 10, 16)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading consumer shutter speed %q: %w", text, err))
					}
					u := uint16(n)
					v = &u
				}
				return map[string]any{"ShutterSpeedConsumer": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["ShutterSpeedConsumer"].(*uint16)
				if v == nil {
					return ""
				}
				return strconv.Itoa(int(*v))
			},
		},
		"shutter_speed_professional": {
			Parse: func(text string) map[string]any {
				var v *uint16
				if text != "" {
					n, err := strconv.ParseUint(text, 0, 16)
					if err != nil {
						panic(fmt.Errorf("parsing error while reading professional shutter speed %q: %w", text, err))
					}
					u := uint16(n)
					v = &u
				}
				return map[string]any{"ShutterSpeedProfessional": v}
			},
			Format: func(values map[string]any) string {
				v, _ := values["ShutterSpeedProfessional"].(*uint16)
				if v == nil {
					return ""
				}
				return fmt.Sprintf("0x%04X", *v)
			},
		},
	}
}

func parseCameraShutter(buf []byte, system dv.System) Pack {
	pc1, pc2, pc3, pc4 := buf[1], buf[2], buf[3], buf[4]
	if (pc4>>7)&0x1 != 1 {
		return nil
	}

	p := &CameraShutter{}
	if !(pc1 == 0xFF && pc2 == 0xFF) {
		v := uint16(pc1)<<8 | uint16(pc2)
		p.ShutterSpeedProfessional = &v
	}
	consumer := uint16(pc4&0x7F)<<8 | uint16(pc3)
	if consumer != 0x7FFF {
		v := consumer
		p.ShutterSpeedConsumer = &v
	}
	if p.Validate(system) != "" {
		return nil
	}
	return p
}
