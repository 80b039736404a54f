/*
DESCRIPTION
  header.go implements the Header DIF block: format/application identity
  metadata that is written once per DIF sequence. There is exactly one
  Header block per track (DIFBlock 0).
*/

package block

import (
	"github.com/JohnstonJ/dv"
)

// ApplicationID identifies which recording-format convention a given
// section (track/audio/video/subcode) follows. Only a handful of values
// are assigned; the rest are reserved.
type ApplicationID uint8

const (
	ApplicationIDConsumerDigitalVCR ApplicationID = 0x0
	ApplicationIDD7StandardFormat   ApplicationID = 0x1
	ApplicationIDNoInfo             ApplicationID = 0x7
)

// TrackPitch identifies the physical tape track pitch used to record the
// frame, which determines playback speed compatibility.
type TrackPitch uint8

const (
	TrackPitchReserved       TrackPitch = 0x0
	TrackPitchD7StandardFormat TrackPitch = 0x1
	TrackPitchLongPlay       TrackPitch = 0x2
	TrackPitchStandardPlay   TrackPitch = 0x3
)

// Header is the per-track Header DIF block (DIFBlock 0).
//
// Payload layout (77 bytes: 5 meaningful bytes followed by 72 reserved
// 0xFF padding bytes, matching the DIF block's fixed size):
//
//	byte0: dsf(1) | zero(1, = 0) | reserved_0(6, = 0x3F)
//	byte1: reserved_1(1, = 1) | tf1(1, = 0) | applicationIDTrack(3) | reserved_a(3, = 0x7)
//	byte2: reserved_1(1, = 1) | tf2(1, = 0) | applicationID1(3) | reserved_b(3, = 0x7)
//	byte3: reserved_1(1, = 1) | tf3(1, = 0) | applicationID2(3) | reserved_c(3, = 0x7)
//	byte4: dftia(4) | applicationID3(3) | reserved_d(1, = 1)
//	bytes5-76: 0xFF
//
// dftia packs TrackPitch and PilotFrame: 0xF means both are absent
// (unknown), a value above 0x7 is a BlockError, otherwise
// TrackPitch = dftia>>1 and PilotFrame = dftia&1.
type Header struct {
	id dv.BlockID

	// DSF is true for the 625/50 system, false for 525/60. It must agree
	// with fi.System; a mismatch is a BlockError.
	DSF bool

	// TrackPitch and PilotFrame are nil together when absent (wire dftia
	// == 0xF).
	TrackPitch  *TrackPitch
	PilotFrame  *bool

	ApplicationIDTrack ApplicationID
	ApplicationID1     ApplicationID
	ApplicationID2     ApplicationID
	ApplicationID3     ApplicationID
}

func (h *Header) ID() dv.BlockID { return h.id }

// Validate checks the one structural invariant a Header must hold:
// TrackPitch and PilotFrame are present or absent together.
func (h *Header) Validate(fi dv.FileInfo) string {
	if (h.TrackPitch == nil) != (h.PilotFrame == nil) {
		return "header track pitch and pilot frame must be present or absent together"
	}
	return ""
}

func parseHeader(id dv.BlockID, payload []byte, fi dv.FileInfo) (Block, error) {
	if len(payload) != dv.BlockSize-3 {
		return nil, dv.NewBlockError("header payload must be %d bytes, got %d", dv.BlockSize-3, len(payload))
	}
	b0, b1, b2, b3, b4 := payload[0], payload[1], payload[2], payload[3], payload[4]

	if b0&0x3F != 0x3F {
		return nil, dv.NewBlockError("header reserved_0 bits are not 0x3F")
	}
	if b0&0x40 != 0 {
		return nil, dv.NewBlockError("header zero bit is unexpectedly set")
	}
	dsf := (b0>>7)&0x1 == 1

	wantSystem := dv.System525_60
	if dsf {
		wantSystem = dv.System625_50
	}
	if wantSystem != fi.System {
		return nil, dv.NewBlockError("header DSF bit implies system %s, file info says %s", wantSystem, fi.System)
	}

	for _, b := range []byte{b1, b2, b3} {
		if b&0x80 == 0 {
			return nil, dv.NewBlockError("header reserved_1 bit is unexpectedly clear")
		}
		if b&0x40 != 0 {
			return nil, dv.NewBlockError("header track flag (tf) bit is unexpectedly set")
		}
		if b&0x7 != 0x7 {
			return nil, dv.NewBlockError("header reserved application-ID padding bits are not 0x7")
		}
	}
	if b4&0x1 == 0 {
		return nil, dv.NewBlockError("header reserved_d bit is unexpectedly clear")
	}

	for _, b := range payload[5:] {
		if b != 0xFF {
			return nil, dv.NewBlockError("header trailing reserved bytes are not all 0xFF")
		}
	}

	h := &Header{
		id:                 id,
		DSF:                dsf,
		ApplicationIDTrack: ApplicationID((b1 >> 3) & 0x7),
		ApplicationID1:     ApplicationID((b2 >> 3) & 0x7),
		ApplicationID2:     ApplicationID((b3 >> 3) & 0x7),
		ApplicationID3:     ApplicationID((b4 >> 1) & 0x7),
	}

	dftia := (b4 >> 4) & 0xF
	switch {
	case dftia == 0xF:
		// both absent
	case dftia > 0x7:
		return nil, dv.NewBlockError("header dftia field %#x is out of range", dftia)
	default:
		tp := TrackPitch(dftia >> 1)
		pf := dftia&0x1 == 1
		h.TrackPitch = &tp
		h.PilotFrame = &pf
	}

	return h, nil
}

func (h *Header) ToBinary(fi dv.FileInfo) ([]byte, error) {
	var dsfBit byte
	if h.DSF {
		dsfBit = 1
	}
	b0 := dsfBit<<7 | 0x3F

	mk := func(appID ApplicationID) byte {
		return 1<<7 | 0<<6 | byte(appID&0x7)<<3 | 0x7
	}
	b1 := mk(h.ApplicationIDTrack)
	b2 := mk(h.ApplicationID1)
	b3 := mk(h.ApplicationID2)

	dftia := byte(0xF)
	if h.TrackPitch != nil && h.PilotFrame != nil {
		var pf byte
		if *h.PilotFrame {
			pf = 1
		}
		dftia = byte(*h.TrackPitch)<<1 | pf
	}
	b4 := dftia<<4 | byte(h.ApplicationID3&0x7)<<1 | 0x1

	out := make([]byte, 0, dv.BlockSize-3)
	out = append(out, b0, b1, b2, b3, b4)
	for i := 0; i < 72; i++ {
		out = append(out, 0xFF)
	}
	return out, nil
}
