package block

import (
	"testing"

	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/pack"
)

func testFileInfo() dv.FileInfo {
	return dv.FileInfo{System: dv.System525_60, Channels: 1, Tracks: 10}
}

func TestHeaderRoundTrip(t *testing.T) {
	fi := testFileInfo()
	tp := TrackPitchStandardPlay
	pf := true
	h := &Header{
		id:                 dv.BlockID{Type: dv.BlockTypeHeader, Sequence: 0xF, Channel: 0, DIFSequence: 0, DIFBlock: 0},
		DSF:                false,
		TrackPitch:         &tp,
		PilotFrame:         &pf,
		ApplicationIDTrack: ApplicationIDConsumerDigitalVCR,
		ApplicationID1:     ApplicationIDConsumerDigitalVCR,
		ApplicationID2:     ApplicationIDConsumerDigitalVCR,
		ApplicationID3:     ApplicationIDConsumerDigitalVCR,
	}

	payload, err := h.ToBinary(fi)
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	if len(payload) != dv.BlockSize-3 {
		t.Fatalf("payload length = %d, want %d", len(payload), dv.BlockSize-3)
	}

	blk, err := parseHeader(h.id, payload, fi)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	got := blk.(*Header)
	if got.DSF != h.DSF || *got.TrackPitch != *h.TrackPitch || *got.PilotFrame != *h.PilotFrame {
		t.Errorf("parseHeader round trip mismatch: got %+v, want %+v", got, h)
	}
}

func TestHeaderRejectsSystemMismatch(t *testing.T) {
	fi := testFileInfo() // 525-60
	h := &Header{
		id:  dv.BlockID{Type: dv.BlockTypeHeader, Sequence: 0xF, Channel: 0, DIFSequence: 0, DIFBlock: 0},
		DSF: true, // claims 625-50, conflicts with fi.System
	}
	payload, err := h.ToBinary(fi)
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	if _, err := parseHeader(h.id, payload, fi); err == nil {
		t.Error("parseHeader accepted a DSF bit inconsistent with the file's system")
	}
}

func TestAudioErrorDetection(t *testing.T) {
	a := &Audio{}
	copy(a.Data[0:2], []byte{0x80, 0x00})
	if !a.HasLinear16Error(0) {
		t.Error("HasLinear16Error(0) = false, want true for the 0x8000 error pattern")
	}
	if a.HasLinear16Error(2) {
		t.Error("HasLinear16Error(2) = true, want false for zeroed (non-error) bytes")
	}
}

func TestVideoHasVideoErrors(t *testing.T) {
	v := &Video{Status: 0}
	if v.HasVideoErrors() {
		t.Error("HasVideoErrors() = true for a zero status byte")
	}
	v.Status = 0x1
	if !v.HasVideoErrors() {
		t.Error("HasVideoErrors() = false for a non-zero status byte")
	}
}

func TestHeaderValidateRejectsMismatchedTrackPitchFields(t *testing.T) {
	tp := TrackPitchStandardPlay
	h := &Header{TrackPitch: &tp}
	if msg := h.Validate(testFileInfo()); msg == "" {
		t.Error("Validate accepted a TrackPitch with no matching PilotFrame")
	}
}

func TestSubcodeValidateRejectsAbsentEntryWithFields(t *testing.T) {
	s := &Subcode{}
	idx := true
	s.Entries[0].Index = &idx
	if msg := s.Validate(testFileInfo()); msg == "" {
		t.Error("Validate accepted an absent entry that still carries a field")
	}
}

func TestHasAudioErrorsIgnoresSamplesBeyondSamplesPerFrame(t *testing.T) {
	fi := testFileInfo()
	a := &Audio{}
	for i := 0; i < len(a.Data); i += 2 {
		a.Data[i] = 0x80 // every linear-16 slot looks like the 0x8000 error pattern
	}
	if a.HasAudioErrors(fi, 0, pack.AudioQuantizationLinear16Bit) {
		t.Error("HasAudioErrors flagged an error when samplesPerFrame excludes every slot in this block")
	}
}

func TestHasAudioErrorsDetectsInRangeErrors(t *testing.T) {
	fi := testFileInfo()
	a := &Audio{}
	for i := 0; i < len(a.Data); i += 2 {
		a.Data[i] = 0x80
	}
	if !a.HasAudioErrors(fi, 1<<20, pack.AudioQuantizationLinear16Bit) {
		t.Error("HasAudioErrors did not flag an error pattern present throughout an in-range block")
	}
}

func TestNonlinear12Errors(t *testing.T) {
	a := &Audio{}
	copy(a.Data[0:3], []byte{0x80, 0x80, 0x00})
	yErr, zErr := a.nonlinear12Errors(0)
	if !yErr || !zErr {
		t.Errorf("nonlinear12Errors(0) = (%v, %v), want (true, true)", yErr, zErr)
	}
}

func TestParseSubcodeEntryGatesOnFrontHalf(t *testing.T) {
	fi := testFileInfo() // 10 tracks
	// Tagged ID0 variant: fr=1, index=1, skip=0, pictureTag=0, abstHi=0x5.
	// ID1: abstLo=0x3, blankFlag=0, syncBlockNumber=0 (matches position 0).
	b := []byte{0xC5, 0x60, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	e, err := parseSubcodeEntry(b, fi.System, 0, fi, 0, 0)
	if err != nil {
		t.Fatalf("parseSubcodeEntry: %v", err)
	}
	if !e.Present || e.AbsoluteTrackNumber != 43 {
		t.Fatalf("valid entry parsed as %+v, want present with AbsoluteTrackNumber 43", e)
	}

	bad := append([]byte(nil), b...)
	bad[0] &^= 0x80 // flip front-half bit: track 0 expects the front half
	e, err = parseSubcodeEntry(bad, fi.System, 0, fi, 0, 0)
	if err != nil {
		t.Fatalf("parseSubcodeEntry: %v", err)
	}
	if e.Present {
		t.Error("parseSubcodeEntry treated a front-half mismatch as present, want absent")
	}
}

func TestVAUXRoundTrip(t *testing.T) {
	fi := testFileInfo()
	v := &VAUX{id: dv.BlockID{Type: dv.BlockTypeVAUX, Sequence: 0xF, Channel: 0, DIFSequence: 0, DIFBlock: 0}}

	payload, err := v.ToBinary(fi)
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	blk, err := parseVAUX(v.id, payload, fi)
	if err != nil {
		t.Fatalf("parseVAUX: %v", err)
	}
	got := blk.(*VAUX)
	for i, p := range got.Packs {
		if p == nil {
			t.Errorf("pack %d parsed as nil, want NoInfo", i)
		}
	}
}
