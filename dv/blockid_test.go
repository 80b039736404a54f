package dv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlockIDRoundTrip(t *testing.T) {
	fi := FileInfo{System: System525_60, Channels: 1, Tracks: 10}

	cases := []BlockID{
		{Type: BlockTypeHeader, Sequence: 0xF, Channel: 0, DIFSequence: 3, DIFBlock: 0},
		{Type: BlockTypeSubcode, Sequence: 0xF, Channel: 0, DIFSequence: 9, DIFBlock: 1},
		{Type: BlockTypeVAUX, Sequence: 0x3, Channel: 0, DIFSequence: 0, DIFBlock: 2},
		{Type: BlockTypeAudio, Sequence: 0x0, Channel: 0, DIFSequence: 5, DIFBlock: 8},
		{Type: BlockTypeVideo, Sequence: 0x7, Channel: 0, DIFSequence: 5, DIFBlock: 134},
	}

	for _, want := range cases {
		got, err := ParseBlockID(want.Bytes(), fi)
		if err != nil {
			t.Fatalf("ParseBlockID(%+v): %v", want, err)
		}
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(BlockID{})); diff != "" {
			t.Errorf("ParseBlockID round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestBlockIDRejectsOutOfRangeTrack(t *testing.T) {
	fi := FileInfo{System: System525_60, Channels: 1, Tracks: 10}
	id := BlockID{Type: BlockTypeHeader, Sequence: 0xF, Channel: 0, DIFSequence: 10, DIFBlock: 0}
	if _, err := ParseBlockID(id.Bytes(), fi); err == nil {
		t.Error("ParseBlockID did not reject a DIF sequence beyond the track count")
	}
}

func TestBlockIDRejectsExcessiveDIFBlock(t *testing.T) {
	fi := FileInfo{System: System525_60, Channels: 1, Tracks: 10}
	id := BlockID{Type: BlockTypeHeader, Sequence: 0xF, Channel: 0, DIFSequence: 0, DIFBlock: 1}
	if _, err := ParseBlockID(id.Bytes(), fi); err == nil {
		t.Error("ParseBlockID did not reject a DIF block beyond the header's capacity of 1")
	}
}
