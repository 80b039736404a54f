package frame

import (
	"testing"

	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/block"
	"github.com/JohnstonJ/dv/pack"
)

func testFileInfo() dv.FileInfo {
	return dv.FileInfo{System: dv.System525_60, Channels: 1, Tracks: 10}
}

// buildMinimalFrame constructs a Frame with every required block present
// but otherwise zero-valued, enough to exercise a full serialize/parse
// round trip across all 150 blocks of every track.
func buildMinimalFrame(fi dv.FileInfo) *Frame {
	f := &Frame{FileInfo: fi, Channels: make([]Channel, fi.Channels)}
	for c := 0; c < fi.Channels; c++ {
		tracks := make([]Track, fi.Tracks)
		for tr := 0; tr < fi.Tracks; tr++ {
			var track Track
			track.Header = headerBlock(c, tr, fi)
			for i := range track.Subcode {
				track.Subcode[i] = subcodeBlock(c, tr, i)
			}
			for i := range track.VAUX {
				track.VAUX[i] = vauxBlock(c, tr, i)
			}
			for i := range track.Audio {
				track.Audio[i] = audioBlock(c, tr, i)
			}
			for i := range track.Video {
				track.Video[i] = videoBlock(c, tr, i)
			}
			tracks[tr] = track
		}
		f.Channels[c] = Channel{Tracks: tracks}
	}
	return f
}

func blockID(typ dv.BlockType, channel, track, difBlock int) dv.BlockID {
	return dv.BlockID{Type: typ, Sequence: 0xF, Channel: channel, DIFSequence: track, DIFBlock: difBlock}
}

func headerBlock(c, tr int, fi dv.FileInfo) *block.Header {
	id := blockID(dv.BlockTypeHeader, c, tr, 0)
	buf, _ := (&block.Header{}).ToBinary(fi)
	blk, _ := block.ParseBinary(append(id.Bytes(), buf...), fi)
	return blk.(*block.Header)
}

func subcodeBlock(c, tr, i int) *block.Subcode {
	fi := testFileInfo()
	id := blockID(dv.BlockTypeSubcode, c, tr, i)
	buf, _ := (&block.Subcode{}).ToBinary(fi)
	blk, _ := block.ParseBinary(append(id.Bytes(), buf...), fi)
	return blk.(*block.Subcode)
}

func vauxBlock(c, tr, i int) *block.VAUX {
	fi := testFileInfo()
	id := blockID(dv.BlockTypeVAUX, c, tr, i)
	buf, _ := (&block.VAUX{}).ToBinary(fi)
	blk, _ := block.ParseBinary(append(id.Bytes(), buf...), fi)
	return blk.(*block.VAUX)
}

func audioBlock(c, tr, i int) *block.Audio {
	fi := testFileInfo()
	id := blockID(dv.BlockTypeAudio, c, tr, i)
	buf, _ := (&block.Audio{}).ToBinary(fi)
	blk, _ := block.ParseBinary(append(id.Bytes(), buf...), fi)
	return blk.(*block.Audio)
}

func videoBlock(c, tr, i int) *block.Video {
	fi := testFileInfo()
	id := blockID(dv.BlockTypeVideo, c, tr, i)
	buf, _ := (&block.Video{}).ToBinary(fi)
	blk, _ := block.ParseBinary(append(id.Bytes(), buf...), fi)
	return blk.(*block.Video)
}

func TestFrameRoundTrip(t *testing.T) {
	fi := testFileInfo()
	f := buildMinimalFrame(fi)

	raw, err := f.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	wantLen := fi.Channels * fi.Tracks * dv.BlocksPerTrack * dv.BlockSize
	if len(raw) != wantLen {
		t.Fatalf("raw frame length = %d, want %d", len(raw), wantLen)
	}

	got, err := ParseBinary(raw, fi)
	if err != nil {
		t.Fatalf("ParseBinary: %v", err)
	}
	if len(got.Channels) != len(f.Channels) {
		t.Fatalf("parsed %d channels, want %d", len(got.Channels), len(f.Channels))
	}
	for tr := 0; tr < fi.Tracks; tr++ {
		if got.Channels[0].Tracks[tr].Header == nil {
			t.Errorf("track %d is missing its Header block after round trip", tr)
		}
	}
}

func TestFrameToBinaryRejectsMissingBlock(t *testing.T) {
	fi := testFileInfo()
	f := buildMinimalFrame(fi)
	f.Channels[0].Tracks[0].Header = nil

	if _, err := f.ToBinary(); err == nil {
		t.Error("ToBinary did not reject a frame missing its Header block")
	}
}

func TestMajorityVoteBreaksTiesByInsertionOrder(t *testing.T) {
	fi := testFileInfo()
	f := buildMinimalFrame(fi)
	raw, err := f.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}

	corrupted := append([]byte(nil), raw...)
	corrupted[dv.BlockSize*3] ^= 0xFF // corrupt the first VAUX block's first ID byte in one capture

	got, err := MajorityVote([][]byte{raw, corrupted}, fi)
	if err != nil {
		t.Fatalf("MajorityVote: %v", err)
	}
	if string(got) != string(raw) {
		t.Error("MajorityVote did not prefer the uncorrupted, first-seen capture on a 1-1 tie")
	}
}

func TestMajorityVoteRejectsLengthMismatch(t *testing.T) {
	fi := testFileInfo()
	if _, err := MajorityVote([][]byte{{0x01}, {0x01, 0x02}}, fi); err == nil {
		t.Error("MajorityVote did not reject captures of differing length")
	}
}

func TestFrameAggregateValidatesDimensions(t *testing.T) {
	fi := testFileInfo()
	f := buildMinimalFrame(fi)
	raw, err := f.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	got, err := ParseBinary(raw, fi)
	if err != nil {
		t.Fatalf("ParseBinary: %v", err)
	}
	if msg := got.Validate(); msg != "" {
		t.Errorf("Validate() = %q, want \"\"", msg)
	}
}

func TestFrameAggregateVideoErrorSummary(t *testing.T) {
	fi := testFileInfo()
	f := buildMinimalFrame(fi)
	raw, err := f.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	got, err := ParseBinary(raw, fi)
	if err != nil {
		t.Fatalf("ParseBinary: %v", err)
	}
	if got.VideoErrorSummary != 0 {
		t.Errorf("VideoErrorSummary = %v, want 0 for an error-free frame", got.VideoErrorSummary)
	}
}

func TestFrameAggregateAudioErrorsWithoutAAUXSource(t *testing.T) {
	fi := testFileInfo()
	f := buildMinimalFrame(fi)
	raw, err := f.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	got, err := ParseBinary(raw, fi)
	if err != nil {
		t.Fatalf("ParseBinary: %v", err)
	}
	// A minimal frame carries no AAUXSource pack, so every audio block is
	// conservatively treated as erroneous.
	for half := 0; half < 2; half++ {
		if got.AudioErrorSummary[0][half] != 1 {
			t.Errorf("AudioErrorSummary[0][%d] = %v, want 1 with no AAUXSource present", half, got.AudioErrorSummary[0][half])
		}
	}
}

// vauxBlockWithDate builds a track's first VAUX block carrying a single
// VAUXRecordingDate pack in slot 0, the rest left NoInfo.
func vauxBlockWithDate(c, tr, year, month, day, weekday int) *block.VAUX {
	fi := testFileInfo()
	id := blockID(dv.BlockTypeVAUX, c, tr, 0)
	v := &block.VAUX{}
	v.Packs[0] = &pack.VAUXRecordingDate{}
	p := v.Packs[0].(*pack.VAUXRecordingDate)
	p.Year, p.Month, p.Day, p.Weekday = &year, &month, &day, &weekday
	buf, err := v.ToBinary(fi)
	if err != nil {
		panic(err)
	}
	blk, err := block.ParseBinary(append(id.Bytes(), buf...), fi)
	if err != nil {
		panic(err)
	}
	return blk.(*block.VAUX)
}

func TestFrameAggregateVotesMajorityVAUXPack(t *testing.T) {
	fi := testFileInfo() // 10 tracks
	f := buildMinimalFrame(fi)

	// 2020-01-01 was a Wednesday (weekday 3); 2021-01-01 was a Friday
	// (weekday 5). 7 tracks record the former, 3 tracks the latter.
	for tr := 0; tr < fi.Tracks; tr++ {
		if tr < 7 {
			f.Channels[0].Tracks[tr].VAUX[0] = vauxBlockWithDate(0, tr, 2020, 1, 1, 3)
		} else {
			f.Channels[0].Tracks[tr].VAUX[0] = vauxBlockWithDate(0, tr, 2021, 1, 1, 5)
		}
	}

	raw, err := f.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	got, err := ParseBinary(raw, fi)
	if err != nil {
		t.Fatalf("ParseBinary: %v", err)
	}

	p, ok := got.VAUXPacks[pack.TypeVAUXRecordingDate].(*pack.VAUXRecordingDate)
	if !ok {
		t.Fatal("VAUXPacks has no voted VAUXRecordingDate entry")
	}
	if p.Year == nil || *p.Year != 2020 {
		t.Errorf("voted VAUXRecordingDate year = %v, want 2020 (the 7-track majority)", p.Year)
	}
}
