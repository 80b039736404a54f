/*
DESCRIPTION
  frame.go assembles a complete video frame's worth of DIF blocks (one
  channel's Header/Subcode/VAUX/Audio/Video sections across every track)
  into a Frame, and serializes a Frame back to the wire's fixed block
  transmission order: 1 Header, 2 Subcode, 3 VAUX, then 9x(1 Audio, 15
  Video), repeated per track, repeated per channel.
*/

package frame

import (
	"github.com/pkg/errors"

	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/block"
	"github.com/JohnstonJ/dv/pack"
)

// Track holds every block recorded on one DIF sequence (track) of one
// channel.
type Track struct {
	Header  *block.Header
	Subcode [2]*block.Subcode
	VAUX    [3]*block.VAUX
	Audio   [9]*block.Audio
	Video   [135]*block.Video
}

// Channel holds every track recorded on one DIF channel.
type Channel struct {
	Tracks []Track // length fi.Tracks
}

// Frame is a fully assembled video frame: every DIF block from every
// track of every channel, in track/channel-indexed form rather than
// transmission order, plus the frame-wide majority-voted view derived
// from it.
//
// Channels holds the raw per-track blocks untouched, since a few of
// their fields (bulk audio/video sample data) are genuinely unique per
// track rather than redundant copies of a frame-wide value. Everything
// below Channels is the voted/aggregated view built by aggregate: the
// same field, read off of however many tracks recorded a usable copy
// of it, collapsed to the one value most of them agree on.
type Frame struct {
	FileInfo dv.FileInfo
	Channels []Channel // length fi.Channels

	// Header is the frame-wide vote over every track's Header block.
	Header HeaderFields

	// VAUXPacks and SubcodePacks are frame-wide votes, one winner per
	// pack kind, over every VAUX pack slot and Subcode sync-block entry
	// in the frame.
	VAUXPacks    map[pack.Type]pack.Pack
	SubcodePacks map[pack.Type]pack.Pack

	// TrackNumbers and TrackBlankFlags are indexed [channel][track]. A
	// nil entry means no sync block's entries produced a full vote
	// (e.g. every copy was dropped out).
	TrackNumbers    [][]*int
	TrackBlankFlags [][]*block.BlankFlag

	// AAUX is indexed [channel][audio half 0 or 1]: the frame-wide vote,
	// one winner per pack kind, over every Audio block's pack in that
	// half's tracks.
	AAUX [][2]map[pack.Type]pack.Pack

	// AudioErrors and VideoErrors are indexed [channel][track][DIF
	// block] and record whether that specific block's samples carry an
	// error-concealment pattern. AudioErrorSummary ([channel][half]) and
	// VideoErrorSummary are the mean of those booleans.
	AudioErrors       [][][9]bool
	AudioErrorSummary [][2]float64
	VideoErrors       [][][135]bool
	VideoErrorSummary float64

	// vauxSlotTypes, subcodeSlotTypes, and audioSlotTypes record which
	// pack kind occupied each raw slot (TypeNoInfo for a VAUX or Audio
	// slot whose pack did not parse). They are filled in while parsing
	// and are not read by Validate or ToBinary.
	vauxSlotTypes    [][][3][15]pack.Type
	subcodeSlotTypes [][][2][6]pack.Type
	audioSlotTypes   [][][9]pack.Type
}

// Validate asserts that every aggregated array's dimensions match
// fi.Channels and fi.Tracks. It does not re-check the per-block
// structural invariants already covered by block.Block's own Validate.
func (f *Frame) Validate() string {
	fi := f.FileInfo
	if len(f.Channels) != fi.Channels {
		return "frame channel count does not match file info"
	}
	dims := map[string]int{
		"TrackNumbers":      len(f.TrackNumbers),
		"TrackBlankFlags":   len(f.TrackBlankFlags),
		"AAUX":              len(f.AAUX),
		"AudioErrors":       len(f.AudioErrors),
		"AudioErrorSummary": len(f.AudioErrorSummary),
		"VideoErrors":       len(f.VideoErrors),
	}
	for name, n := range dims {
		if n != fi.Channels {
			return "frame " + name + " channel count does not match file info"
		}
	}
	for c, ch := range f.Channels {
		if len(ch.Tracks) != fi.Tracks {
			return "frame channel track count does not match file info"
		}
		if len(f.TrackNumbers[c]) != fi.Tracks || len(f.TrackBlankFlags[c]) != fi.Tracks ||
			len(f.AudioErrors[c]) != fi.Tracks || len(f.VideoErrors[c]) != fi.Tracks {
			return "frame per-track aggregate count does not match file info"
		}
	}
	return ""
}

// blockSlot names one of the 150 positions within a track's
// transmission order.
type blockSlot struct {
	typ      dv.BlockType
	difBlock int
}

// transmissionOrder lists the 150 block slots of one track in the order
// they are written to tape: 1 Header, 2 Subcode, 3 VAUX, then
// 9x(1 Audio, 15 Video).
func transmissionOrder() []blockSlot {
	order := make([]blockSlot, 0, dv.BlocksPerTrack)
	order = append(order, blockSlot{dv.BlockTypeHeader, 0})
	for i := 0; i < 2; i++ {
		order = append(order, blockSlot{dv.BlockTypeSubcode, i})
	}
	for i := 0; i < 3; i++ {
		order = append(order, blockSlot{dv.BlockTypeVAUX, i})
	}
	for seq := 0; seq < 9; seq++ {
		order = append(order, blockSlot{dv.BlockTypeAudio, seq})
		for v := 0; v < 15; v++ {
			order = append(order, blockSlot{dv.BlockTypeVideo, seq*15 + v})
		}
	}
	return order
}

// ParseBinary parses a complete frame from raw tape bytes: fi.Channels
// sections of fi.Tracks tracks of 150 80-byte blocks each, in
// transmission order.
func ParseBinary(buf []byte, fi dv.FileInfo) (*Frame, error) {
	wantLen := fi.Channels * fi.Tracks * dv.BlocksPerTrack * dv.BlockSize
	if len(buf) != wantLen {
		return nil, errors.Errorf("dv: frame must be %d bytes for %d channel(s) x %d tracks, got %d",
			wantLen, fi.Channels, fi.Tracks, len(buf))
	}

	order := transmissionOrder()
	f := &Frame{FileInfo: fi, Channels: make([]Channel, fi.Channels)}

	off := 0
	for c := 0; c < fi.Channels; c++ {
		tracks := make([]Track, fi.Tracks)
		for tr := 0; tr < fi.Tracks; tr++ {
			var track Track
			for _, slot := range order {
				blk, err := block.ParseBinary(buf[off:off+dv.BlockSize], fi)
				off += dv.BlockSize
				if err != nil {
					return nil, errors.Wrapf(err, "dv: parsing channel %d track %d slot %+v", c, tr, slot)
				}
				id := blk.ID()
				if id.Channel != c || id.DIFSequence != tr || id.Type != slot.typ || id.DIFBlock != slot.difBlock {
					return nil, dv.NewBlockError(
						"block at channel %d track %d slot %+v has unexpected ID %+v", c, tr, slot, id)
				}
				switch b := blk.(type) {
				case *block.Header:
					track.Header = b
				case *block.Subcode:
					track.Subcode[id.DIFBlock] = b
				case *block.VAUX:
					track.VAUX[id.DIFBlock] = b
				case *block.Audio:
					track.Audio[id.DIFBlock] = b
				case *block.Video:
					track.Video[id.DIFBlock] = b
				}
			}
			tracks[tr] = track
		}
		f.Channels[c] = Channel{Tracks: tracks}
	}

	f.aggregate()
	return f, nil
}

// ToBinary serializes the frame back to raw tape bytes in transmission
// order.
func (f *Frame) ToBinary() ([]byte, error) {
	fi := f.FileInfo
	order := transmissionOrder()
	out := make([]byte, 0, fi.Channels*fi.Tracks*dv.BlocksPerTrack*dv.BlockSize)

	for c, ch := range f.Channels {
		for tr, track := range ch.Tracks {
			for _, slot := range order {
				var blk block.Block
				var difBlock int
				switch slot.typ {
				case dv.BlockTypeHeader:
					blk, difBlock = track.Header, 0
				case dv.BlockTypeSubcode:
					blk, difBlock = track.Subcode[slot.difBlock], slot.difBlock
				case dv.BlockTypeVAUX:
					blk, difBlock = track.VAUX[slot.difBlock], slot.difBlock
				case dv.BlockTypeAudio:
					blk, difBlock = track.Audio[slot.difBlock], slot.difBlock
				case dv.BlockTypeVideo:
					blk, difBlock = track.Video[slot.difBlock], slot.difBlock
				}
				if blk == nil {
					return nil, dv.NewBlockError("frame is missing %s block %d in channel %d track %d", slot.typ, difBlock, c, tr)
				}
				bb, err := block.ToBinary(blk, fi)
				if err != nil {
					return nil, err
				}
				out = append(out, bb...)
			}
		}
	}

	return out, nil
}
