/*
DESCRIPTION
  aggregate.go builds the majority-voted, validated view of a Frame out
  of its raw per-(channel, track) blocks: Header fields, VAUX/Subcode
  packs by kind, per-(channel, track) absolute track numbers, and
  per-(channel, audio-half) AAUX packs, plus the audio/video error
  matrices. This is the "assembled frame" described by §4.4 of the
  frame codec: redundant copies of the same field, recorded all over
  the tape for resilience against dropouts, are collapsed down to one
  voted value per field by histogram.vote.
*/

package frame

import (
	"bytes"

	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/block"
	"github.com/JohnstonJ/dv/pack"
)

// HeaderFields is the frame-wide, majority-voted content of every
// track's Header block.
type HeaderFields struct {
	DSF                bool
	TrackPitch         *block.TrackPitch
	PilotFrame         *bool
	ApplicationIDTrack block.ApplicationID
	ApplicationID1     block.ApplicationID
	ApplicationID2     block.ApplicationID
	ApplicationID3     block.ApplicationID
}

// trackHalf reports which audio half (0 or 1) a track belongs to: half
// 0 is tracks [0, tracks/2), half 1 is [tracks/2, tracks).
func trackHalf(track, tracks int) int {
	if track < tracks/2 {
		return 0
	}
	return 1
}

// subcodeRole classifies a sync-block's global position (0-11, block
// index * 6 + entry index) by which of the 22-bit absolute track
// number's three interleaved bytes it contributes to.
func subcodeRole(blockIdx, entry int) int {
	return (blockIdx*6 + entry) % 3
}

// aggregate computes every majority-voted field of a Frame from its raw
// Channels. It is called once by ParseBinary; Frame.Validate separately
// checks the resulting array dimensions.
func (f *Frame) aggregate() {
	fi := f.FileInfo

	f.vauxSlotTypes = make([][][3][15]pack.Type, fi.Channels)
	f.subcodeSlotTypes = make([][][2][6]pack.Type, fi.Channels)
	f.audioSlotTypes = make([][][9]pack.Type, fi.Channels)
	f.TrackNumbers = make([][]*int, fi.Channels)
	f.TrackBlankFlags = make([][]*block.BlankFlag, fi.Channels)
	f.AAUX = make([][2]map[pack.Type]pack.Pack, fi.Channels)
	f.AudioErrors = make([][][9]bool, fi.Channels)
	f.AudioErrorSummary = make([][2]float64, fi.Channels)
	f.VideoErrors = make([][][135]bool, fi.Channels)

	headerHist := newHistogram[string]()
	vauxHist := map[pack.Type]*histogram[string]{}
	subcodeHist := map[pack.Type]*histogram[string]{}
	// aauxHistByChannelHalf[channel][half][type]
	aauxHistByChannelHalf := make([][2]map[pack.Type]*histogram[string], fi.Channels)

	var videoErrorTotal, videoErrorCount int

	for c := 0; c < fi.Channels; c++ {
		f.vauxSlotTypes[c] = make([][3][15]pack.Type, fi.Tracks)
		f.subcodeSlotTypes[c] = make([][2][6]pack.Type, fi.Tracks)
		f.audioSlotTypes[c] = make([][9]pack.Type, fi.Tracks)
		f.TrackNumbers[c] = make([]*int, fi.Tracks)
		f.TrackBlankFlags[c] = make([]*block.BlankFlag, fi.Tracks)
		f.AAUX[c] = [2]map[pack.Type]pack.Pack{{}, {}}
		aauxHistByChannelHalf[c] = [2]map[pack.Type]*histogram[string]{{}, {}}
		f.AudioErrors[c] = make([][9]bool, fi.Tracks)
		f.VideoErrors[c] = make([][135]bool, fi.Tracks)

		for tr := 0; tr < fi.Tracks; tr++ {
			track := f.Channels[c].Tracks[tr]
			half := trackHalf(tr, fi.Tracks)

			if track.Header != nil {
				if b, err := track.Header.ToBinary(fi); err == nil && len(b) >= 5 {
					headerHist.add(string(b[:5]))
				}
			}

			for db := 0; db < 3; db++ {
				v := track.VAUX[db]
				if v == nil {
					continue
				}
				for slot, p := range v.Packs {
					if p == nil {
						f.vauxSlotTypes[c][tr][db][slot] = pack.TypeNoInfo
						continue
					}
					typ := p.PackType()
					f.vauxSlotTypes[c][tr][db][slot] = typ
					pb, err := p.ToBinary(fi.System)
					if err != nil {
						continue
					}
					h, ok := vauxHist[typ]
					if !ok {
						h = newHistogram[string]()
						vauxHist[typ] = h
					}
					h.add(string(pb))
				}
			}

			roleHist := [3]*histogram[int]{newHistogram[int](), newHistogram[int](), newHistogram[int]()}
			blankHist := newHistogram[block.BlankFlag]()
			for db := 0; db < 2; db++ {
				s := track.Subcode[db]
				if s == nil {
					continue
				}
				for i, e := range s.Entries {
					if e.Pack != nil {
						typ := e.PackType
						f.subcodeSlotTypes[c][tr][db][i] = typ
						pb, err := e.Pack.ToBinary(fi.System)
						if err == nil {
							h, ok := subcodeHist[typ]
							if !ok {
								h = newHistogram[string]()
								subcodeHist[typ] = h
							}
							h.add(string(pb))
						}
					} else {
						f.subcodeSlotTypes[c][tr][db][i] = e.PackType
					}
					if !e.Present {
						continue
					}
					role := subcodeRole(db, i)
					roleHist[role].add(e.AbsoluteTrackNumber & 0x7F)
					if role == 0 && e.BlankFlag != nil {
						blankHist.add(*e.BlankFlag)
					}
				}
			}
			byte0, ok0 := roleHist[0].vote()
			byte1, ok1 := roleHist[1].vote()
			byte2, ok2 := roleHist[2].vote()
			if ok0 && ok1 && ok2 {
				n := byte0<<15 | byte1<<7 | byte2
				f.TrackNumbers[c][tr] = &n
			}
			if bf, ok := blankHist.vote(); ok {
				f.TrackBlankFlags[c][tr] = &bf
			}

			for db := 0; db < 9; db++ {
				a := track.Audio[db]
				if a == nil {
					continue
				}
				if a.Pack == nil {
					f.audioSlotTypes[c][tr][db] = pack.TypeNoInfo
					continue
				}
				typ := a.Pack.PackType()
				f.audioSlotTypes[c][tr][db] = typ
				pb, err := a.Pack.ToBinary(fi.System)
				if err != nil {
					continue
				}
				h, ok := aauxHistByChannelHalf[c][half][typ]
				if !ok {
					h = newHistogram[string]()
					aauxHistByChannelHalf[c][half][typ] = h
				}
				h.add(string(pb))
			}

			for db := 0; db < 135; db++ {
				v := track.Video[db]
				hasErr := v == nil || v.HasVideoErrors()
				f.VideoErrors[c][tr][db] = hasErr
				videoErrorCount++
				if hasErr {
					videoErrorTotal++
				}
			}
		}

		for half := 0; half < 2; half++ {
			voted := map[pack.Type]pack.Pack{}
			for typ, h := range aauxHistByChannelHalf[c][half] {
				winner, ok := h.vote()
				if !ok {
					continue
				}
				if p := pack.ParseBinary([]byte(winner), fi.System); p != nil {
					voted[typ] = p
				}
			}
			f.AAUX[c][half] = voted
		}

		for tr := 0; tr < fi.Tracks; tr++ {
			half := trackHalf(tr, fi.Tracks)
			src, ok := f.AAUX[c][half][pack.TypeAAUXSource].(*pack.AAUXSource)
			for db := 0; db < 9; db++ {
				a := f.Channels[c].Tracks[tr].Audio[db]
				switch {
				case !ok || a == nil:
					f.AudioErrors[c][tr][db] = true
				default:
					f.AudioErrors[c][tr][db] = a.HasAudioErrors(fi, src.AudioSamplesPerFrame, src.Quantization)
				}
			}
		}
		for half := 0; half < 2; half++ {
			var total, errs int
			for tr := 0; tr < fi.Tracks; tr++ {
				if trackHalf(tr, fi.Tracks) != half {
					continue
				}
				for db := 0; db < 9; db++ {
					total++
					if f.AudioErrors[c][tr][db] {
						errs++
					}
				}
			}
			if total > 0 {
				f.AudioErrorSummary[c][half] = float64(errs) / float64(total)
			}
		}
	}

	if winner, ok := headerHist.vote(); ok {
		full := append([]byte(winner), bytes.Repeat([]byte{0xFF}, dv.BlockSize-3-5)...)
		id := dv.BlockID{Type: dv.BlockTypeHeader, Sequence: 0xF, Channel: 0, DIFSequence: 0, DIFBlock: 0}
		if blk, err := block.ParseBinary(append(id.Bytes(), full...), fi); err == nil {
			h := blk.(*block.Header)
			f.Header = HeaderFields{
				DSF:                h.DSF,
				TrackPitch:         h.TrackPitch,
				PilotFrame:         h.PilotFrame,
				ApplicationIDTrack: h.ApplicationIDTrack,
				ApplicationID1:     h.ApplicationID1,
				ApplicationID2:     h.ApplicationID2,
				ApplicationID3:     h.ApplicationID3,
			}
		}
	}

	f.VAUXPacks = voteByType(vauxHist, fi.System)
	f.SubcodePacks = voteByType(subcodeHist, fi.System)

	if videoErrorCount > 0 {
		f.VideoErrorSummary = float64(videoErrorTotal) / float64(videoErrorCount)
	}
}

// voteByType resolves one winning pack per kind out of a set of
// per-kind byte histograms.
func voteByType(hist map[pack.Type]*histogram[string], system dv.System) map[pack.Type]pack.Pack {
	out := map[pack.Type]pack.Pack{}
	for typ, h := range hist {
		winner, ok := h.vote()
		if !ok {
			continue
		}
		if p := pack.ParseBinary([]byte(winner), system); p != nil {
			out[typ] = p
		}
	}
	return out
}
