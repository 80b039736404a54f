/*
DESCRIPTION
  subcode.go implements the Subcode DIF block: a coarse, independently
  addressable index into the tape used for fast-forward/rewind search,
  built from 6 sync-block entries. There are 2 Subcode blocks per track
  (DIFBlock 0 and 1), each holding its own 6 entries.
*/

package block

import (
	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/pack"
)

// BlankFlag reports whether the recording at a sync block is a
// continuation of the previous one or a discontinuity (e.g. the start of
// a new recording).
type BlankFlag uint8

const (
	BlankFlagDiscontinuous BlankFlag = 0x0
	BlankFlagContinuous    BlankFlag = 0x1
)

// SubcodeEntry is one of the 6 sync-block entries packed into a Subcode
// block. An absent entry (Present == false) serializes its ID part to the
// all-ones "absent" sentinel, matching the source format's pruning rule
// that ID0, ID1, and the parity byte are either all meaningful or all 0xFF
// together. The entry's pack is written the same way whether or not the
// ID part is present.
//
// Wire layout (3 bytes: ID0, ID1, parity):
//
//	ID0 (tagged variant):    fr(1) | index(1) | skip(1) | pictureTag(1) | abst_hi(4)
//	ID0 (application variant): fr(1) | applicationID(3) | abst_hi(4)
//	ID1 (with blank flag):   abst_lo(3) | bf(1) | syb(4)
//	ID1 (without blank flag): abst_lo(4) | syb(4)
//	parity: always 0xFF
type SubcodeEntry struct {
	Present bool

	FrontHalf bool

	// Index, Skip, and PictureTag are set together (the "tagged" ID0
	// variant); ApplicationID is set instead for the other variant. Exactly
	// one of the two groups is populated when Present.
	Index         *bool
	Skip          *bool
	PictureTag    *bool
	ApplicationID *ApplicationID

	// BlankFlag is set only when the entry uses the ID1 variant that
	// carries it, which shortens AbsoluteTrackNumber to 7 bits instead of 8.
	BlankFlag *BlankFlag

	AbsoluteTrackNumber int   // 7 or 8 bits depending on BlankFlag's presence
	SyncBlockNumber     uint8 // 4 bits

	Pack     pack.Pack
	PackType pack.Type
}

// Subcode is one of the 2 per-track Subcode DIF blocks.
//
// Payload layout (77 bytes):
//
//	byte0: sct(8) - subcode track-number low byte, preserved verbatim
//	byte1: reserved(8, = 0xFF)
//	bytes2-49: 6 entries x 8 bytes (ID0, ID1, parity, 5-byte pack)
//	bytes50-76: reserved(27 bytes, = 0xFF)
type Subcode struct {
	id dv.BlockID

	SCT     uint8
	Entries [6]SubcodeEntry
}

func (s *Subcode) ID() dv.BlockID { return s.id }

// Validate checks field-presence parity within each of the 6 sync-block
// entries: an absent entry must carry no other field, and a present
// tagged-variant entry must carry Index, Skip, and PictureTag together.
func (s *Subcode) Validate(fi dv.FileInfo) string {
	for _, e := range s.Entries {
		if !e.Present {
			if e.Index != nil || e.Skip != nil || e.PictureTag != nil ||
				e.ApplicationID != nil || e.BlankFlag != nil {
				return "subcode entry is absent but carries other fields"
			}
			continue
		}
		tagged := e.Index != nil
		if tagged != (e.Skip != nil) || tagged != (e.PictureTag != nil) {
			return "subcode entry's tagged-variant fields must be present or absent together"
		}
		if tagged == (e.ApplicationID != nil) {
			return "subcode entry must use exactly one of the tagged or application-ID variants"
		}
	}
	return ""
}

// parseSubcodeEntry decodes one 8-byte sync-block entry at position i
// (0-5) of the blockIdx-th (0 or 1) Subcode block on track track of a
// fi.Tracks-track recording.
//
// Before trusting any of the ID part's bits, it checks the validity
// gates: the front-half bit must match the expected half of the track,
// the sync-block number must match the entry's position
// (blockIdx*6 + i), and an application-ID nibble must not be the
// no-info sentinel 0x7. If any gate fails, the entire ID part is
// treated as absent rather than raised as an error - only a few sync
// blocks out of every track are expected to validly identify their
// position, by design of the format's redundancy.
func parseSubcodeEntry(b []byte, system dv.System, track int, fi dv.FileInfo, blockIdx, i int) (SubcodeEntry, error) {
	id0, id1, parity := b[0], b[1], b[2]

	e := SubcodeEntry{
		Pack:     pack.ParseBinary(b[3:8], system),
		PackType: pack.Type(b[3]),
	}

	if id0 == 0xFF && id1 == 0xFF && parity == 0xFF {
		return e, nil
	}
	if parity != 0xFF {
		return SubcodeEntry{}, dv.NewBlockError("subcode parity byte must be 0xFF")
	}

	frontHalf := (id0>>7)&0x1 == 1

	// The tagged ID0 form (index/skip/pictureTag) always pairs with the
	// blank-flag ID1 form. ID0 alone decides which form is read: any set
	// bit among bits 4-6 selects the tagged form, so an application ID
	// other than 0 reads back as tags, and a tagged entry whose three tags
	// are all false reads back as an application-ID entry.
	isTagged := id0&0x70 != 0
	var index, skip, pictureTag *bool
	var appID *ApplicationID
	var blankFlag *BlankFlag
	var absoluteTrackNumber int
	var syncBlockNumber uint8

	if isTagged {
		idx := (id0>>6)&0x1 == 1
		sk := (id0>>5)&0x1 == 1
		pic := (id0>>4)&0x1 == 1
		index, skip, pictureTag = &idx, &sk, &pic
		abstHi := int(id0 & 0xF)

		bf := BlankFlag((id1 >> 4) & 0x1)
		blankFlag = &bf
		absoluteTrackNumber = abstHi<<3 | int((id1>>5)&0x7)
		syncBlockNumber = id1 & 0xF
	} else {
		a := ApplicationID((id0 >> 4) & 0x7)
		appID = &a
		abstHi := int(id0 & 0xF)
		absoluteTrackNumber = abstHi<<4 | int(id1>>4)
		syncBlockNumber = id1 & 0xF
	}

	expectedFrontHalf := track < fi.Tracks/2
	expectedSync := uint8(blockIdx*6 + i)
	gateFailed := frontHalf != expectedFrontHalf ||
		syncBlockNumber != expectedSync ||
		(appID != nil && *appID == ApplicationIDNoInfo)
	if gateFailed {
		return e, nil
	}

	e.Present = true
	e.FrontHalf = frontHalf
	e.Index, e.Skip, e.PictureTag = index, skip, pictureTag
	e.ApplicationID = appID
	e.BlankFlag = blankFlag
	e.AbsoluteTrackNumber = absoluteTrackNumber
	e.SyncBlockNumber = syncBlockNumber
	return e, nil
}

func parseSubcode(id dv.BlockID, payload []byte, fi dv.FileInfo) (Block, error) {
	if len(payload) != dv.BlockSize-3 {
		return nil, dv.NewBlockError("subcode payload must be %d bytes, got %d", dv.BlockSize-3, len(payload))
	}
	if payload[1] != 0xFF {
		return nil, dv.NewBlockError("subcode reserved byte 1 is not 0xFF")
	}
	for _, b := range payload[50:] {
		if b != 0xFF {
			return nil, dv.NewBlockError("subcode trailing reserved bytes are not all 0xFF")
		}
	}

	s := &Subcode{id: id, SCT: payload[0]}
	for i := 0; i < 6; i++ {
		entry, err := parseSubcodeEntry(payload[2+i*8:2+i*8+8], fi.System, id.DIFSequence, fi, id.DIFBlock, i)
		if err != nil {
			return nil, err
		}
		s.Entries[i] = entry
	}
	return s, nil
}

func (e SubcodeEntry) toBinary(system dv.System) ([]byte, error) {
	packBytes := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if e.Pack != nil {
		pb, err := e.Pack.ToBinary(system)
		if err != nil {
			return nil, err
		}
		packBytes = pb
	}

	if !e.Present {
		return append([]byte{0xFF, 0xFF, 0xFF}, packBytes...), nil
	}

	var fr byte
	if e.FrontHalf {
		fr = 1
	}

	var id0, id1 byte
	if e.Index != nil {
		var idx, skip, pic byte
		if *e.Index {
			idx = 1
		}
		if e.Skip != nil && *e.Skip {
			skip = 1
		}
		if e.PictureTag != nil && *e.PictureTag {
			pic = 1
		}
		id0 = fr<<7 | idx<<6 | skip<<5 | pic<<4 | byte(e.AbsoluteTrackNumber>>3)&0xF
		var bf byte
		if e.BlankFlag != nil {
			bf = byte(*e.BlankFlag)
		}
		id1 = byte(e.AbsoluteTrackNumber&0x7)<<5 | bf<<4 | e.SyncBlockNumber&0xF
	} else {
		appID := ApplicationIDNoInfo
		if e.ApplicationID != nil {
			appID = *e.ApplicationID
		}
		id0 = fr<<7 | byte(appID&0x7)<<4 | byte(e.AbsoluteTrackNumber>>4)&0xF
		id1 = byte(e.AbsoluteTrackNumber&0xF)<<4 | e.SyncBlockNumber&0xF
	}

	out := make([]byte, 0, 8)
	out = append(out, id0, id1, 0xFF)
	out = append(out, packBytes...)
	return out, nil
}

func (s *Subcode) ToBinary(fi dv.FileInfo) ([]byte, error) {
	out := make([]byte, 0, dv.BlockSize-3)
	out = append(out, s.SCT, 0xFF)
	for _, e := range s.Entries {
		eb, err := e.toBinary(fi.System)
		if err != nil {
			return nil, err
		}
		out = append(out, eb...)
	}
	for i := 0; i < 27; i++ {
		out = append(out, 0xFF)
	}
	return out, nil
}
