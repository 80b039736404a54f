package dv

import (
	"fmt"

	"github.com/pkg/errors"
)

// BlockType identifies which of the five DIF block kinds a block is.
type BlockType uint8

const (
	BlockTypeHeader BlockType = iota
	BlockTypeSubcode
	BlockTypeVAUX
	BlockTypeAudio
	BlockTypeVideo
)

func (t BlockType) String() string {
	switch t {
	case BlockTypeHeader:
		return "header"
	case BlockTypeSubcode:
		return "subcode"
	case BlockTypeVAUX:
		return "vaux"
	case BlockTypeAudio:
		return "audio"
	case BlockTypeVideo:
		return "video"
	default:
		return "unknown"
	}
}

// maxDIFBlock is the highest legal DifBlock value (inclusive) per block
// type: Header has exactly 1 block per track, Subcode 2, VAUX 3, Audio 9,
// Video 135.
var maxDIFBlock = map[BlockType]int{
	BlockTypeHeader:  0,
	BlockTypeSubcode: 1,
	BlockTypeVAUX:    2,
	BlockTypeAudio:   8,
	BlockTypeVideo:   134,
}

// BlockID is the 3-byte identifier at the start of every DIF block.
//
// Wire layout (big-endian, byte-masked):
//
//	byte 0: type(3) | zero(1) | sequence(4)
//	byte 1: channel(1) | reserved(3, always 0x7) | dif_sequence(4)
//	byte 2: dif_block(8)
//
// Sequence is an arbitrary per-frame nonce; it is fixed at 0xF for Header
// and Subcode blocks (which carry no meaningful sequence number of their
// own) and otherwise free for the writer to choose.
type BlockID struct {
	Type        BlockType
	Sequence    uint8 // 4 bits
	Channel     int   // 0 or 1
	DIFSequence int   // track index: 0..(tracks-1)
	DIFBlock    int   // block-within-section index: 0..maxDIFBlock[Type]
}

// BlockError reports a structural corruption in a DIF block or its ID that
// cannot be represented as a valid record: reserved bits set, impossible
// field values, or mis-ordered blocks.
type BlockError struct {
	msg string
}

func (e *BlockError) Error() string { return e.msg }

// NewBlockError constructs a BlockError from a formatted message.
func NewBlockError(format string, args ...any) error {
	return &BlockError{msg: fmt.Sprintf(format, args...)}
}

// ParseBlockID parses the 3-byte block identifier at the head of a DIF
// block. fi is used to validate the channel and track ranges.
func ParseBlockID(buf []byte, fi FileInfo) (BlockID, error) {
	if len(buf) != 3 {
		return BlockID{}, errors.Errorf("dv: block ID must be 3 bytes, got %d", len(buf))
	}

	typ := BlockType((buf[0] >> 5) & 0x7)
	if _, ok := maxDIFBlock[typ]; !ok {
		return BlockID{}, NewBlockError("block ID has unrecognized section type %d", typ)
	}
	if buf[0]&0x10 != 0 {
		return BlockID{}, NewBlockError("zero bit in block ID byte 0 is unexpectedly set")
	}
	sequence := buf[0] & 0xF

	if buf[1]&0x70 != 0x70 {
		return BlockID{}, NewBlockError("reserved bits in block ID byte 1 are unexpectedly not 0x7")
	}
	channel := int((buf[1] >> 7) & 0x1)
	difSequence := int(buf[1] & 0xF)

	difBlock := int(buf[2])

	id := BlockID{
		Type:        typ,
		Sequence:    sequence,
		Channel:     channel,
		DIFSequence: difSequence,
		DIFBlock:    difBlock,
	}

	if channel >= fi.Channels {
		return BlockID{}, NewBlockError("block ID channel %d exceeds file channel count %d", channel, fi.Channels)
	}
	if difSequence >= fi.Tracks {
		return BlockID{}, NewBlockError("block ID DIF sequence %d exceeds track count %d", difSequence, fi.Tracks)
	}
	if difBlock > maxDIFBlock[typ] {
		return BlockID{}, NewBlockError("block ID DIF block %d exceeds capacity %d for %s", difBlock, maxDIFBlock[typ], typ)
	}

	return id, nil
}

// Bytes serializes the block identifier back to its 3-byte wire form.
func (id BlockID) Bytes() []byte {
	b0 := byte(id.Type&0x7)<<5 | (id.Sequence & 0xF)
	b1 := byte(id.Channel&0x1)<<7 | 0x70 | byte(id.DIFSequence&0xF)
	b2 := byte(id.DIFBlock)
	return []byte{b0, b1, b2}
}
