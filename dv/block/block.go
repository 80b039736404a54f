/*
DESCRIPTION
  block.go defines the Block interface implemented by every 80-byte DIF
  block payload type, and ParseBinary, which dispatches on the block's
  BlockID to the matching variant parser. Each variant's own file documents
  its exact wire layout.
*/

package block

import (
	"github.com/pkg/errors"

	"github.com/JohnstonJ/dv"
)

// Block is the uniform interface implemented by the payload of every DIF
// block kind: Header, Subcode, VAUX, Audio, and Video.
type Block interface {
	// ID returns the block's 3-byte identifier.
	ID() dv.BlockID

	// ToBinary serializes the receiver's payload back to 77 bytes (the
	// 80-byte block minus its 3-byte ID, which is serialized separately).
	ToBinary(fi dv.FileInfo) ([]byte, error)

	// Validate reports structural problems only: array lengths and
	// field-presence parity (e.g. within Subcode sync blocks). It does
	// not duplicate the wire-format checks already enforced by parsing.
	// An empty string means the receiver is structurally sound.
	Validate(fi dv.FileInfo) string
}

// ParseBinary parses one 80-byte DIF block: the first 3 bytes are the
// block ID, and the type it carries selects which of the five variant
// parsers decodes the remaining 77 bytes.
func ParseBinary(buf []byte, fi dv.FileInfo) (Block, error) {
	if len(buf) != dv.BlockSize {
		return nil, errors.Errorf("dv: block must be %d bytes, got %d", dv.BlockSize, len(buf))
	}

	id, err := dv.ParseBlockID(buf[:3], fi)
	if err != nil {
		return nil, errors.Wrap(err, "dv: parsing block ID")
	}

	payload := buf[3:]
	switch id.Type {
	case dv.BlockTypeHeader:
		return parseHeader(id, payload, fi)
	case dv.BlockTypeSubcode:
		return parseSubcode(id, payload, fi)
	case dv.BlockTypeVAUX:
		return parseVAUX(id, payload, fi)
	case dv.BlockTypeAudio:
		return parseAudio(id, payload, fi)
	case dv.BlockTypeVideo:
		return parseVideo(id, payload, fi)
	default:
		return nil, dv.NewBlockError("block has unhandled type %s", id.Type)
	}
}

// ToBinary serializes a full 80-byte block: the 3-byte ID followed by the
// variant's 77-byte payload.
func ToBinary(b Block, fi dv.FileInfo) ([]byte, error) {
	payload, err := b.ToBinary(fi)
	if err != nil {
		return nil, err
	}
	if len(payload) != dv.BlockSize-3 {
		return nil, dv.NewBlockError("block payload must be %d bytes, got %d", dv.BlockSize-3, len(payload))
	}
	out := make([]byte, 0, dv.BlockSize)
	out = append(out, b.ID().Bytes()...)
	out = append(out, payload...)
	return out, nil
}
