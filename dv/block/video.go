/*
DESCRIPTION
  video.go implements the Video DIF block: one 1-byte status/quantization
  header plus 76 bytes of compressed DCT video data. There are 135 Video
  blocks per track (DIFBlock 0-134); the codec does not decode the DCT
  payload, only preserves it and reports whether its status byte flags an
  error.
*/

package block

import (
	"github.com/JohnstonJ/dv"
)

// Video is one of the 135 per-track Video DIF blocks.
//
// Payload layout (77 bytes):
//
//	byte0: status(4) | quantizationNumber(4)
//	bytes1-76: dctBlocks(76)
type Video struct {
	id dv.BlockID

	Status             uint8 // 4 bits; non-zero means a concealed/lost macroblock
	QuantizationNumber uint8 // 4 bits
	DCTBlocks          [76]byte
}

func (v *Video) ID() dv.BlockID { return v.id }

// Validate reports a problem when Status or QuantizationNumber does not
// fit in 4 bits; DCTBlocks is a fixed-size 76-byte array.
func (v *Video) Validate(fi dv.FileInfo) string {
	if v.Status > 0xF {
		return "video status field does not fit in 4 bits"
	}
	if v.QuantizationNumber > 0xF {
		return "video quantization number does not fit in 4 bits"
	}
	return ""
}

func parseVideo(id dv.BlockID, payload []byte, fi dv.FileInfo) (Block, error) {
	if len(payload) != dv.BlockSize-3 {
		return nil, dv.NewBlockError("video payload must be %d bytes, got %d", dv.BlockSize-3, len(payload))
	}
	v := &Video{
		id:                 id,
		Status:             (payload[0] >> 4) & 0xF,
		QuantizationNumber: payload[0] & 0xF,
	}
	copy(v.DCTBlocks[:], payload[1:])
	return v, nil
}

func (v *Video) ToBinary(fi dv.FileInfo) ([]byte, error) {
	out := make([]byte, 0, dv.BlockSize-3)
	out = append(out, v.Status<<4|v.QuantizationNumber&0xF)
	out = append(out, v.DCTBlocks[:]...)
	return out, nil
}

// HasVideoErrors reports whether the block's status byte flags an error
// (a non-zero status means the macroblock was concealed or lost).
func (v *Video) HasVideoErrors() bool {
	return v.Status != 0
}
