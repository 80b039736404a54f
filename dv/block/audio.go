/*
DESCRIPTION
  audio.go implements the Audio DIF block: one AAUX pack plus 72 bytes of
  raw (unshuffled) PCM audio data. There are 9 Audio blocks per track
  (DIFBlock 0-8); dv/shuffle maps their contents to sample positions in
  frame order.
*/

package block

import (
	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/pack"
	"github.com/JohnstonJ/dv/shuffle"
)

// linearErrorPattern is the fixed 16-bit linear-PCM error-concealment
// pattern (0x8000) a DV recorder writes over a sample it failed to
// record.
const linearErrorPattern = 0x8000

// Audio is one of the 9 per-track Audio DIF blocks.
//
// Payload layout (77 bytes): a 5-byte AAUX pack, followed by 72 bytes of
// audio sample data (36 samples at 16-bit linear, or 48 at 12-bit
// nonlinear, depending on quantization).
type Audio struct {
	id dv.BlockID

	Pack pack.Pack
	Data [72]byte
}

func (a *Audio) ID() dv.BlockID { return a.id }

// Validate reports no structural problems: Data is a fixed-size
// 72-byte array, so its length always matches the wire layout.
func (a *Audio) Validate(fi dv.FileInfo) string {
	return ""
}

func parseAudio(id dv.BlockID, payload []byte, fi dv.FileInfo) (Block, error) {
	if len(payload) != dv.BlockSize-3 {
		return nil, dv.NewBlockError("audio payload must be %d bytes, got %d", dv.BlockSize-3, len(payload))
	}
	a := &Audio{id: id, Pack: pack.ParseBinary(payload[:5], fi.System)}
	copy(a.Data[:], payload[5:])
	return a, nil
}

func (a *Audio) ToBinary(fi dv.FileInfo) ([]byte, error) {
	pb, err := packToBinaryOrNoInfo(a.Pack, fi.System)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, dv.BlockSize-3)
	out = append(out, pb...)
	out = append(out, a.Data[:]...)
	return out, nil
}

// HasLinear16Error reports whether the 2-byte linear-PCM sample at
// Data[offset:offset+2] is the error-concealment pattern 0x8000.
func (a *Audio) HasLinear16Error(offset int) bool {
	if offset < 0 || offset+2 > len(a.Data) {
		return false
	}
	sample := uint16(a.Data[offset])<<8 | uint16(a.Data[offset+1])
	return sample == linearErrorPattern
}

// nonlinear12Errors reports the error-concealment state of each of the
// two 12-bit nonlinear-PCM samples packed at Data[offset:offset+3]:
// sample Y in the high nibble-and-byte, sample Z in the low
// nibble-and-byte. Either carries the error pattern when its MSB is 0x8
// and the corresponding LSB nibble is zero.
func (a *Audio) nonlinear12Errors(offset int) (yErr, zErr bool) {
	if offset < 0 || offset+3 > len(a.Data) {
		return false, false
	}
	msbY, msbZ, lsb := a.Data[offset], a.Data[offset+1], a.Data[offset+2]
	yErr = msbY == 0x80 && lsb&0xF0 == 0x00
	zErr = msbZ == 0x80 && lsb&0x0F == 0x00
	return yErr, zErr
}

// HasNonlinear12Error reports whether either of the two 12-bit
// nonlinear-PCM samples packed at Data[offset:offset+3] carries the
// error-concealment pattern.
func (a *Audio) HasNonlinear12Error(offset int) bool {
	yErr, zErr := a.nonlinear12Errors(offset)
	return yErr || zErr
}

// HasAudioErrors enumerates the sample indices the audio-shuffle table
// (dv/shuffle) places in this block's 72-byte payload, bounded by
// samplesPerFrame, and reports whether any in-range sample carries its
// quantization's error-concealment pattern. Samples at or beyond
// samplesPerFrame are unused and never contribute.
func (a *Audio) HasAudioErrors(fi dv.FileInfo, samplesPerFrame int, quantization pack.AudioQuantization) bool {
	table := shuffle.Build(fi.System)
	slots := len(a.Data) / shuffle.BytesPerSample

	for dataOffset := 0; dataOffset < slots; dataOffset++ {
		pos := shuffle.Position{
			DIFSequence: a.id.DIFSequence,
			DIFBlock:    a.id.DIFBlock,
			ByteOffset:  dataOffset * shuffle.BytesPerSample,
		}
		n, ok := table.SampleNumber(pos)
		if !ok || n >= samplesPerFrame {
			continue
		}

		switch quantization {
		case pack.AudioQuantizationLinear16Bit:
			if a.HasLinear16Error(dataOffset * shuffle.BytesPerSample) {
				return true
			}
		case pack.AudioQuantizationNonlinear12Bit:
			// Two nonlinear samples share one 3-byte group: even
			// data offsets are the group's Y sample, odd ones Z.
			groupOffset := (dataOffset / 2) * 3
			yErr, zErr := a.nonlinear12Errors(groupOffset)
			if dataOffset%2 == 0 {
				if yErr {
					return true
				}
			} else if zErr {
				return true
			}
		}
	}
	return false
}
