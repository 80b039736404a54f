/*
DESCRIPTION
  vaux.go implements the VAUX DIF block: 15 packs of video-auxiliary
  metadata (recording date/time, camera settings, source control). There
  are 3 VAUX blocks per track (DIFBlock 0-2), each holding its own 15
  packs.
*/

package block

import (
	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/pack"
)

// VAUX is one of the 3 per-track VAUX DIF blocks.
//
// Payload layout (77 bytes): 15 packs x 5 bytes, followed by 2 reserved
// bytes (= 0xFF).
type VAUX struct {
	id dv.BlockID

	Packs [15]pack.Pack
}

func (v *VAUX) ID() dv.BlockID { return v.id }

// Validate reports no structural problems: Packs is a fixed-size
// 15-element array, so its length always matches the wire layout.
func (v *VAUX) Validate(fi dv.FileInfo) string {
	return ""
}

func parseVAUX(id dv.BlockID, payload []byte, fi dv.FileInfo) (Block, error) {
	if len(payload) != dv.BlockSize-3 {
		return nil, dv.NewBlockError("vaux payload must be %d bytes, got %d", dv.BlockSize-3, len(payload))
	}
	if payload[75] != 0xFF || payload[76] != 0xFF {
		return nil, dv.NewBlockError("vaux trailing reserved bytes are not 0xFF")
	}

	v := &VAUX{id: id}
	for i := 0; i < 15; i++ {
		v.Packs[i] = pack.ParseBinary(payload[i*5:i*5+5], fi.System)
	}
	return v, nil
}

func (v *VAUX) ToBinary(fi dv.FileInfo) ([]byte, error) {
	out := make([]byte, 0, dv.BlockSize-3)
	for _, p := range v.Packs {
		pb, err := packToBinaryOrNoInfo(p, fi.System)
		if err != nil {
			return nil, err
		}
		out = append(out, pb...)
	}
	out = append(out, 0xFF, 0xFF)
	return out, nil
}

// packToBinaryOrNoInfo serializes p, substituting the all-0xFF NoInfo
// pack when p is nil (an empty slot).
func packToBinaryOrNoInfo(p pack.Pack, system dv.System) ([]byte, error) {
	if p == nil {
		return []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, nil
	}
	return p.ToBinary(system)
}
