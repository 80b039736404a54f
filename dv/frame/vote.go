/*
DESCRIPTION
  vote.go implements majority-vote error recovery: when the same frame has
  been captured more than once (e.g. multiple tape passes over a damaged
  section), MajorityVote reconstructs the most likely original frame by
  choosing, block by block, whichever exact byte sequence was seen most
  often across captures. Ties are broken by insertion order: the value
  that appeared first among the tied candidates wins, so that a single
  canonical capture (passed first) anchors the result when votes split
  evenly.
*/

package frame

import (
	"github.com/pkg/errors"

	"github.com/JohnstonJ/dv"
)

// MajorityVote reconstructs one frame from multiple raw captures of it,
// all assumed to have the same FileInfo layout. It returns an error if
// no captures are given or their lengths disagree.
func MajorityVote(captures [][]byte, fi dv.FileInfo) ([]byte, error) {
	if len(captures) == 0 {
		return nil, errors.New("dv: majority vote requires at least one capture")
	}
	frameLen := fi.Channels * fi.Tracks * dv.BlocksPerTrack * dv.BlockSize
	for i, c := range captures {
		if len(c) != frameLen {
			return nil, errors.Errorf("dv: capture %d has length %d, want %d", i, len(c), frameLen)
		}
	}

	out := make([]byte, frameLen)
	numBlocks := frameLen / dv.BlockSize
	for b := 0; b < numBlocks; b++ {
		start, end := b*dv.BlockSize, (b+1)*dv.BlockSize
		winner := voteBlock(captures, start, end)
		copy(out[start:end], winner)
	}

	return out, nil
}

// voteBlock picks the most common byte sequence among captures at
// [start:end), breaking ties by which distinct value was first
// encountered while scanning captures in order.
func voteBlock(captures [][]byte, start, end int) []byte {
	h := newHistogram[string]()
	for _, c := range captures {
		h.add(string(c[start:end]))
	}
	winner, _ := h.vote() // len(captures) > 0 is checked by the caller
	return []byte(winner)
}
