/*
DESCRIPTION
  shuffle.go builds the audio-shuffle table that maps a frame-order audio
  sample number to the (DIF sequence, DIF block, byte offset) triple where
  it is physically recorded, and its inverse. DV shuffles audio samples
  across tracks so that a single damaged track loses only a scattered
  fraction of the recording rather than a contiguous span.

  The table has two nested levels. The inner level (size tracks*9)
  assigns each sample a distinct (DIF sequence, DIF block) pair - one of
  the tracks*9 Audio blocks available per channel per frame. The outer
  level counts how many times the inner level has repeated, and that
  count selects a 2-byte slot within the Audio block's 72-byte data area,
  36 slots deep.
*/

package shuffle

import "github.com/JohnstonJ/dv"

// Position identifies where one audio sample physically lives within a
// channel's set of tracks.
type Position struct {
	// DIFSequence is the track index (0..tracks-1).
	DIFSequence int
	// DIFBlock is the Audio-block index within the track (0-8).
	DIFBlock int
	// ByteOffset is the offset of the sample's first byte within the
	// Audio block's 72-byte data area.
	ByteOffset int
}

// BytesPerSample is the number of bytes the shuffle table allocates per
// sample slot; callers combine this with the sample's quantization to
// decide how many of those bytes are meaningful.
const BytesPerSample = 2

// slotsPerBlock is the number of BytesPerSample-sized slots in an Audio
// block's 72-byte data area.
const slotsPerBlock = 72 / BytesPerSample

// Table maps frame-order sample number -> physical Position, and back.
type Table struct {
	forward []Position
	inverse map[Position]int
}

// Build constructs the shuffle table for system, which determines the
// track count and therefore the table's capacity: tracks * 9 * 36
// samples per channel per frame.
func Build(system dv.System) *Table {
	tracks := system.Tracks()
	halfTracks := tracks / 2
	innerSize := tracks * 9
	capacity := innerSize * slotsPerBlock

	t := &Table{
		forward: make([]Position, capacity),
		inverse: make(map[Position]int, capacity),
	}

	for n := 0; n < capacity; n++ {
		base := n % innerSize
		pass := n / innerSize

		difSequenceOffset := (base/3 + 2*(base%3)) % halfTracks
		difBlock := 3*(base%3) + (base%(9*halfTracks))/(3*halfTracks)
		dataOffset := base / (9 * halfTracks)
		difSequence := difSequenceOffset + dataOffset*halfTracks

		pos := Position{
			DIFSequence: difSequence,
			DIFBlock:    difBlock,
			ByteOffset:  pass * BytesPerSample,
		}
		t.forward[n] = pos
		t.inverse[pos] = n
	}

	return t
}

// Sample returns the physical position of frame-order sample number n.
// It panics if n is out of range for the table's capacity; callers are
// expected to bound n by FileInfo.AudioSamplesPerFrame first.
func (t *Table) Sample(n int) Position {
	return t.forward[n]
}

// SampleNumber is the inverse of Sample: it returns the frame-order
// sample number recorded at pos, and false if no sample maps there.
func (t *Table) SampleNumber(pos Position) (int, bool) {
	n, ok := t.inverse[pos]
	return n, ok
}

// Len returns the table's capacity: the number of distinct sample slots
// it describes.
func (t *Table) Len() int {
	return len(t.forward)
}
