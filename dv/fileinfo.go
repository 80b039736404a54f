/*
DESCRIPTION
  fileinfo.go defines the System and FileInfo types that describe the tape
  format of a DV capture. FileInfo is supplied by an external probe; the
  codec packages take it as a parameter and hold no state of their own.
*/

package dv

// System identifies which of the two DV tape systems a capture uses. The
// system determines track count, frame rate, and several per-pack value
// ranges (e.g. maximum timecode frame number).
type System int

const (
	// System525_60 is the NTSC-derived system: 10 tracks per frame, 30fps
	// (29.97 with drop-frame), 60 fields/sec.
	System525_60 System = iota

	// System625_50 is the PAL-derived system: 12 tracks per frame, 25fps,
	// 50 fields/sec.
	System625_50
)

// String returns a human-readable name for the system.
func (s System) String() string {
	switch s {
	case System525_60:
		return "525-60"
	case System625_50:
		return "625-50"
	default:
		return "unknown"
	}
}

// Tracks returns the number of DIF sequences (tracks) per channel per video
// frame for the system: 10 for 525/60, 12 for 625/50.
func (s System) Tracks() int {
	if s == System625_50 {
		return 12
	}
	return 10
}

// MaxFrameNumber returns the highest legal timecode frame number (inclusive)
// for the system: 29 for 525/60 (30fps), 24 for 625/50 (25fps).
func (s System) MaxFrameNumber() int {
	if s == System625_50 {
		return 24
	}
	return 29
}

// FileInfo describes the tape format of a capture. It is produced by an
// external file-info probe (out of scope for this module) and passed by
// value into every block/pack parse and serialize call; the codec holds no
// global state and never mutates a FileInfo.
type FileInfo struct {
	// System is the tape system of the capture.
	System System

	// Channels is the number of DIF channels per video frame: 1 for
	// consumer DV, 2 for higher-bitrate formats that split tracks across
	// two read heads.
	Channels int

	// Tracks is the number of DIF sequences per channel per video frame.
	// Must agree with System.Tracks(); kept separate because the header
	// block's DSF bit is the authoritative on-tape source of truth and is
	// cross-checked against System.
	Tracks int

	// FrameSize is the size in bytes of one complete video frame:
	// Channels * Tracks * 150 blocks * 80 bytes/block.
	FrameSize int

	// AudioSampleRate is the audio sample rate in Hz (32000, 44100, or
	// 48000). It is set by the caller and not derived from other fields.
	AudioSampleRate int

	// AudioSamplesPerFrame is the number of audio samples carried in one
	// video frame at AudioSampleRate. Audio.HasAudioErrors does not read
	// it: its "in range" bound comes from the voted AAUXSource pack.
	AudioSamplesPerFrame int
}

// BlocksPerTrack is the fixed number of 80-byte DIF blocks in one tape
// track, independent of system: 1 Header + 2 Subcode + 3 VAUX + 9*(1 Audio
// + 15 Video).
const BlocksPerTrack = 150

// BlockSize is the fixed size in bytes of every DIF block.
const BlockSize = 80
