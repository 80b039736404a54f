package pack

// playbackSpeeds is the full 128-entry map from the 7-bit AAUXSourceControl
// speed field to a playback-speed multiplier, built once at package init
// following the two-tier (coarse/fine bit) construction of
// IEC 61834-4:1998 9.1 Rec mode. Index 0x7F (coarse=7, fine=0xF) is the
// "unknown" sentinel and is left unset (nil).
var playbackSpeeds [128]*float64

func init() {
	set := func(idx int, v float64) { playbackSpeeds[idx] = &v }

	set(0x00, 0)
	set(0x01, 1.0/32)
	for fine := 2; fine <= 0xF; fine++ {
		set(fine, 1.0/float64(18-fine))
	}
	for coarse := 1; coarse <= 7; coarse++ {
		coarseValue := pow2(coarse - 2)
		for fine := 0; fine <= 0xF; fine++ {
			if coarse == 7 && fine == 0xF {
				continue // unknown sentinel
			}
			fineValue := float64(fine) / pow2(6-coarse)
			set(coarse<<4|fine, coarseValue+fineValue)
		}
	}
}

func pow2(exp int) float64 {
	if exp >= 0 {
		v := 1.0
		for i := 0; i < exp; i++ {
			v *= 2
		}
		return v
	}
	v := 1.0
	for i := 0; i < -exp; i++ {
		v /= 2
	}
	return v
}

// playbackSpeedToBits finds the 7-bit wire value for a playback speed
// multiplier, or (0x7F, false) if none matches within tolerance.
func playbackSpeedToBits(speed float64) (uint8, bool) {
	const eps = 1e-9
	for i, v := range playbackSpeeds {
		if v != nil && abs(*v-speed) < eps {
			return uint8(i), true
		}
	}
	return 0x7F, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
