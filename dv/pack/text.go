package pack

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// smpteTimePattern matches the HH:MM:SS[;FF|:FF] text timecode format used
// throughout the CSV text-field layer: ';' before the frame number denotes
// drop-frame, ':' denotes non-drop-frame.
var smpteTimePattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(([:;])(\d{2}))?$`)

// genericDatePattern matches the YYYY-MM-DD text date format.
var genericDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// timeZonePattern matches the HH:MM text time-zone format (minutes are
// always 00 or 30, since the wire field only carries a half-hour flag).
var timeZonePattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// formatTimecodeText renders a timecode as "HH:MM:SS;FF" (drop-frame),
// "HH:MM:SS:FF" (non-drop-frame), "HH:MM:SS" (frame number absent), or ""
// (entirely absent).
func formatTimecodeText(hour, minute, second, frame *int, dropFrame *bool) string {
	if hour == nil {
		return ""
	}
	if frame == nil {
		return fmt.Sprintf("%02d:%02d:%02d", *hour, *minute, *second)
	}
	sep := ":"
	if dropFrame != nil && *dropFrame {
		sep = ";"
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", *hour, *minute, *second, sep, *frame)
}

// parseTimecodeText is the inverse of formatTimecodeText. An empty string
// parses to all-nil fields. A time with the frame separator omitted
// defaults drop_frame to true, matching observed VAUX/AAUX Rec Time packs
// that carry a time but no frame number.
func parseTimecodeText(text string) (hour, minute, second, frame *int, dropFrame *bool, err error) {
	if text == "" {
		return nil, nil, nil, nil, nil, nil
	}
	m := smpteTimePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("parsing error while reading timecode %q", text)
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	hour, minute, second = &h, &mi, &s
	if m[4] != "" {
		f, _ := strconv.Atoi(m[6])
		frame = &f
		df := m[5] == ";"
		dropFrame = &df
	} else {
		df := true
		dropFrame = &df
	}
	return hour, minute, second, frame, dropFrame, nil
}

// formatDateText renders a calendar date as "YYYY-MM-DD", or "" if absent.
func formatDateText(year, month, day *int) string {
	if year == nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", *year, *month, *day)
}

// parseDateText is the inverse of formatDateText.
func parseDateText(text string) (year, month, day *int, err error) {
	if text == "" {
		return nil, nil, nil, nil
	}
	m := genericDatePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil, nil, fmt.Errorf("parsing error while reading date %q", text)
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return &y, &mo, &d, nil
}

// formatTimeZoneText renders a time zone offset as "HH:MM", or "" if
// absent.
func formatTimeZoneText(hours *int, halfHour *bool) string {
	if hours == nil {
		return ""
	}
	minutes := 0
	if halfHour != nil && *halfHour {
		minutes = 30
	}
	return fmt.Sprintf("%02d:%02d", *hours, minutes)
}

// parseTimeZoneText is the inverse of formatTimeZoneText.
func parseTimeZoneText(text string) (hours *int, halfHour *bool, err error) {
	if text == "" {
		return nil, nil, nil
	}
	m := timeZonePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil, fmt.Errorf("parsing error while reading time zone %q", text)
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	half := mins == 30
	return &h, &half, nil
}

// formatHexBytesText renders raw bytes as "0x" followed by uppercase hex,
// or "" if b is nil.
func formatHexBytesText(b []byte) string {
	if b == nil {
		return ""
	}
	return "0x" + strings.ToUpper(hex.EncodeToString(b))
}

// parseHexBytesText is the inverse of formatHexBytesText; n is the
// expected byte length.
func parseHexBytesText(text string, n int) ([]byte, error) {
	if text == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(text), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parsing error while reading hex bytes %q: %w", text, err)
	}
	if len(b) != n {
		return nil, fmt.Errorf("hex bytes %q must decode to %d bytes, got %d", text, n, len(b))
	}
	return b, nil
}

// formatIntText renders an optional integer as decimal text, or "" if nil.
func formatIntText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// parseIntText is the inverse of formatIntText.
func parseIntText(text string) (*int, error) {
	if text == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("parsing error while reading integer %q: %w", text, err)
	}
	return &v, nil
}

// formatBoolText renders an optional boolean as "true"/"false", or "" if
// nil.
func formatBoolText(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

// parseBoolText is the inverse of formatBoolText.
func parseBoolText(text string) (*bool, error) {
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(text)
	if err != nil {
		return nil, fmt.Errorf("parsing error while reading boolean %q: %w", text, err)
	}
	return &v, nil
}
