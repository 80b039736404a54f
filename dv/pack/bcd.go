package pack

// bcdDecode converts a packed binary-coded-decimal byte (tens in the high
// nibble, units in the low) to its decimal value. ok is false if either
// nibble is not a legal decimal digit (0-9) - this is the "BCD digit > 9"
// silent-drop condition named in the error handling design.
func bcdDecode(b uint8) (value int, ok bool) {
	tens := b >> 4
	units := b & 0xF
	if tens > 9 || units > 9 {
		return 0, false
	}
	return int(tens)*10 + int(units), true
}

// bcdEncode converts a decimal value 0-99 to a packed BCD byte.
func bcdEncode(value int) uint8 {
	return uint8((value/10)<<4 | (value % 10))
}
