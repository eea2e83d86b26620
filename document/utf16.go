package document

import "unicode/utf16"

// IsHighSurrogate reports whether u is the leading code unit of a
// surrogate pair.
func IsHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u <= 0xDBFF
}

// IsLowSurrogate reports whether u is the trailing code unit of a
// surrogate pair.
func IsLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u <= 0xDFFF
}

// UTF16Len returns the number of UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	var n int
	for _, r := range s {
		if r >= 0x10000 {
			n += 2 // surrogate pair (character outside the BMP)
		} else {
			n++
		}
	}
	return n
}

// encodeUTF16 converts a string to UTF-16 code units.
func encodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// decodeUTF16 converts UTF-16 code units back to a string.
func decodeUTF16(units []uint16) string {
	return string(utf16.Decode(units))
}
