package core

// appendUint appends the decimal form of n to dst
func appendUint(dst []byte, n uint32) []byte {
	var digits [10]byte
	pos := len(digits)

	for {
		pos--
		digits[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}

	return append(dst, digits[pos:]...)
}

// appendPadded appends n right-aligned in a field of width characters.
// Numbers wider than the field are appended unpadded.
func appendPadded(dst []byte, n uint32, width int) []byte {
	var digits [10]byte
	s := appendUint(digits[:0], n)

	for pad := width - len(s); pad > 0; pad-- {
		dst = append(dst, ' ')
	}
	return append(dst, s...)
}

// utoa converts an unsigned integer to a string. Debug output only, it allocates.
func utoa(n uint32) string {
	var buf [10]byte
	return string(appendUint(buf[:0], n))
}
