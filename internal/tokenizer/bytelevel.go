package tokenizer

// Byte-level BPE works over a reversible byte→codepoint alphabet so any
// byte sequence is representable as vocabulary strings without an
// unknown-token fallback. Bytes in the printable Latin-1 ranges map to
// themselves; the remaining byte values are assigned sequentially
// increasing codepoints from 256 upward, in ascending byte order.
var (
	byteToRune [256]rune
	runeToByte map[rune]byte
)

func init() {
	runeToByte = make(map[rune]byte, 256)

	next := rune(256)
	for b := range byteToRune {
		r := rune(b)
		if !printableByte(byte(b)) {
			r = next
			next++
		}
		byteToRune[b] = r
		runeToByte[r] = byte(b)
	}
}

func printableByte(b byte) bool {
	return (b >= 33 && b <= 126) || (b >= 161 && b <= 172) || b >= 174
}

// ByteAlphabet returns the 256 single-codepoint strings of the byte-level
// alphabet, indexed by raw byte value. Useful for constructing
// vocabularies in tests and tooling.
func ByteAlphabet() []string {
	out := make([]string, len(byteToRune))
	for b, r := range byteToRune {
		out[b] = string(r)
	}
	return out
}
