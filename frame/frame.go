// Package frame implements the TBS wire-level framing layer: locating
// delimited frames inside an arbitrarily chunked byte stream, reassembling
// them across chunk boundaries, and reversing the byte-stuffing escape
// scheme used to keep delimiter bytes out of payloads.
package frame

const (
	// startDelimiter marks the first byte of a frame.
	startDelimiter = 0xAA
	// endDelimiter marks the last byte of a frame.
	endDelimiter = 0x99
	// escape introduces a byte-stuffed escape sequence; the following byte
	// has 0x20 XOR'ed into it to recover the original value.
	escape = 0xA9
	// escapeXOR is XOR'ed into the byte following an escape.
	escapeXOR = 0x20
)

// Frame is an owned, immutable, de-stuffed wire frame: its first byte is
// always startDelimiter, its last byte is always endDelimiter, and no
// byte in between is an unescaped escape byte.
type Frame []byte

// Destuff reverses the wire-level byte-stuffing escape scheme: an
// escape byte is removed and the following byte has 0x20 XOR'ed into
// it. A trailing escape byte with nothing following it is dropped
// silently.
func Destuff(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if b != escape {
			out = append(out, b)
			continue
		}
		if i+1 >= len(raw) {
			// Trailing escape with no following byte: drop silently.
			break
		}
		i++
		out = append(out, raw[i]^escapeXOR)
	}
	return out
}

// Stuff is the inverse of Destuff: any literal occurrence of
// startDelimiter, endDelimiter or escape in payload is escaped so it
// cannot be mistaken for framing on the wire. It is not used by the
// decode path — outbound encoding is out of scope for the core decoder
// — but is needed to build valid fixtures for the fuzz source and for
// round-trip tests of Destuff.
func Stuff(payload []byte) []byte {
	out := make([]byte, 0, len(payload))
	for _, b := range payload {
		switch b {
		case startDelimiter, endDelimiter, escape:
			out = append(out, escape, b^escapeXOR)
		default:
			out = append(out, b)
		}
	}
	return out
}
