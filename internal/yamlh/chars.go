package yamlh

// Character classes over a NUL-padded UTF-8 buffer. Callers guarantee at
// least three bytes of padding after i so multi-byte lookahead never goes
// out of range.

// IsAlpha reports whether b[i] is an ASCII letter, a digit, '_' or '-'.
func IsAlpha(b []byte, i int) bool {
	return b[i] >= '0' && b[i] <= '9' || b[i] >= 'A' && b[i] <= 'Z' || b[i] >= 'a' && b[i] <= 'z' || b[i] == '_' || b[i] == '-'
}

func IsDigit(b []byte, i int) bool {
	return b[i] >= '0' && b[i] <= '9'
}

func AsDigit(b []byte, i int) int {
	return int(b[i]) - '0'
}

func IsHex(b []byte, i int) bool {
	return b[i] >= '0' && b[i] <= '9' || b[i] >= 'A' && b[i] <= 'F' || b[i] >= 'a' && b[i] <= 'f'
}

func AsHex(b []byte, i int) int {
	c := b[i]
	switch {
	case c >= 'A' && c <= 'F':
		return int(c) - 'A' + 10
	case c >= 'a' && c <= 'f':
		return int(c) - 'a' + 10
	}
	return int(c) - '0'
}

// IsZ reports the end of input.
func IsZ(b []byte, i int) bool {
	return b[i] == 0x00
}

func IsBOM(b []byte, i int) bool {
	return b[i] == 0xEF && b[i+1] == 0xBB && b[i+2] == 0xBF
}

func IsSpace(b []byte, i int) bool {
	return b[i] == ' '
}

func IsTab(b []byte, i int) bool {
	return b[i] == '\t'
}

func IsBlank(b []byte, i int) bool {
	return b[i] == ' ' || b[i] == '\t'
}

// IsBreak reports CR, LF, NEL, LS or PS.
func IsBreak(b []byte, i int) bool {
	return b[i] == '\r' ||
		b[i] == '\n' ||
		b[i] == 0xC2 && b[i+1] == 0x85 ||
		b[i] == 0xE2 && b[i+1] == 0x80 && (b[i+2] == 0xA8 || b[i+2] == 0xA9)
}

func IsCRLF(b []byte, i int) bool {
	return b[i] == '\r' && b[i+1] == '\n'
}

func IsBreakZ(b []byte, i int) bool {
	return IsBreak(b, i) || IsZ(b, i)
}

func IsBlankZ(b []byte, i int) bool {
	return IsBlank(b, i) || IsBreakZ(b, i)
}

// IsFlowIndicator reports ',', '[', ']', '{' or '}'.
func IsFlowIndicator(b []byte, i int) bool {
	switch b[i] {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

// Width returns the encoded length of the character starting with b, or 0
// for an invalid leading octet.
func Width(b byte) int {
	// Don't replace these by a switch without first
	// confirming that it is being inlined.
	if b&0x80 == 0x00 {
		return 1
	}
	if b&0xE0 == 0xC0 {
		return 2
	}
	if b&0xF0 == 0xE0 {
		return 3
	}
	if b&0xF8 == 0xF0 {
		return 4
	}
	return 0
}

// IsPrintable reports whether r may appear unescaped in a YAML stream.
func IsPrintable(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0x7E) ||
		r == 0x85 ||
		(r >= 0xA0 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
