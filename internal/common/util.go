package common

// WipeByteArray zeroes b in place. It is used on password buffers read from
// the terminal once they are no longer needed. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
