package cstr

import "bytes"

// Copy copies src into dst as a NUL terminated string, writing at most
// len(dst)-1 bytes of src. Longer strings are cut silently.
func Copy(dst []byte, src string) {
	if len(dst) == 0 {
		return
	}

	n := copy(dst[:len(dst)-1], src)
	dst[n] = 0
}

// String returns the contents of buf up to the first NUL byte.
func String(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
