// Package clipboard puts text on the system clipboard.
package clipboard

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf16"
)

var ErrUnsupported = errors.New("clipboard is not supported on this platform")

// textPayload encodes s as NUL-terminated little-endian UTF-16, the layout
// CF_UNICODETEXT expects.
func textPayload(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, errors.New("text contains NUL")
	}
	units := utf16.Encode([]rune(s))
	buf := make([]byte, 2*(len(units)+1))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[2*i:], u)
	}
	return buf, nil
}
