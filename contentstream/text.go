package contentstream

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf16Decoder = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)

// decodeText maps string bytes to UTF-8. Each byte becomes the rune with the
// same value (ISO-8859-1), except that strings starting with the UTF-16BE
// byte order mark are decoded as UTF-16BE.
func decodeText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		if out, err := utf16Decoder.NewDecoder().Bytes(raw); err == nil {
			return string(out)
		}
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
