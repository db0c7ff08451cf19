package filters

import (
	"bytes"
	"encoding/ascii85"

	"github.com/pkg/errors"
)

// ASCIIHexDecode decodes hexadecimal data up to the '>' end marker.
// Whitespace is ignored and an odd final digit is padded with zero.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)/2)
	var hi byte
	half := false

	for i, c := range data {
		if c == '>' {
			break
		}
		if isWhitespace(c) {
			continue
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, errors.Errorf("invalid hex digit %q at offset %d", c, i)
		}
		if half {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		half = !half
	}

	if half {
		out = append(out, hi<<4)
	}
	return out, nil
}

// ASCII85Decode decodes base-85 data with the optional "<~" prefix and the
// "~>" end marker.
func ASCII85Decode(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)
	data = bytes.TrimPrefix(data, []byte("<~"))
	if i := bytes.Index(data, []byte("~>")); i >= 0 {
		data = data[:i]
	}

	out := make([]byte, 4*len(data)+4)
	n, _, err := ascii85.Decode(out, data, true)
	if err != nil {
		return nil, errors.Wrap(err, "ascii85")
	}
	return out[:n], nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// isWhitespace reports PDF whitespace, which includes form feed.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}
