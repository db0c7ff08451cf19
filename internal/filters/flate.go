package filters

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
)

// FlateDecode decompresses zlib data. Streams that end early or fail the
// checksum still return whatever was decompressed, as long as that is not
// empty.
func FlateDecode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "zlib header")
	}
	defer r.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	if err != nil {
		if buf.Len() > 0 && (err == io.ErrUnexpectedEOF || err == zlib.ErrChecksum) {
			return buf.Bytes(), nil
		}
		return nil, errors.Wrap(err, "zlib data")
	}
	return buf.Bytes(), nil
}
