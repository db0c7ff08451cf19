// Package format detects whether an input file is a PDF document or a bare
// content stream, and which filter a bare stream is encoded with.
package format

import (
	"bytes"
	"compress/zlib"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/pagestream/internal/filters"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// Stream indicates a bare content stream, possibly encoded.
	Stream
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case Stream:
		return "Stream"
	default:
		return "Unknown"
	}
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".bin", ".stream", ".txt":
		return Stream
	default:
		return Unknown
	}
}

// DetectFromMagic checks the leading bytes of a file. Anything that does not
// carry the PDF header is treated as a content stream.
func DetectFromMagic(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}
	if len(data) >= 5 && string(data[:5]) == "%PDF-" {
		return PDF
	}
	return Stream
}

// DetectFilter guesses the encoding of a bare content stream. It returns
// false for data that already looks decoded.
func DetectFilter(data []byte) (filters.Filter, bool) {
	data = trimLeadingSpace(data)
	if len(data) < 2 {
		return 0, false
	}

	// zlib header: deflate method, window size, and a check value that
	// makes the first two bytes a multiple of 31. Plain text such as
	// "80 700 Td" passes that test, so the stream must also inflate.
	if data[0]&0x0f == 8 && data[0]>>4 <= 7 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0 && inflates(data) {
		return filters.Flate, true
	}

	if data[0] == '<' && data[1] == '~' {
		return filters.ASCII85, true
	}

	if detectHex(data) {
		return filters.ASCIIHex, true
	}

	return 0, false
}

// inflates reports whether data is a complete zlib stream with a valid
// checksum.
func inflates(data []byte) bool {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return false
	}
	defer r.Close()
	_, err = io.Copy(io.Discard, r)
	return err == nil
}

// detectHex reports whether data is hex digits and whitespace closed by '>'.
func detectHex(data []byte) bool {
	digits := 0
	for i, b := range data {
		switch {
		case b == '>':
			return digits > 0 && i == len(trimTrailingSpace(data))-1
		case isSpace(b):
		case b >= '0' && b <= '9', b >= 'a' && b <= 'f', b >= 'A' && b <= 'F':
			digits++
		default:
			return false
		}
	}
	return false
}

func trimLeadingSpace(data []byte) []byte {
	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}
	return data[start:]
}

func trimTrailingSpace(data []byte) []byte {
	end := len(data)
	for end > 0 && isSpace(data[end-1]) {
		end--
	}
	return data[:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}
