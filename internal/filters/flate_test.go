package filters

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/pkg/errors"
)

// zlibCompress compresses data for testing
func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// TestFlateDecodeBasic tests basic zlib decompression
func TestFlateDecodeBasic(t *testing.T) {
	original := []byte("BT /F1 12 Tf 72 720 Td (Hello) Tj ET")
	compressed := zlibCompress(original)

	decoded, err := FlateDecode(compressed)
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original\ngot:  %s\nwant: %s", decoded, original)
	}
}

// TestFlateDecodeInvalidZlib tests error handling for a bad header
func TestFlateDecodeInvalidZlib(t *testing.T) {
	_, err := FlateDecode([]byte("not zlib data"))
	if err == nil {
		t.Error("expected error for invalid zlib data")
	}
}

// TestFlateDecodeBadChecksum tests that content survives a broken trailer
func TestFlateDecodeBadChecksum(t *testing.T) {
	original := []byte("q 1 0 0 1 0 0 cm Q")
	compressed := zlibCompress(original)
	compressed[len(compressed)-1] ^= 0xFF

	decoded, err := FlateDecode(compressed)
	if err != nil {
		t.Fatalf("expected lenient decode, got %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("expected %q, got %q", original, decoded)
	}
}

// TestDecodeChain tests applying several filters in order
func TestDecodeChain(t *testing.T) {
	original := []byte("0 0 m 10 10 l h")
	compressed := zlibCompress(original)

	var hex bytes.Buffer
	for _, b := range compressed {
		hex.WriteString(string("0123456789ABCDEF"[b>>4]))
		hex.WriteString(string("0123456789ABCDEF"[b&0xF]))
	}
	hex.WriteByte('>')

	decoded, err := Decode(hex.Bytes(), ASCIIHex, Flate)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("expected %q, got %q", original, decoded)
	}

	if _, err := Decode([]byte("zz"), Flate); err == nil {
		t.Error("expected error for invalid chain input")
	}

	same, err := Decode(original)
	if err != nil || !bytes.Equal(same, original) {
		t.Errorf("expected empty chain to return input, got %q %v", same, err)
	}
}

// TestParseFilter tests filter names and abbreviations
func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		want Filter
	}{
		{"FlateDecode", Flate},
		{"Fl", Flate},
		{"Flate", Flate},
		{"ASCIIHexDecode", ASCIIHex},
		{"AHx", ASCIIHex},
		{"ASCII85Decode", ASCII85},
		{"A85", ASCII85},
	}

	for _, tt := range tests {
		got, err := ParseFilter(tt.name)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.name, tt.want, got)
		}
	}

	_, err := ParseFilter("DCTDecode")
	if errors.Cause(err) != ErrUnsupportedFilter {
		t.Errorf("expected ErrUnsupportedFilter, got %v", err)
	}
}
