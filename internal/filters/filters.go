package filters

import (
	"github.com/pkg/errors"
)

// ErrUnsupportedFilter is returned for filter names this package cannot decode.
var ErrUnsupportedFilter = errors.New("unsupported filter")

// Filter identifies a stream decoding filter.
type Filter int

const (
	Flate Filter = iota
	ASCIIHex
	ASCII85
)

func (f Filter) String() string {
	switch f {
	case Flate:
		return "FlateDecode"
	case ASCIIHex:
		return "ASCIIHexDecode"
	case ASCII85:
		return "ASCII85Decode"
	}
	return "Unknown"
}

// ParseFilter accepts the full filter names, their inline abbreviations and
// the short forms Flate, ASCIIHex and ASCII85.
func ParseFilter(name string) (Filter, error) {
	switch name {
	case "FlateDecode", "Fl", "Flate":
		return Flate, nil
	case "ASCIIHexDecode", "AHx", "ASCIIHex":
		return ASCIIHex, nil
	case "ASCII85Decode", "A85", "ASCII85":
		return ASCII85, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedFilter, "%q", name)
}

// Decode applies the filters in order, as listed in a stream's /Filter
// array.
func Decode(data []byte, chain ...Filter) ([]byte, error) {
	var err error
	for _, f := range chain {
		switch f {
		case Flate:
			data, err = FlateDecode(data)
		case ASCIIHex:
			data, err = ASCIIHexDecode(data)
		case ASCII85:
			data, err = ASCII85Decode(data)
		default:
			return nil, errors.Wrapf(ErrUnsupportedFilter, "%v", f)
		}
		if err != nil {
			return nil, errors.Wrap(err, f.String())
		}
	}
	return data, nil
}
