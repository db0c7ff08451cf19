// Package filters decodes the stream filters found on page content streams.
//
// Content streams are almost always Flate compressed, sometimes wrapped in
// an ASCII encoding. Filters are applied in the order listed by the stream:
//
//	data, err := filters.Decode(raw, filters.ASCII85, filters.Flate)
//
// Names from stream dictionaries and inline abbreviations are parsed with
// ParseFilter:
//
//	f, err := filters.ParseFilter("FlateDecode") // or "Fl"
package filters
