package resources

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Font is a font resource handle. Data holds the embedded font program, if
// any; only TrueType/OpenType programs can be parsed into a face.
type Font struct {
	Name     string
	BaseFont string
	Subtype  string
	Data     []byte

	once sync.Once
	face *sfnt.Font
	err  error
}

var (
	fallbackOnce sync.Once
	fallbackFace *sfnt.Font
	fallbackErr  error
)

// FallbackFace returns the Go Regular face used when a font has no usable
// embedded program.
func FallbackFace() (*sfnt.Font, error) {
	fallbackOnce.Do(func() {
		fallbackFace, fallbackErr = sfnt.Parse(goregular.TTF)
	})
	return fallbackFace, fallbackErr
}

// Face returns the parsed font program. Fonts without data, and fonts whose
// data is not an sfnt program (Type 1, CFF), use the fallback face.
func (f *Font) Face() (*sfnt.Font, error) {
	f.once.Do(func() {
		if len(f.Data) > 0 {
			face, err := sfnt.Parse(f.Data)
			if err == nil {
				f.face = face
				return
			}
			f.err = errors.Wrapf(err, "font %s", f.Name)
		}
		fallback, err := FallbackFace()
		if err != nil {
			f.err = errors.Wrap(err, "fallback face")
			return
		}
		f.face = fallback
	})
	if f.face != nil {
		return f.face, nil
	}
	return nil, f.err
}

// Embedded reports whether the face returned by Face comes from Data.
func (f *Font) Embedded() bool {
	face, err := f.Face()
	if err != nil {
		return false
	}
	fallback, _ := FallbackFace()
	return face != fallback
}
