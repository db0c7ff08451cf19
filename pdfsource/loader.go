package pdfsource

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/tsawler/pagestream/color"
	"github.com/tsawler/pagestream/resources"
	"github.com/tsawler/pagestream/trace"
)

// loader turns pdfcpu objects into resource values. A nil ctx resolves no
// indirect references, which is enough for direct objects.
type loader struct {
	ctx *model.Context
	log *trace.Logger
}

func (l *loader) deref(obj types.Object) types.Object {
	ref, ok := obj.(types.IndirectRef)
	if !ok {
		return obj
	}
	if l.ctx == nil {
		return nil
	}
	out, err := l.ctx.Dereference(ref)
	if err != nil {
		l.log.Warnf("dereference %s: %v", ref, err)
		return nil
	}
	return out
}

// contentStreams returns the decoded bytes of a Contents entry, which is a
// stream or an array of streams.
func (l *loader) contentStreams(obj types.Object) ([][]byte, error) {
	switch o := l.deref(obj).(type) {
	case types.StreamDict:
		data, err := l.streamContent(o)
		if err != nil {
			return nil, err
		}
		return [][]byte{data}, nil
	case types.Array:
		var out [][]byte
		for i, item := range o {
			streams, err := l.contentStreams(item)
			if err != nil {
				l.log.Warnf("content stream %d: %v", i, err)
				continue
			}
			out = append(out, streams...)
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, errors.Errorf("unexpected contents type %T", o)
	}
}

func (l *loader) streamContent(sd types.StreamDict) ([]byte, error) {
	if len(sd.Content) == 0 && len(sd.Raw) > 0 {
		if err := sd.Decode(); err != nil {
			return nil, errors.Wrap(err, "decode stream")
		}
	}
	return sd.Content, nil
}

// resources builds a table from a resource dictionary.
func (l *loader) resources(dict types.Dict) *resources.Table {
	var opts []resources.TableOption

	for name, obj := range l.subDict(dict, "Font") {
		f, err := l.font(name, obj)
		if err != nil {
			l.log.Warnf("font %s: %v", name, err)
			continue
		}
		opts = append(opts, resources.WithFont(f))
	}

	for name, obj := range l.subDict(dict, "ColorSpace") {
		s, err := l.colorSpace(obj)
		if err != nil {
			l.log.Debugf("color space %s: %v", name, err)
			continue
		}
		opts = append(opts, resources.WithColorSpace(name, s))
	}

	for name, obj := range l.subDict(dict, "ExtGState") {
		gs, ok := l.extGState(name, obj)
		if !ok {
			l.log.Debugf("graphics state %s is not a dictionary", name)
			continue
		}
		opts = append(opts, resources.WithExtGState(gs))
	}

	return resources.NewTable(opts...)
}

func (l *loader) subDict(dict types.Dict, key string) types.Dict {
	if dict == nil {
		return nil
	}
	obj, found := dict.Find(key)
	if !found {
		return nil
	}
	sub, _ := l.deref(obj).(types.Dict)
	return sub
}

// font reads a font dictionary. Only TrueType programs (FontFile2) are
// kept as embedded data.
func (l *loader) font(name string, obj types.Object) (*resources.Font, error) {
	dict, ok := l.deref(obj).(types.Dict)
	if !ok {
		return nil, errors.New("not a dictionary")
	}

	f := &resources.Font{
		Name:     name,
		BaseFont: l.name(dict, "BaseFont"),
		Subtype:  l.name(dict, "Subtype"),
	}

	desc := l.subDict(dict, "FontDescriptor")
	if desc == nil {
		return f, nil
	}
	fileObj, found := desc.Find("FontFile2")
	if !found {
		return f, nil
	}
	sd, ok := l.deref(fileObj).(types.StreamDict)
	if !ok {
		return f, nil
	}
	data, err := l.streamContent(sd)
	if err != nil {
		l.log.Warnf("font %s program: %v", name, err)
		return f, nil
	}
	f.Data = data
	return f, nil
}

// colorSpace reads a color space given by family name or array.
func (l *loader) colorSpace(obj types.Object) (color.Space, error) {
	switch o := l.deref(obj).(type) {
	case types.Name:
		s, ok := color.SpaceByName(string(o))
		if !ok {
			return nil, errors.Errorf("unsupported family %s", string(o))
		}
		return s, nil
	case types.Array:
		return l.colorSpaceArray(o)
	}
	return nil, errors.Errorf("unexpected color space type %T", obj)
}

func (l *loader) colorSpaceArray(arr types.Array) (color.Space, error) {
	if len(arr) == 0 {
		return nil, errors.New("empty color space array")
	}
	family, ok := l.deref(arr[0]).(types.Name)
	if !ok {
		return nil, errors.New("color space family is not a name")
	}

	switch string(family) {
	case "Indexed", "I":
		if len(arr) < 4 {
			return nil, errors.Errorf("indexed color space has %d entries", len(arr))
		}
		base, err := l.colorSpace(arr[1])
		if err != nil {
			return nil, errors.Wrap(err, "indexed base")
		}
		hival, ok := number(l.deref(arr[2]))
		if !ok {
			return nil, errors.New("indexed hival is not a number")
		}
		lookup, err := l.bytes(arr[3])
		if err != nil {
			return nil, errors.Wrap(err, "indexed lookup")
		}
		return color.Indexed{Base: base, HiVal: int(hival), Lookup: lookup}, nil

	case "ICCBased":
		if len(arr) < 2 {
			return nil, errors.New("ICCBased without stream")
		}
		sd, ok := l.deref(arr[1]).(types.StreamDict)
		if !ok {
			return nil, errors.New("ICCBased profile is not a stream")
		}
		n := 0
		if obj, found := sd.Dict.Find("N"); found {
			if v, ok := number(l.deref(obj)); ok {
				n = int(v)
			}
		}
		s, ok := color.SpaceForArity(n)
		if !ok {
			return nil, errors.Errorf("ICCBased with %d components", n)
		}
		return s, nil

	case "Pattern":
		return color.Pattern{}, nil
	}

	s, ok := color.SpaceByName(string(family))
	if !ok {
		return nil, errors.Errorf("unsupported family %s", string(family))
	}
	return s, nil
}

// extGState reads the parameters of an ExtGState dictionary.
func (l *loader) extGState(name string, obj types.Object) (resources.ExtGState, bool) {
	dict, ok := l.deref(obj).(types.Dict)
	if !ok {
		return resources.ExtGState{}, false
	}
	gs := resources.ExtGState{Name: name}
	if lw, found := dict.Find("LW"); found {
		if v, ok := number(l.deref(lw)); ok {
			gs.LineWidth = &v
		}
	}
	return gs, true
}

// bytes returns the content of a string or stream object.
func (l *loader) bytes(obj types.Object) ([]byte, error) {
	switch o := l.deref(obj).(type) {
	case types.StringLiteral:
		return types.Unescape(string(o))
	case types.HexLiteral:
		return o.Bytes()
	case types.StreamDict:
		return l.streamContent(o)
	}
	return nil, errors.Errorf("unexpected type %T", obj)
}

func (l *loader) name(dict types.Dict, key string) string {
	obj, found := dict.Find(key)
	if !found {
		return ""
	}
	n, _ := l.deref(obj).(types.Name)
	return string(n)
}

func number(obj types.Object) (float32, bool) {
	switch v := obj.(type) {
	case types.Integer:
		return float32(v), true
	case types.Float:
		return float32(v), true
	}
	return 0, false
}
