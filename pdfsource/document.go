package pdfsource

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/tsawler/pagestream/resources"
	"github.com/tsawler/pagestream/trace"
)

// ErrPageOutOfRange is returned for page numbers outside 1..PageCount.
var ErrPageOutOfRange = errors.New("page out of range")

// maxParentDepth bounds the walk up the page tree for inherited resources.
const maxParentDepth = 32

// Document is an opened PDF file.
type Document struct {
	ctx *model.Context
	log *trace.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger for resource loading problems.
func WithLogger(l *trace.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.log = l
		}
	}
}

// Page is the decoded content of one page and the resources it refers to.
type Page struct {
	Number    int
	Content   []byte
	Resources *resources.Table
}

// Open reads and validates the PDF file at path.
func Open(path string, opts ...Option) (*Document, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	d := &Document{ctx: ctx, log: trace.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Page loads page n (1-indexed). Multiple content streams are joined with
// a newline. Resources that cannot be read are logged and left out.
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > d.PageCount() {
		return nil, errors.Wrapf(ErrPageOutOfRange, "page %d of %d", n, d.PageCount())
	}

	pageDict, _, _, err := d.ctx.PageDict(n, false)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d", n)
	}
	if pageDict == nil {
		return nil, errors.Errorf("page %d: missing page dictionary", n)
	}

	l := &loader{ctx: d.ctx, log: d.log}

	var content []byte
	if obj, found := pageDict.Find("Contents"); found {
		streams, err := l.contentStreams(obj)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d contents", n)
		}
		content = bytes.Join(streams, []byte("\n"))
	}

	res := l.resources(l.inheritedResources(pageDict))
	d.log.Debugf("page %d: %d content bytes, fonts %v", n, len(content), res.FontNames())

	return &Page{
		Number:    n,
		Content:   content,
		Resources: res,
	}, nil
}

// inheritedResources returns the page's resource dictionary, looking up the
// page tree when the page has none of its own.
func (l *loader) inheritedResources(page types.Dict) types.Dict {
	node := page
	for i := 0; i < maxParentDepth && node != nil; i++ {
		if obj, found := node.Find("Resources"); found {
			if dict, ok := l.deref(obj).(types.Dict); ok {
				return dict
			}
		}
		parent, found := node.Find("Parent")
		if !found {
			break
		}
		node, _ = l.deref(parent).(types.Dict)
	}
	return nil
}
