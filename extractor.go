package pagestream

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/tsawler/pagestream/contentstream"
	"github.com/tsawler/pagestream/interpreter"
	"github.com/tsawler/pagestream/pdfsource"
	"github.com/tsawler/pagestream/resources"
	"github.com/tsawler/pagestream/trace"
)

// ErrNoSource is returned when an Extractor has neither a file nor content.
var ErrNoSource = errors.New("no filename or content specified")

// Extractor provides a fluent interface for extracting page content.
// Each configuration method returns a new Extractor instance, making it
// safe to branch a configuration and allowing method chaining.
type Extractor struct {
	// Source: a file, or a single decoded content stream
	filename   string
	content    []byte
	hasContent bool
	res        resources.Resolver

	// Opened document, shared by clones
	doc *pdfsource.Document

	// Configuration
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:   e.filename,
		content:    e.content,
		hasContent: e.hasContent,
		res:        e.res,
		doc:        e.doc,
		options:    e.options.clone(),
	}
}

// ensureDoc opens the document if not already open.
func (e *Extractor) ensureDoc() error {
	if e.doc != nil {
		return nil
	}
	if e.filename == "" {
		return ErrNoSource
	}
	doc, err := pdfsource.Open(e.filename, pdfsource.WithLogger(e.options.logger))
	if err != nil {
		return errors.Wrap(err, "failed to open PDF")
	}
	e.doc = doc
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	results, err := pagestream.Open("doc.pdf").Pages(1, 3, 5).Extract(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	results, err := pagestream.Open("doc.pdf").PageRange(5, 10).Extract(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Postfix reads operands before their operator, as PDF writers emit them.
// The default is the legacy order with operands after the operator.
func (e *Extractor) Postfix() *Extractor {
	newExt := e.clone()
	newExt.options.order = contentstream.PostfixOrder
	return newExt
}

// Logger sets the logger for recovery and resource events.
func (e *Extractor) Logger(l *trace.Logger) *Extractor {
	newExt := e.clone()
	if l == nil {
		l = trace.Discard()
	}
	newExt.options.logger = l
	return newExt
}

// Workers limits how many pages are parsed at once. Zero means one per CPU.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// ============================================================================
// Terminal Methods
// ============================================================================

// PageCount returns the number of pages. Content sources have one page.
func (e *Extractor) PageCount() (int, error) {
	if e.hasContent {
		return 1, nil
	}
	if err := e.ensureDoc(); err != nil {
		return 0, err
	}
	return e.doc.PageCount(), nil
}

// Extract interprets the selected pages and returns their results in page
// order.
//
// Example:
//
//	results, err := pagestream.Open("document.pdf").Pages(2).Extract(ctx)
func (e *Extractor) Extract(ctx context.Context) ([]PageResult, error) {
	pages, err := e.loadPages()
	if err != nil {
		return nil, err
	}

	in := interpreter.New(e.res,
		interpreter.WithLogger(e.options.logger),
		interpreter.WithOperandOrder(e.options.order),
		interpreter.WithWorkers(e.options.workers),
	)

	results, err := in.ParsePages(ctx, pages)
	if err != nil {
		return nil, err
	}

	out := make([]PageResult, len(pages))
	for i, page := range pages {
		out[i] = PageResult{Page: page.Number, Result: results[i]}
	}
	return out, nil
}

// loadPages reads the content and resources of the selected pages.
func (e *Extractor) loadPages() ([]interpreter.Page, error) {
	count, err := e.PageCount()
	if err != nil {
		return nil, err
	}
	numbers, err := resolvePages(e.options.pages, count)
	if err != nil {
		return nil, err
	}

	if e.hasContent {
		return []interpreter.Page{{Number: 1, Content: e.content}}, nil
	}

	pages := make([]interpreter.Page, 0, len(numbers))
	for _, n := range numbers {
		p, err := e.doc.Page(n)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load page %d", n)
		}
		pages = append(pages, interpreter.Page{Number: p.Number, Content: p.Content, Resources: p.Resources})
	}
	return pages, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolvePages validates 1-indexed page numbers, removes duplicates and sorts
// them. If no pages are specified, returns all pages.
func resolvePages(selected []int, pageCount int) ([]int, error) {
	if len(selected) == 0 {
		all := make([]int, pageCount)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var out []int
	for _, p := range selected {
		if p < 1 || p > pageCount {
			return nil, errors.Wrapf(pdfsource.ErrPageOutOfRange, "page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	sort.Ints(out)
	return out, nil
}
