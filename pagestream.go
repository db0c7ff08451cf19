// Package pagestream extracts positioned text runs and vector paths from the
// content streams of PDF pages.
//
// Basic usage:
//
//	results, err := pagestream.Open("document.pdf").Extract(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, page := range results {
//	    for _, t := range page.Text {
//	        fmt.Printf("page %d: %q at (%.0f, %.0f)\n", page.Page, t.Text, t.X, t.Y)
//	    }
//	}
//
// With options:
//
//	results, err := pagestream.Open("report.pdf").
//	    Pages(1, 2).
//	    Postfix().
//	    Extract(ctx)
//
// A content stream that is already decoded can be parsed without a file:
//
//	results, err := pagestream.FromContent(data, nil).Extract(ctx)
//
// The lower-level contentstream, interpreter and pdfsource packages are
// available for finer control.
package pagestream

import (
	"github.com/tsawler/pagestream/interpreter"
	"github.com/tsawler/pagestream/resources"
)

// PageResult is the interpretation of one page.
type PageResult struct {
	Page int `json:"page"`
	*interpreter.Result
}

// Open returns an Extractor for the PDF file at filename. The file is read
// on the first terminal operation.
//
// Example:
//
//	results, err := pagestream.Open("document.pdf").Extract(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromContent returns an Extractor for a single decoded content stream,
// reported as page 1. Names are resolved through res; with a nil res every
// font is accepted.
//
// Example:
//
//	results, err := pagestream.FromContent([]byte("BT (Hi) ET"), nil).Extract(ctx)
func FromContent(data []byte, res resources.Resolver) *Extractor {
	return &Extractor{
		content:    data,
		hasContent: true,
		res:        res,
		options:    defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pagestream.Must(pagestream.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
