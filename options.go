package pagestream

import (
	"github.com/tsawler/pagestream/contentstream"
	"github.com/tsawler/pagestream/trace"
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Page selection (1-indexed, as given)
	pages []int

	order   contentstream.OperandOrder
	logger  *trace.Logger
	workers int // zero means one per CPU
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:  nil, // nil means all pages
		order:  contentstream.LegacyOrder,
		logger: trace.Discard(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}
