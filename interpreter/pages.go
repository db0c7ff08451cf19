package interpreter

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/tsawler/pagestream/resources"
)

// Page is one content stream to interpret with its own resources.
type Page struct {
	// Number is the 1-indexed page number, used in log messages.
	Number int
	// Content is the decoded content stream.
	Content []byte
	// Resources overrides the interpreter's resolver when not nil.
	Resources resources.Resolver
}

// ParsePages parses pages concurrently and returns one result per page in
// input order. Pages not started before ctx is done are left nil and the
// context error is returned.
func (in *Interpreter) ParsePages(ctx context.Context, pages []Page) ([]*Result, error) {
	results := make([]*Result, len(pages))
	if len(pages) == 0 {
		return results, nil
	}

	workers := in.workers
	if workers > len(pages) {
		workers = len(pages)
	}

	indices := make(chan int, len(pages))
	for i := range pages {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				if ctx.Err() != nil {
					return
				}
				page := pages[i]
				pin := in
				if page.Resources != nil {
					pin = in.withResources(page.Resources)
				}
				in.log.Debugf("parsing page %d", page.Number)
				results[i] = pin.Parse(page.Content)
			}
		}()
	}
	wg.Wait()

	for _, r := range results {
		if r == nil {
			return results, errors.Wrap(ctx.Err(), "parse pages")
		}
	}
	return results, nil
}
