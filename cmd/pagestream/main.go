// Command pagestream prints the text runs and vector paths of PDF pages as
// JSON.
//
// Usage:
//
//	pagestream [flags] file.pdf
//	pagestream [-filter Flate] stream.bin
//
// Files without a PDF header are read as a single content stream.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"strings"

	pdflog "github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pkg/errors"

	"github.com/tsawler/pagestream"
	"github.com/tsawler/pagestream/internal/filters"
	"github.com/tsawler/pagestream/internal/format"
	"github.com/tsawler/pagestream/trace"
)

func main() {
	var (
		page    = flag.Int("page", 0, "page to extract (1-indexed, 0 for all)")
		postfix = flag.Bool("postfix", false, "read operands before their operator")
		verbose = flag.Bool("v", false, "log recoveries and resource lookups to stderr")
		raw     = flag.Bool("raw", false, "treat the input as a raw content stream even if it has a PDF header")
		filter  = flag.String("filter", "", "comma separated filters to decode a raw stream with (Flate, ASCIIHex, ASCII85); guessed when empty")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *page, *postfix, *verbose, *raw, *filter); err != nil {
		fmt.Fprintf(os.Stderr, "pagestream: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, page int, postfix, verbose, raw bool, filter string) error {
	logger := trace.Discard()
	if verbose {
		sink := stdlog.New(os.Stderr, "", 0)
		logger = trace.New(trace.LevelDebug, sink)
		pdflog.SetParseLogger(sink)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	kind := format.DetectFromMagic(data)
	if kind == format.Unknown {
		kind = format.Detect(path)
	}
	raw = raw || kind != format.PDF

	var ext *pagestream.Extractor
	if raw {
		chain, err := parseFilters(filter)
		if err != nil {
			return err
		}
		if chain != nil {
			if data, err = filters.Decode(data, chain...); err != nil {
				return err
			}
		} else if f, ok := format.DetectFilter(data); ok {
			logger.Infof("input looks %v encoded", f)
			if decoded, err := filters.Decode(data, f); err != nil {
				logger.Warnf("guessed %v filter failed, reading input as is: %v", f, err)
			} else {
				data = decoded
			}
		}
		ext = pagestream.FromContent(data, nil)
	} else {
		if filter != "" {
			return errors.New("-filter applies to raw content streams only")
		}
		ext = pagestream.Open(path)
	}

	ext = ext.Logger(logger)
	if postfix {
		ext = ext.Postfix()
	}
	if page > 0 {
		ext = ext.Pages(page)
	}

	results, err := ext.Extract(context.Background())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func parseFilters(s string) ([]filters.Filter, error) {
	if s == "" {
		return nil, nil
	}
	var chain []filters.Filter
	for _, name := range strings.Split(s, ",") {
		f, err := filters.ParseFilter(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return chain, nil
}
