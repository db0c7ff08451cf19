// Package trace provides the leveled logger injected into the interpreter.
//
// A [Logger] filters messages by [Level] and forwards them to a [Sink]. Any
// value with a Printf method is a Sink, including *log.Logger and the loggers
// of pdfcpu's log package:
//
//	l := trace.New(trace.LevelDebug, log.New(os.Stderr, "[pagestream] ", log.LstdFlags))
//	in := interpreter.New(res, interpreter.WithLogger(l))
//
// The zero-cost default is [Discard]. Nothing in this module logs through a
// package-level logger.
package trace
