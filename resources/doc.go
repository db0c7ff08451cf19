// Package resources provides the read-only resource lookup used while
// interpreting a content stream.
//
// The interpreter only needs to know whether a font name exists before it
// records a font change. That contract is the [Resolver] interface. Color
// space and ExtGState lookups are optional extensions ([ColorSpaceResolver],
// [ExtGStateResolver]) that a resolver may also implement.
//
// [Table] is an immutable, map-backed implementation:
//
//	res := resources.NewTable(
//	    resources.WithFont(&resources.Font{Name: "F1", BaseFont: "Helvetica"}),
//	    resources.WithExtGState(resources.ExtGState{Name: "GS0"}),
//	)
//
// A Table is never modified after construction, so it can be shared by
// interpreters running on different pages at the same time.
package resources
