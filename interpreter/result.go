package interpreter

import (
	"fmt"

	"github.com/tsawler/pagestream/graphicsstate"
	"github.com/tsawler/pagestream/model"
)

// Result is the output of one Parse call.
type Result struct {
	// Text and Vectors are in content stream order.
	Text    []model.TextObject   `json:"text"`
	Vectors []model.VectorObject `json:"vectors"`

	// Recoveries lists every resynchronization, in order.
	Recoveries []Recovery `json:"recoveries,omitempty"`

	// Underflows counts restore operators that found no saved state.
	Underflows int `json:"underflows,omitempty"`

	// State and Depth describe the graphics state at the end of the stream.
	State graphicsstate.State `json:"-"`
	Depth int                 `json:"depth"`
}

// Recovery records a decode failure. Decoding resumes one byte past the
// point where the failed attempt stopped.
type Recovery struct {
	// Offset is where the failed attempt started.
	Offset int `json:"offset"`
	// Byte is the byte at Offset.
	Byte byte `json:"byte"`
	// Skipped is the number of bytes consumed by the attempt and the skip.
	Skipped int `json:"skipped"`
}

func (r Recovery) String() string {
	return fmt.Sprintf("skipped %d byte(s) at offset %d (byte %#02x)", r.Skipped, r.Offset, r.Byte)
}

// SkippedBytes returns the total number of bytes skipped by recoveries.
func (r *Result) SkippedBytes() int {
	n := 0
	for _, rec := range r.Recoveries {
		n += rec.Skipped
	}
	return n
}
