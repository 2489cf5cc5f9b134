package backend

import (
	"fmt"
	"sort"
	"strings"
)

// Counts is a histogram of measurement bitstrings. Keys carry the
// highest register position leftmost.
type Counts map[string]int

// Total returns the number of shots the histogram accounts for.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// String renders the histogram with sorted keys, so equal histograms
// always print identically.
func (c Counts) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %d", k, c[k])
	}
	b.WriteByte('}')
	return b.String()
}
