package analysis

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Plot renders values as an ASCII line graph. Empty input yields "".
func Plot(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	data := values
	if len(data) == 1 {
		data = []float64{values[0], values[0]}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Report formats an Occupancy with column and row profiles.
func Report(occ Occupancy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "stars:      %d\n", occ.Stars)
	fmt.Fprintf(&b, "visible:    %d\n", occ.Marked)
	fmt.Fprintf(&b, "duplicates: %d\n", occ.Duplicates)
	fmt.Fprintf(&b, "density:    %.4f (realised %.4f)\n\n", occ.Density, occ.Realised)
	if g := Plot(occ.Columns, "stars per column", 80, 8); g != "" {
		b.WriteString(g)
		b.WriteString("\n\n")
	}
	if g := Plot(occ.Rows, "stars per row", 80, 8); g != "" {
		b.WriteString(g)
		b.WriteString("\n")
	}
	return b.String()
}
