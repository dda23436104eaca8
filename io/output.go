package io

import (
	"bufio"
	"fmt"
	goio "io"
	"strings"
)

// WriteCurves writes a whitespace separated table with the evaluation points
// in the first column and one column per curve. The header line starts with
// '#' so that the table can be read back with table.ReadTable.
func WriteCurves(
	w goio.Writer, xs []float64, names []string, curves [][]float64,
) error {
	if len(names) != len(curves) {
		return fmt.Errorf(
			"Given %d curve names but %d curves.", len(names), len(curves),
		)
	}
	for i, ys := range curves {
		if len(ys) != len(xs) {
			return fmt.Errorf(
				"Curve '%s' has %d values, but there are %d points.",
				names[i], len(ys), len(xs),
			)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# x %s\n", strings.Join(names, " "))
	for j, x := range xs {
		fmt.Fprintf(bw, "%12.6g", x)
		for _, ys := range curves {
			fmt.Fprintf(bw, " %12.6g", ys[j])
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
