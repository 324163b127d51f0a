package matrix

import (
	"bufio"
	"fmt"
	"io"
)

// phylipNameWidth is the fixed name column of the PHYLIP layout.
const phylipNameWidth = 10

// WritePHYLIP writes m as a square PHYLIP distance matrix: the sequence
// count, then one row per sequence with the name padded or truncated to
// ten characters followed by the distances.
func WritePHYLIP(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", m.Size())
	for i, name := range m.names {
		if len(name) > phylipNameWidth {
			name = name[:phylipNameWidth]
		}
		fmt.Fprintf(bw, "%-*s", phylipNameWidth, name)
		for j, d := range m.values[i] {
			if j > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%.6f", d)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WritePairs writes one tab-separated line "name_i name_j distance" per
// ordered pair i ≠ j.
func WritePairs(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)
	for i := range m.names {
		for j := range m.names {
			if i == j {
				continue
			}
			fmt.Fprintf(bw, "%s\t%s\t%.6f\n", m.names[i], m.names[j], m.values[i][j])
		}
	}
	return bw.Flush()
}
