package generate

import (
	"fmt"
	"io"
	"strings"
)

// Separator between fields of every generated table, shared by the whole
// tool chain so downstream readers can use one splitter.
const Separator = " , "

// Row writes one table row with every cell left-justified to width. The
// first cell carries no separator.
func Row(w io.Writer, width int, cells ...string) error {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString(Separator)
		}
		fmt.Fprintf(&b, "%-*s", width, c)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// Comment writes the quoted descriptive line that opens an artifact,
// followed by the blank separator line.
func Comment(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, "%q\n\n", fmt.Sprintf(format, args...))
	return err
}
