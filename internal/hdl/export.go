package hdl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CName turns a file or page name into a C identifier suffix. Anything other
// than letters, digits and underscores becomes an underscore.
func CName(name string) string {
	if name == "" {
		return "page"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// WriteCArray writes layout as C source for firmware that embeds a page:
// HDL_PAGE_SIZE_<name> holds the length and HDL_PAGE_<name> the bytes,
// sixteen per line.
func WriteCArray(w io.Writer, name string, layout []byte) error {
	if len(layout) > MaxLayoutSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(layout))
	}
	name = CName(name)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// HDL output file\n// Compiled size: %dB\n\n", len(layout))
	fmt.Fprintf(bw, "const unsigned long HDL_PAGE_SIZE_%s = %d;\n", name, len(layout))
	fmt.Fprintf(bw, "const unsigned char HDL_PAGE_%s[] = {", name)
	for i, b := range layout {
		if i > 0 {
			bw.WriteByte(',')
		}
		if i%16 == 0 {
			bw.WriteString("\n    ")
		} else {
			bw.WriteByte(' ')
		}
		fmt.Fprintf(bw, "0x%02x", b)
	}
	bw.WriteString("\n};\n")
	return bw.Flush()
}
