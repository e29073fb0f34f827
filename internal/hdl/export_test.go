package hdl

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"status", "status"},
		{"hdl-output.c", "hdl_output_c"},
		{"2nd page", "_2nd_page"},
		{"", "page"},
	}
	for _, tc := range tests {
		if got := CName(tc.in); got != tc.want {
			t.Errorf("CName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteCArray(t *testing.T) {
	layout := make([]byte, 17)
	for i := range layout {
		layout[i] = byte(i)
	}
	layout[16] = 0xAB

	var buf bytes.Buffer
	if err := WriteCArray(&buf, "hdl-output", layout); err != nil {
		t.Fatalf("WriteCArray: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"const unsigned long HDL_PAGE_SIZE_hdl_output = 17;\n",
		"const unsigned char HDL_PAGE_hdl_output[] = {\n    0x00, 0x01,",
		"0x0e, 0x0f,\n    0xab\n};\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestWriteCArrayEmptyAndOversize(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCArray(&buf, "empty", nil); err != nil {
		t.Fatalf("WriteCArray(nil): %v", err)
	}
	if !strings.Contains(buf.String(), "HDL_PAGE_empty[] = {\n};\n") {
		t.Errorf("empty array not closed:\n%s", buf.String())
	}

	buf.Reset()
	err := WriteCArray(&buf, "big", make([]byte, MaxLayoutSize+1))
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("error = %v, want ErrPayloadTooLarge", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an oversize layout", buf.Len())
	}
}
