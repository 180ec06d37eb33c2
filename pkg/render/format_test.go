package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []Format
	}{
		{"", []Format{FormatSVG}},
		{"svg", []Format{FormatSVG}},
		{"PNG, dot", []Format{FormatPNG, FormatDOT}},
		{"json,,json,pdf", []Format{FormatJSON, FormatPDF}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if err != nil {
				t.Fatalf("ParseFormats(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseFormats(%q) (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseFormatsRejectsUnknown(t *testing.T) {
	_, err := ParseFormats("svg,tower")
	if !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormats error = %v, want INVALID_FORMAT", err)
	}
}

func TestFormatExt(t *testing.T) {
	tests := map[Format]string{
		FormatSVG:  ".svg",
		FormatDOT:  ".gv",
		FormatJSON: ".json",
		FormatPDF:  ".pdf",
		FormatPNG:  ".png",
	}
	for f, want := range tests {
		if got := f.Ext(); got != want {
			t.Errorf("%s.Ext() = %q, want %q", f, got, want)
		}
	}
	if !FormatPNG.Binary() || FormatDOT.Binary() {
		t.Error("Binary() misclassifies formats")
	}
}
