package render

import (
	"strings"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
)

// Format is an output format of a family diagram.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatSVG

// AllFormats lists the supported formats in documentation order.
var AllFormats = []Format{FormatSVG, FormatDOT, FormatJSON, FormatPDF, FormatPNG}

// Ext returns the file extension, including the leading dot.
func (f Format) Ext() string {
	if f == FormatDOT {
		return ".gv"
	}
	return "." + string(f)
}

// Binary reports whether the format is not text.
func (f Format) Binary() bool { return f == FormatPDF || f == FormatPNG }

// ParseFormats parses a comma-separated format list. Blank entries are
// skipped and duplicates collapse; an empty list yields [DefaultFormat].
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		f := Format(name)
		if !f.valid() {
			return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unknown format %q (want one of svg, dot, json, pdf, png)", part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []Format{DefaultFormat}
	}
	return out, nil
}

func (f Format) valid() bool {
	for _, known := range AllFormats {
		if f == known {
			return true
		}
	}
	return false
}
