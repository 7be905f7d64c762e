package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders the full report as JSON
type JSONFormatter struct {
	Indent bool
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render encodes the report
func (f *JSONFormatter) Render(w io.Writer, r *Report) error {
	if err := r.validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(r)
}
