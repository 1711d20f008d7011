package render

import (
	"encoding/json"
	"io"

	"github.com/radprep/radprep/storage"
)

// JSONRenderer writes sentence hits as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes sentence hits as a JSON array.
func (r *JSONRenderer) Render(hits []storage.SentenceHit) error {
	return json.NewEncoder(r.W).Encode(hits)
}

// Hit serializes a single sentence hit as one JSON object line, the
// streaming counterpart of Render used by the interactive query format.
func (r *JSONRenderer) Hit(hit storage.SentenceHit) error {
	return json.NewEncoder(r.W).Encode(hit)
}
