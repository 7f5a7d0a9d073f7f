package render

import (
	"encoding/json"
	"io"

	"github.com/cours-de-latin/constructio/construct"
)

// TaggedSentence pairs one sentence with its construction tags, the unit
// of machine-readable output.
type TaggedSentence struct {
	Sid  string          `json:"sid"`
	Text string          `json:"text,omitempty"`
	Tags []construct.Tag `json:"tags"`
}

// JSONRenderer writes tagged sentences as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the results as a JSON array.
func (r *JSONRenderer) Render(results []TaggedSentence) error {
	return json.NewEncoder(r.W).Encode(results)
}
