package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cours-de-latin/constructio/construct"

	sent "github.com/cours-de-latin/constructio/sentence"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []TaggedSentence
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestJSONRendererRoundTrip(t *testing.T) {
	in := []TaggedSentence{
		{
			Sid:  "1.3",
			Text: "cum Caesar venisset,",
			Tags: []construct.Tag{{
				Type: construct.TypeCumClause, Start: 0, End: 2, Confidence: 0.9,
				Trigger: construct.NewTrigger("cum+subj",
					construct.Ref{Name: "cum_index", Index: 0},
					construct.Ref{Name: "verb_index", Index: 2}),
			}},
		},
	}

	var buf bytes.Buffer
	if err := NewJSONRenderer(&buf).Render(in); err != nil {
		t.Fatalf("render: %v", err)
	}

	var out []TaggedSentence
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].Sid != "1.3" {
		t.Fatalf("results = %+v", out)
	}
	tag := out[0].Tags[0]
	if tag.Type != construct.TypeCumClause || tag.Confidence != 0.9 {
		t.Errorf("tag = %+v", tag)
	}
	if vi, ok := tag.Trigger.Get("verb_index"); !ok || vi != 2 {
		t.Errorf("trigger = %+v", tag.Trigger)
	}
}

func TestSentenceStringHighlights(t *testing.T) {
	tokens := []sent.Token{
		{Text: "cum"}, {Text: "Caesar"}, {Text: "venisset"},
	}
	tags := []construct.Tag{{
		Type: construct.TypeCumClause, Start: 0, End: 2,
		Highlights: []construct.Span{{Start: 0, End: 0}, {Start: 2, End: 2}},
	}}

	plain := &Renderer{}
	if got := plain.SentenceString(tokens, tags); got != "cum Caesar venisset" {
		t.Errorf("plain = %q", got)
	}

	color := &Renderer{HasColor: true}
	got := color.SentenceString(tokens, tags)
	if !strings.Contains(got, Teal+"cum"+Off) {
		t.Errorf("cum not colored: %q", got)
	}
	if strings.Contains(got, Teal+"Caesar"+Off) {
		t.Errorf("Caesar is outside the highlights: %q", got)
	}
}

func TestTokenLines(t *testing.T) {
	tokens := []sent.Token{
		{Text: "venisset", Lemma: "venio", Upos: "VERB", Deprel: "root", Head: 0,
			Feats: sent.ParseFeats("Mood=Sub|Tense=Pqp")},
	}
	lines := TokenLines(tokens)
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	want := "0:venisset<venio>/VERB[Mood=Sub|Tense=Pqp] root->0"
	if lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
}
