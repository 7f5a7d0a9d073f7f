package review

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cours-de-latin/constructio/construct"
	sent "github.com/cours-de-latin/constructio/sentence"
)

func testSentence(sid string, words ...string) sent.Sentence {
	tokens := make([]sent.Token, len(words))
	for i, w := range words {
		tokens[i] = sent.Token{Text: w, Lemma: strings.ToLower(w), Upos: "NOUN"}
	}
	return sent.Sentence{Sid: sid, Text: strings.Join(words, " "), Tokens: tokens}
}

func TestCensusCounts(t *testing.T) {
	c := NewCensus()
	s := testSentence("1.1", "cum", "Caesar", "venisset")
	tags := []construct.Tag{
		{Type: construct.TypeCumClause, Subtype: "circumstantial", Start: 0, End: 2, Confidence: 0.92},
		{Type: construct.TypeCumClause, Subtype: "causal", Start: 0, End: 2, Confidence: 0.9},
		{Type: construct.TypeAblAbs, Start: 1, End: 2, Confidence: 0.88},
	}
	c.Aggregate(s, tags)

	if c.Tags != 3 || c.Sentences != 1 {
		t.Fatalf("tags=%d sentences=%d, want 3 and 1", c.Tags, c.Sentences)
	}
	if c.ByType[construct.TypeCumClause] != 2 {
		t.Errorf("cum_clause count = %d, want 2", c.ByType[construct.TypeCumClause])
	}
	if c.BySubtype["cum_clause/causal"] != 1 {
		t.Errorf("cum_clause/causal count = %d, want 1", c.BySubtype["cum_clause/causal"])
	}
	if len(c.Problems) != 0 {
		t.Errorf("unexpected problems: %v", c.Problems)
	}
}

func TestCensusValidation(t *testing.T) {
	c := NewCensus()
	s := testSentence("2.4", "urbe", "capta")
	tags := []construct.Tag{
		{Type: construct.TypeAblAbs, Start: 0, End: 5},
		{Type: construct.TypeAblAbs, Start: 1, End: 0},
		{Type: construct.TypeAblAbs, Start: 0, End: 1, Highlights: []construct.Span{{Start: 3, End: 4}}},
	}
	c.Aggregate(s, tags)

	if len(c.Problems) != 3 {
		t.Fatalf("got %d problems, want 3: %v", len(c.Problems), c.Problems)
	}
	if c.Problems[0].Sid != "2.4" {
		t.Errorf("problem sid = %q, want 2.4", c.Problems[0].Sid)
	}
	if !strings.Contains(c.Problems[0].Reasons[0], "end out of range") {
		t.Errorf("first reason = %q, want end out of range", c.Problems[0].Reasons[0])
	}
	if !strings.Contains(c.Problems[2].Reasons[0], "highlight span out of range") {
		t.Errorf("third reason = %q, want highlight span out of range", c.Problems[2].Reasons[0])
	}
}

func TestAggregateAllMissingSentence(t *testing.T) {
	c := NewCensus()
	known := testSentence("1.1", "Gallia", "est")
	bySid := map[string][]construct.Tag{
		"1.1": {{Type: construct.TypeRelativeClause, Start: 0, End: 1}},
		"9.9": {{Type: construct.TypeRelativeClause, Start: 0, End: 1}},
	}
	c.AggregateAll(bySid, func(sid string) (sent.Sentence, error) {
		if sid == "1.1" {
			return known, nil
		}
		return sent.Sentence{}, fmt.Errorf("no sentence %s", sid)
	})

	if c.Tags != 1 {
		t.Errorf("tags = %d, want 1", c.Tags)
	}
	if len(c.Missing) != 1 || c.Missing[0] != "9.9" {
		t.Errorf("missing = %v, want [9.9]", c.Missing)
	}
}

func TestSummaryOutput(t *testing.T) {
	c := NewCensus()
	s := testSentence("1.2", "ad", "urbem", "capiendam")
	c.Aggregate(s, []construct.Tag{
		{Type: construct.TypeGerundive, Subtype: "gerundive", Start: 0, End: 2},
	})

	var buf strings.Builder
	c.Summary(&buf)
	out := buf.String()
	if !strings.Contains(out, "TAG COUNTS BY TYPE (1 tags, 1 sentences)") {
		t.Errorf("summary missing header:\n%s", out)
	}
	if !strings.Contains(out, "gerundive/gerundive") {
		t.Errorf("summary missing subtype row:\n%s", out)
	}
	if !strings.Contains(out, "VALIDATION: 0 tags with problems") {
		t.Errorf("summary missing validation line:\n%s", out)
	}
}

func TestExamplesCap(t *testing.T) {
	bySid := map[string][]construct.Tag{}
	sentences := map[string]sent.Sentence{}
	for i := 0; i < MaxPerType+3; i++ {
		sid := fmt.Sprintf("1.%02d", i)
		sentences[sid] = testSentence(sid, "urbe", "capta")
		bySid[sid] = []construct.Tag{{
			Type: construct.TypeAblAbs, Start: 0, End: 1, Confidence: 0.88,
			Trigger: construct.NewTrigger("abl+participle", construct.Ref{Name: "noun_index", Index: 0}),
		}}
	}

	var buf strings.Builder
	printed := Examples(&buf, bySid, func(sid string) (sent.Sentence, error) {
		s, ok := sentences[sid]
		if !ok {
			return sent.Sentence{}, fmt.Errorf("no sentence %s", sid)
		}
		return s, nil
	}, false)

	if printed[construct.TypeAblAbs] != MaxPerType {
		t.Fatalf("printed %d abl_abs examples, want %d", printed[construct.TypeAblAbs], MaxPerType)
	}
	out := buf.String()
	if strings.Count(out, "SID:") != MaxPerType {
		t.Errorf("output has %d example headers, want %d", strings.Count(out, "SID:"), MaxPerType)
	}
	if !strings.Contains(out, "noun_index @ 0: urbe") {
		t.Errorf("trigger ref line missing:\n%s", out)
	}
}
