package discourse

import (
	"testing"

	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

func finVerb(text, lemma, tense string, head int) sent.Token {
	return sent.Token{Text: text, Lemma: lemma, Upos: "VERB", Head: head,
		Feats: sent.ParseFeats("Mood=Ind|Tense=" + tense + "|VerbForm=Fin")}
}

func TestInferHeadverbAncestor(t *testing.T) {
	// dixit <- fecisset: the protasis verb hangs off a speech verb
	tokens := []sent.Token{
		finVerb("dixit", "dico", "Past", 0),
		{Text: "fecisset", Lemma: "facio", Upos: "VERB", Head: 1,
			Feats: sent.ParseFeats("Mood=Sub|Tense=Pqp|VerbForm=Fin")},
	}
	idx := tree.New(tokens)
	d := Infer(tokens, idx, 1, -1, 0, 1)

	if !d.Indirect() {
		t.Fatalf("expected indirect, got %+v", d)
	}
	if d.Sequence != "secondary" || d.Discourse != "indirect_secondary" {
		t.Errorf("sequence = %q, discourse = %q", d.Sequence, d.Discourse)
	}
	if d.HeadVerbIndex != 0 || d.Reason != "headverb_ancestor" {
		t.Errorf("head = %d, reason = %q", d.HeadVerbIndex, d.Reason)
	}
}

func TestInferSentenceUnitFallback(t *testing.T) {
	// the speech verb is not an ancestor, but lives in the same
	// sentence unit across a colon
	tokens := []sent.Token{
		finVerb("nuntiat", "nuntio", "Pres", 0),
		{Text: ":", Upos: "PUNCT", Deprel: "punct"},
		{Text: "veniat", Lemma: "venio", Upos: "VERB", Head: 0, Deprel: "root",
			Feats: sent.ParseFeats("Mood=Sub|Tense=Pres|VerbForm=Fin")},
	}
	idx := tree.New(tokens)
	d := Infer(tokens, idx, 2, -1, 2, 2)

	if !d.Indirect() || d.Reason != "headverb_sentence_unit" {
		t.Fatalf("expected sentence-unit indirect, got %+v", d)
	}
	if d.Sequence != "primary" {
		t.Errorf("present governing verb gives primary sequence, got %q", d.Sequence)
	}
}

func TestInferInfinitiveHeuristic(t *testing.T) {
	// infinitive apodosis, the protasis verb is the only finite
	// predicate in the segment
	tokens := []sent.Token{
		{Text: "si", Lemma: "si", Upos: "SCONJ", Head: 2, Deprel: "mark"},
		{Text: "fecisset", Lemma: "facio", Upos: "VERB", Head: 0, Deprel: "root",
			Feats: sent.ParseFeats("Mood=Sub|Tense=Pqp|VerbForm=Fin")},
		{Text: "venturum", Lemma: "venio", Upos: "VERB", Head: 2,
			Feats: sent.ParseFeats("VerbForm=Inf")},
	}
	idx := tree.New(tokens)
	d := Infer(tokens, idx, 1, 2, 0, 2)

	if !d.Indirect() || d.Reason != "heuristic_infinitive_main" {
		t.Fatalf("expected infinitive heuristic, got %+v", d)
	}
	if d.Sequence != "secondary" {
		t.Errorf("pluperfect protasis gives secondary sequence, got %q", d.Sequence)
	}
	if d.HeadVerbIndex != -1 {
		t.Errorf("no governing verb should be reported, got %d", d.HeadVerbIndex)
	}
}

func TestInferDefaultDirect(t *testing.T) {
	tokens := []sent.Token{
		finVerb("venit", "venio", "Past", 0),
	}
	idx := tree.New(tokens)
	d := Infer(tokens, idx, 0, -1, 0, 0)
	if d.Indirect() || d.Discourse != "direct" {
		t.Errorf("expected direct, got %+v", d)
	}
}

func TestSentenceUnitBlockedByPeriod(t *testing.T) {
	// speech verb in the previous sentence unit must not be found
	tokens := []sent.Token{
		finVerb("dixit", "dico", "Past", 0),
		{Text: ".", Upos: "PUNCT", Deprel: "punct"},
		finVerb("venit", "venio", "Past", 0),
	}
	idx := tree.New(tokens)
	d := Infer(tokens, idx, 2, -1, 2, 2)
	if d.Indirect() {
		t.Errorf("period blocks the head-verb search, got %+v", d)
	}
}

func TestLemmaSetsAreDistinct(t *testing.T) {
	if !SpeechLemmas["dico"] || !IndirectHeadLemmas["dico"] {
		t.Error("dico belongs to both sets")
	}
	if SpeechLemmas["iubeo"] {
		t.Error("iubeo must not trigger the indirect-statement tagger")
	}
	if !IndirectHeadLemmas["iubeo"] {
		t.Error("iubeo governs indirect discourse")
	}
}
