// Package discourse decides whether a clause is reported as direct or
// indirect speech, and whether its sequence of tenses is primary or
// secondary. Indirect discourse systematically shifts Latin moods and
// tenses, so the conditional classifier needs this before it can label
// anything.
package discourse

import (
	"strings"

	"github.com/cours-de-latin/constructio/boundary"
	"github.com/cours-de-latin/constructio/predicate"
	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// maxAncestorHops bounds the head-verb walk; head graphs can be cyclic.
const maxAncestorHops = 30

// SpeechLemmas is the closed trigger set for the indirect-statement
// detector (verbs of saying, thinking and perceiving).
var SpeechLemmas = newSet(
	"dico", "inquam", "aio", "nego", "respondeo", "puto", "existimo", "arbitror",
	"audio", "video", "cognosco", "intellego", "scio", "comperio", "nuntio",
)

// IndirectHeadLemmas is the broader set used for discourse inference:
// SpeechLemmas plus verbs of ordering, requesting, reporting and
// inference. Kept separate so widening it never changes the
// indirect-statement tagger.
var IndirectHeadLemmas = union(SpeechLemmas, newSet(
	"impero", "iubeo", "mando", "praecipio", "cogo", "hortor", "moneo",
	"oro", "rogo", "peto", "postulo", "flagito", "posco", "suadeo", "persuadeo",
	"prohibeo", "veto",
	"renuntio", "refero", "denuntio",
	"animadverto", "rescio",
))

func newSet(lemmas ...string) map[string]bool {
	m := make(map[string]bool, len(lemmas))
	for _, l := range lemmas {
		m[l] = true
	}
	return m
}

func union(a, b map[string]bool) map[string]bool {
	m := make(map[string]bool, len(a)+len(b))
	for k := range a {
		m[k] = true
	}
	for k := range b {
		m[k] = true
	}
	return m
}

// IsGoverningVerb reports whether the token is a finite speech/command/
// perception verb that can govern indirect discourse.
func IsGoverningVerb(t sent.Token) bool {
	return IndirectHeadLemmas[strings.ToLower(t.Lemma)] && predicate.IsFinite(t)
}

// Info is the inferred discourse context of a clause.
type Info struct {
	// Statement is "direct" or "indirect".
	Statement string `json:"statement"`

	// Sequence is "primary", "secondary" or "" when undeterminable.
	Sequence string `json:"sequence,omitempty"`

	// HeadVerbIndex is the governing speech verb, -1 when none found.
	HeadVerbIndex int `json:"head_verb_index"`

	// HeadVerbTense is the governing verb's tense, "" when none.
	HeadVerbTense string `json:"head_verb_tense,omitempty"`

	// Discourse collapses statement+sequence into one label:
	// direct, indirect_primary, indirect_secondary or indirect.
	Discourse string `json:"discourse"`

	// Reason names the rule that decided, for diagnostics.
	Reason string `json:"reason,omitempty"`
}

// Indirect reports whether the clause is inside reported speech.
func (d Info) Indirect() bool {
	return d.Statement == "indirect"
}

func direct(reason string) Info {
	return Info{Statement: "direct", HeadVerbIndex: -1, Discourse: "direct", Reason: reason}
}

func indirect(tokens []sent.Token, sequence string, headIdx int, reason string) Info {
	d := Info{Statement: "indirect", Sequence: sequence, HeadVerbIndex: headIdx, Reason: reason}
	if headIdx >= 0 {
		d.HeadVerbTense = tokens[headIdx].Feats["Tense"]
	} else {
		d.HeadVerbIndex = -1
	}
	if sequence != "" {
		d.Discourse = "indirect_" + sequence
	} else {
		d.Discourse = "indirect"
	}
	return d
}

// SequenceFromTense maps a governing verb's tense to the sequence of
// tenses: primary for present/future, secondary for past tenses.
func SequenceFromTense(tense string) string {
	switch tense {
	case "Pres", "Fut":
		return "primary"
	case "Past", "Pqp":
		return "secondary"
	}
	return ""
}

// Infer determines the discourse of a clause anchored at the protasis
// verb protIdx, with the tentative apodosis apIdx (-1 when none), inside
// the segment [segStart, segEnd].
//
// Search order: governing verb in the dependency ancestors of either
// anchor, then nearest governing verb in the enclosing sentence unit
// (semicolons and colons do not block this search), then the
// infinitive-apodosis heuristic, then default direct.
func Infer(tokens []sent.Token, idx *tree.Index, protIdx, apIdx, segStart, segEnd int) Info {
	for _, base := range []int{protIdx, apIdx} {
		if base < 0 || base >= len(tokens) {
			continue
		}
		for _, anc := range tree.Ancestors(tokens, base, maxAncestorHops) {
			if IsGoverningVerb(tokens[anc]) {
				seq := SequenceFromTense(tokens[anc].Feats["Tense"])
				return indirect(tokens, seq, anc, "headverb_ancestor")
			}
		}
	}

	anchor := protIdx
	if anchor < 0 {
		anchor = apIdx
	}
	if anchor >= 0 && anchor < len(tokens) {
		sbStart, sbEnd := boundary.SentenceBounds(tokens, anchor)
		best := -1
		for j := sbStart; j <= sbEnd; j++ {
			if !IsGoverningVerb(tokens[j]) {
				continue
			}
			if best < 0 || abs(j-anchor) < abs(best-anchor) {
				best = j
			}
		}
		if best >= 0 {
			seq := SequenceFromTense(tokens[best].Feats["Tense"])
			return indirect(tokens, seq, best, "headverb_sentence_unit")
		}
	}

	// An infinitive apodosis with no other finite predicate in the
	// segment is reported speech with its verb of saying elided.
	if apIdx >= 0 && apIdx < len(tokens) && predicate.IsInfinitive(tokens[apIdx]) {
		finite := 0
		onlyProtasis := true
		for j := segStart; j <= segEnd && j < len(tokens); j++ {
			if predicate.IsFinite(tokens[j]) {
				finite++
				if j != protIdx {
					onlyProtasis = false
				}
			}
		}
		if finite == 0 || (finite == 1 && onlyProtasis) {
			seq := ""
			if protIdx >= 0 && protIdx < len(tokens) {
				seq = protasisSequence(tokens[protIdx])
			}
			return indirect(tokens, seq, -1, "heuristic_infinitive_main")
		}
	}

	return direct("default_direct")
}

// protasisSequence derives the sequence from the protasis's own tense
// when no governing verb could be found.
func protasisSequence(t sent.Token) string {
	switch t.Feats["Tense"] {
	case "Pres":
		return "primary"
	case "Past", "Pqp":
		return "secondary"
	}
	return ""
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
