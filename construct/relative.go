package construct

import (
	"strings"

	"github.com/cours-de-latin/constructio/boundary"
	"github.com/cours-de-latin/constructio/predicate"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// relHops bounds the pronoun-to-verb ancestor walk.
const relHops = 6

// relativeVerb walks bounded ancestors from a relative pronoun to a
// finite verb, preferring a verb attached via acl:relcl (the walk stops
// there). The walk never jumps across a segment delimiter and is
// cycle-safe.
func relativeVerb(tokens []sent.Token, pron int) int {
	n := len(tokens)
	vi := -1
	seen := make(map[int]bool)
	cur := pron
	for hop := 0; hop < relHops; hop++ {
		next := tokens[cur].HeadIndex(n)
		if next < 0 || seen[next] {
			break
		}
		if boundary.CrossesStrong(tokens, pron, next) {
			break
		}
		seen[next] = true
		cur = next
		if tokens[cur].IsVerbal() && predicate.IsFinite(tokens[cur]) {
			vi = cur
			if tokens[cur].Deprel == "acl:relcl" {
				break
			}
		}
	}
	return vi
}

// isRelativePronoun guards against SCONJ/ADP tokens mis-tagged as
// relative, and against cum/ut lemmas carrying PronType=Rel.
func isRelativePronoun(t sent.Token) bool {
	if !t.Feats.Has("PronType", "Rel") {
		return false
	}
	if t.Upos != "PRON" && t.Upos != "DET" {
		return false
	}
	lemma := strings.ToLower(t.Lemma)
	return lemma != "cum" && lemma != "ut"
}

// DetectSubjunctiveRelatives tags relative clauses of characteristic:
// a relative pronoun whose clause verb is finite subjunctive. Kept as
// its own construction type, distinct from purpose clauses.
func DetectSubjunctiveRelatives(tokens []sent.Token) []Tag {
	var tags []Tag

	for i, tok := range tokens {
		if !isRelativePronoun(tok) {
			continue
		}

		vi := relativeVerb(tokens, i)
		if vi < 0 {
			continue
		}
		if !tokens[vi].Feats.Has("Mood", "Sub") {
			continue
		}
		if boundary.CrossesStrong(tokens, i, vi) {
			continue
		}

		tags = append(tags, Tag{
			Type:    TypeSubjunctiveRelative,
			Subtype: "qui_subj",
			Start:   min(i, vi),
			End:     max(i, vi),
			Highlights: []Span{
				{Start: i, End: i},
				{Start: vi, End: vi},
			},
			Confidence: 0.90,
			Trigger: NewTrigger("rel+subj",
				Ref{"rel_pron_index", i},
				Ref{"verb_index", vi}),
		})
	}

	return tags
}

// DetectRelativeClauses tags relative clauses of any finite mood, with
// the mood as subtype. Verbs without a recognizable mood are skipped.
func DetectRelativeClauses(tokens []sent.Token) []Tag {
	var tags []Tag

	for i, tok := range tokens {
		if !isRelativePronoun(tok) {
			continue
		}

		vi := relativeVerb(tokens, i)
		if vi < 0 {
			continue
		}
		if boundary.CrossesStrong(tokens, i, vi) {
			continue
		}

		var subtype string
		var conf float64
		switch tokens[vi].Feats["Mood"] {
		case "Ind":
			subtype, conf = "indicative", 0.91
		case "Sub":
			subtype, conf = "subjunctive", 0.90
		default:
			continue
		}

		tags = append(tags, Tag{
			Type:    TypeRelativeClause,
			Subtype: subtype,
			Start:   min(i, vi),
			End:     max(i, vi),
			Highlights: []Span{
				{Start: i, End: i},
				{Start: vi, End: vi},
			},
			Confidence: conf,
			Trigger: NewTrigger("PronType=Rel+finite",
				Ref{"rel_pron_index", i},
				Ref{"verb_index", vi}),
		})
	}

	return tags
}
