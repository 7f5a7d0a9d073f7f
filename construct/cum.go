package construct

import (
	"strings"

	"github.com/cours-de-latin/constructio/boundary"
	"github.com/cours-de-latin/constructio/predicate"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// DetectCumClauses tags cum-clauses: lemma "cum" as SCONJ/ADP in a
// mark/case relation whose head is a finite subjunctive verb. The span
// runs from the marker to the next clause boundary, clamped to the
// verb's segment when that scan would cross a segment delimiter.
func DetectCumClauses(tokens []sent.Token) []Tag {
	var tags []Tag
	n := len(tokens)

	for i, tok := range tokens {
		if strings.ToLower(tok.Lemma) != "cum" {
			continue
		}
		if tok.Upos != "SCONJ" && tok.Upos != "ADP" {
			continue
		}
		if tok.Deprel != "mark" && tok.Deprel != "case" {
			continue
		}
		vi := tok.HeadIndex(n)
		if vi < 0 {
			continue
		}

		// marker and verb must share a segment
		if boundary.CrossesStrong(tokens, i, vi) {
			continue
		}

		v := tokens[vi]
		if !v.Feats.Has("Mood", "Sub") || !predicate.IsFinite(v) {
			continue
		}

		end := boundary.NextBoundary(tokens, vi)
		if boundary.CrossesStrong(tokens, i, end) {
			_, segEnd := boundary.SegmentBounds(tokens, vi)
			if segEnd < end {
				end = segEnd
			}
		}

		tags = append(tags, Tag{
			Type:       TypeCumClause,
			Start:      min(i, end),
			End:        max(i, end),
			Confidence: 0.9,
			Trigger: NewTrigger("cum+subj",
				Ref{"cum_index", i},
				Ref{"verb_index", vi}),
		})
	}

	return tags
}
