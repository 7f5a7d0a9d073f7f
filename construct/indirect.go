package construct

import (
	"math"
	"strings"

	"github.com/cours-de-latin/constructio/boundary"
	"github.com/cours-de-latin/constructio/discourse"
	"github.com/cours-de-latin/constructio/predicate"
	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// DetectIndirectStatements tags accusative+infinitive statements: a
// speech verb with an infinitival child that has an accusative subject.
// A direct child of the infinitive in nsubj/obj/nsubj:pass is preferred;
// any accusative nominal in the infinitive's subtree is the fallback.
func DetectIndirectStatements(tokens []sent.Token) []Tag {
	idx := tree.New(tokens)
	var tags []Tag

	for i, tok := range tokens {
		if !tok.IsVerbal() {
			continue
		}
		if !discourse.SpeechLemmas[strings.ToLower(tok.Lemma)] {
			continue
		}

		infIdx := -1
		for _, ci := range idx.Children(i) {
			if tokens[ci].IsVerbal() && predicate.IsInfinitive(tokens[ci]) {
				infIdx = ci
				break
			}
		}
		if infIdx < 0 {
			continue
		}

		accIdx := -1
		for _, ci := range idx.Children(infIdx) {
			c := tokens[ci]
			if !c.IsNounish() || !c.Feats.Has("Case", "Acc") {
				continue
			}
			if c.Deprel == "nsubj" || c.Deprel == "obj" || c.Deprel == "nsubj:pass" {
				accIdx = ci
				break
			}
		}
		if accIdx < 0 {
			for j := range tokens {
				if !idx.InSubtree(infIdx, j) {
					continue
				}
				if tokens[j].IsNounish() && tokens[j].Feats.Has("Case", "Acc") {
					accIdx = j
					break
				}
			}
		}
		if accIdx < 0 {
			continue
		}

		// never pair subject and infinitive across a segment delimiter
		if boundary.CrossesStrong(tokens, accIdx, infIdx) {
			continue
		}

		start := min(accIdx, infIdx)
		end := boundary.NextBoundary(tokens, max(accIdx, infIdx))

		if boundary.CrossesStrong(tokens, start, end) {
			segStart, segEnd := boundary.SegmentBounds(tokens, infIdx)
			start = max(start, segStart)
			end = min(end, segEnd)
			if start > end {
				continue
			}
		}

		conf := 0.9
		if abs(accIdx-infIdx) > 6 {
			conf = 0.85
		}
		if tokens[accIdx].Deprel == "nsubj" {
			conf = math.Round((conf+0.03)*100) / 100
		}

		tags = append(tags, Tag{
			Type:  TypeIndirectStatement,
			Start: start,
			End:   end,
			Highlights: []Span{
				{Start: accIdx, End: accIdx},
				{Start: infIdx, End: infIdx},
			},
			Confidence: conf,
			Trigger: NewTrigger("speech+acc+inf",
				Ref{"speech_verb_index", i},
				Ref{"inf_index", infIdx},
				Ref{"acc_subject_index", accIdx}),
		})
	}

	return tags
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
