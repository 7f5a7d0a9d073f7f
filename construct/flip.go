package construct

import (
	"strings"

	"github.com/cours-de-latin/constructio/boundary"
	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// DetectGerundGerundiveFlip flags the environments where classical prose
// prefers the gerundive periphrasis over gerund+object (and vice versa):
//
//   - a gerund with a direct object child (substandard "gerund+object");
//   - ad + noun + agreeing gerundive, whether UD attached "ad" to the
//     noun or to the gerundive itself.
func DetectGerundGerundiveFlip(tokens []sent.Token) []Tag {
	n := len(tokens)
	idx := tree.New(tokens)
	var tags []Tag

	// gerund with object dependent
	for i := range tokens {
		if !IsGerund(tokens, idx, i) {
			continue
		}

		objIdx := -1
		bestDist := 0
		for _, ci := range idx.Children(i) {
			if tokens[ci].Deprel != "obj" {
				continue
			}
			d := abs(ci - i)
			if objIdx < 0 || d < bestDist {
				objIdx = ci
				bestDist = d
			}
		}
		if objIdx < 0 {
			continue
		}

		tags = append(tags, Tag{
			Type:    TypeGerundGerundiveFlip,
			Subtype: "gerund_form_with_object",
			Start:   min(i, objIdx),
			End:     max(i, objIdx),
			Highlights: []Span{
				{Start: i, End: i},
				{Start: objIdx, End: objIdx},
			},
			Confidence: 0.86,
			Trigger: NewTrigger("gerund+obj",
				Ref{"gerund_index", i},
				Ref{"obj_index", objIdx}),
		})
	}

	// ad-phrase gerundive environments
	for i, tok := range tokens {
		if tok.Upos != "ADP" || tok.Deprel != "case" {
			continue
		}
		if strings.ToLower(tok.Text) != "ad" && strings.ToLower(tok.Lemma) != "ad" {
			continue
		}

		hi := tok.HeadIndex(n)
		if hi < 0 {
			continue
		}
		head := tokens[hi]

		switch {
		case head.IsNounish():
			// gerundive children of the noun, agreeing with it
			gi := -1
			bestDist := 0
			for _, ci := range idx.Children(hi) {
				if !IsGerundive(tokens, idx, ci) {
					continue
				}
				if !sent.AgreeCaseNumberGender(tokens[ci], head) {
					continue
				}
				d := abs(ci - hi)
				if gi < 0 || d < bestDist {
					gi = ci
					bestDist = d
				}
			}
			if gi < 0 {
				continue
			}
			if boundary.CrossesStrong(tokens, i, gi) {
				continue
			}
			tags = append(tags, Tag{
				Type:    TypeGerundGerundiveFlip,
				Subtype: "gerundive_form_ad_phrase",
				Start:   min(i, min(hi, gi)),
				End:     max(i, max(hi, gi)),
				Highlights: []Span{
					{Start: i, End: i},
					{Start: hi, End: hi},
					{Start: gi, End: gi},
				},
				Confidence: 0.84,
				Trigger: NewTrigger("ad+noun+gerundive",
					Ref{"ad_index", i},
					Ref{"noun_index", hi},
					Ref{"gerundive_index", gi}),
			})

		case IsGerundive(tokens, idx, hi):
			// UD attached "ad" to the gerundive; look for the noun it
			// agrees with among its children
			nounIdx := -1
			bestDist := 0
			for _, ci := range idx.Children(hi) {
				if !tokens[ci].IsNounish() {
					continue
				}
				if !sent.AgreeCaseNumberGender(tokens[hi], tokens[ci]) {
					continue
				}
				d := abs(ci - hi)
				if nounIdx < 0 || d < bestDist {
					nounIdx = ci
					bestDist = d
				}
			}

			if boundary.CrossesStrong(tokens, i, hi) {
				continue
			}

			if nounIdx < 0 {
				// still an ad-phrase environment, just weaker
				tags = append(tags, Tag{
					Type:    TypeGerundGerundiveFlip,
					Subtype: "gerundive_form_ad_phrase_no_noun",
					Start:   min(i, hi),
					End:     max(i, hi),
					Highlights: []Span{
						{Start: i, End: i},
						{Start: hi, End: hi},
					},
					Confidence: 0.72,
					Trigger: NewTrigger("ad+gerundive(no_noun)",
						Ref{"ad_index", i},
						Ref{"gerundive_index", hi}),
				})
				continue
			}

			tags = append(tags, Tag{
				Type:    TypeGerundGerundiveFlip,
				Subtype: "gerundive_form_ad_phrase",
				Start:   min(i, min(nounIdx, hi)),
				End:     max(i, max(nounIdx, hi)),
				Highlights: []Span{
					{Start: i, End: i},
					{Start: nounIdx, End: nounIdx},
					{Start: hi, End: hi},
				},
				Confidence: 0.86,
				Trigger: NewTrigger("ad->gerundive+agreeing_noun",
					Ref{"ad_index", i},
					Ref{"noun_index", nounIdx},
					Ref{"gerundive_index", hi}),
			})
		}
	}

	return tags
}
