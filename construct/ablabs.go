package construct

import (
	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// DetectAblativeAbsolutes tags ablative absolutes: an ablative participle
// with an ablative noun-ish child agreeing in gender and number. Both
// sides must carry both features; missing agreement data is a non-match,
// never a guess. Only the participle and noun are tagged, not the rest
// of the clause.
func DetectAblativeAbsolutes(tokens []sent.Token) []Tag {
	idx := tree.New(tokens)
	var tags []Tag

	for i, tok := range tokens {
		if tok.Upos != "VERB" {
			continue
		}
		if !tok.Feats.Has("VerbForm", "Part") || !tok.Feats.Has("Case", "Abl") {
			continue
		}

		partGender, pgOk := tok.Feats.Get("Gender")
		partNumber, pnOk := tok.Feats.Get("Number")

		nounIdx := -1
		for _, ci := range idx.Children(i) {
			c := tokens[ci]
			if !c.IsNounish() || !c.Feats.Has("Case", "Abl") {
				continue
			}

			nounGender, ngOk := c.Feats.Get("Gender")
			nounNumber, nnOk := c.Feats.Get("Number")

			if !pgOk || !pnOk || !ngOk || !nnOk {
				continue
			}
			if partGender != nounGender || partNumber != nounNumber {
				continue
			}

			nounIdx = ci
			break
		}

		if nounIdx < 0 {
			continue
		}

		tags = append(tags, Tag{
			Type:  TypeAblAbs,
			Start: min(i, nounIdx),
			End:   max(i, nounIdx),
			Highlights: []Span{
				{Start: i, End: i},
				{Start: nounIdx, End: nounIdx},
			},
			Confidence: 0.88,
			Trigger: NewTrigger("abl_part+abl_noun_agree",
				Ref{"part_index", i},
				Ref{"abl_noun_index", nounIdx}),
		})
	}

	return tags
}
