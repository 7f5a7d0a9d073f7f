package construct

import (
	"github.com/cours-de-latin/constructio/predicate"
	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// IsGerund reports whether the token at gi is a gerund: a future passive
// participle form, neuter singular, that does not agree with a noun-ish
// head. Gerund and gerundive share surface morphology; agreement with a
// head noun is what separates the verbal adjective from the verbal noun.
func IsGerund(tokens []sent.Token, idx *tree.Index, gi int) bool {
	g := tokens[gi]
	if !predicate.IsFuturePassiveParticipleForm(g) {
		return false
	}
	if !g.Feats.Has("Gender", "Neut") || !g.Feats.Has("Number", "Sing") {
		return false
	}

	hi := g.HeadIndex(len(tokens))
	if hi >= 0 {
		h := tokens[hi]
		if h.IsNounish() && sent.AgreeCaseNumberGender(g, h) {
			return false
		}
	}
	return true
}

// IsGerundive is the complement of IsGerund over future passive
// participle forms: for any such token exactly one of the two holds.
func IsGerundive(tokens []sent.Token, idx *tree.Index, gi int) bool {
	if !predicate.IsFuturePassiveParticipleForm(tokens[gi]) {
		return false
	}
	return !IsGerund(tokens, idx, gi)
}

// DetectGerunds tags every future-passive-participle-form token as
// either a gerund or a gerundive, single-token spans.
func DetectGerunds(tokens []sent.Token) []Tag {
	idx := tree.New(tokens)
	var tags []Tag

	for i := range tokens {
		switch {
		case IsGerund(tokens, idx, i):
			tags = append(tags, Tag{
				Type:       TypeGerund,
				Start:      i,
				End:        i,
				Confidence: 0.94,
				Trigger:    NewTrigger("FPP_neut_sing_substantive", Ref{"index", i}),
			})
		case IsGerundive(tokens, idx, i):
			tags = append(tags, Tag{
				Type:       TypeGerundive,
				Start:      i,
				End:        i,
				Confidence: 0.92,
				Trigger:    NewTrigger("FPP_other", Ref{"index", i}),
			})
		}
	}

	return tags
}
