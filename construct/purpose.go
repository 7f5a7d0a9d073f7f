package construct

import (
	"strings"

	"github.com/cours-de-latin/constructio/boundary"
	"github.com/cours-de-latin/constructio/predicate"
	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// purposeMarkers introduce final/consecutive clauses.
var purposeMarkers = map[string]bool{"ut": true, "ne": true, "neve": true, "uti": true}

// resultCorrelatives mark a result clause when they precede ut/uti in the
// same segment ("so / such / so great"). eo and usque are kept for
// broader recall on this corpus.
var resultCorrelatives = map[string]bool{
	"tam": true, "ita": true, "sic": true, "tantus": true, "talis": true,
	"tot": true, "adeo": true,
	"eo": true, "usque": true,
}

// DetectPurposeClauses tags purpose and result clauses:
//
//   - ut/ne/neve/uti marking a finite subjunctive head; specialized to a
//     result clause when a correlative appears earlier in the segment
//     (ne/neve stay purpose-only).
//   - ad + gerund, and ad + noun with an agreeing gerundive child.
func DetectPurposeClauses(tokens []sent.Token) []Tag {
	n := len(tokens)
	idx := tree.New(tokens)
	var tags []Tag

	// ut/ne/neve/uti + subjunctive
	for i, tok := range tokens {
		text := strings.ToLower(tok.Text)
		lemma := strings.ToLower(tok.Lemma)
		if !purposeMarkers[text] && !purposeMarkers[lemma] {
			continue
		}

		vi := tok.HeadIndex(n)
		if vi < 0 {
			continue
		}
		if boundary.CrossesStrong(tokens, i, vi) {
			continue
		}

		v := tokens[vi]
		if !predicate.IsFinite(v) || !v.Feats.Has("Mood", "Sub") {
			continue
		}

		tagType := TypePurposeClause
		subtype := "ut_ne"
		trigger := NewTrigger("mark+subj",
			Ref{"marker_index", i},
			Ref{"verb_index", vi})

		if text == "ut" || text == "uti" || lemma == "ut" || lemma == "uti" {
			if corrIdx, ok := correlativeBefore(tokens, i); ok {
				tagType = TypeResultClause
				subtype = "ut_correlative_result"
				trigger = NewTrigger("ut/uti+subj+correlative",
					Ref{"marker_index", i},
					Ref{"verb_index", vi},
					Ref{"correlative_index", corrIdx})
			}
		}

		tags = append(tags, Tag{
			Type:    tagType,
			Subtype: subtype,
			Start:   min(i, vi),
			End:     max(i, vi),
			Highlights: []Span{
				{Start: i, End: i},
				{Start: vi, End: vi},
			},
			Confidence: 0.93,
			Trigger:    trigger,
		})
	}

	// ad + gerund / ad + noun + gerundive
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

		if head.IsVerbal() && IsGerund(tokens, idx, hi) {
			if boundary.CrossesStrong(tokens, i, hi) {
				continue
			}
			tags = append(tags, Tag{
				Type:    TypePurposeClause,
				Subtype: "ad_gerund",
				Start:   min(i, hi),
				End:     max(i, hi),
				Highlights: []Span{
					{Start: i, End: i},
					{Start: hi, End: hi},
				},
				Confidence: 0.92,
				Trigger: NewTrigger("ad+gerund",
					Ref{"ad_index", i},
					Ref{"gerund_index", hi}),
			})
			continue
		}

		if head.IsNounish() {
			gi := nearestAgreeing(tokens, idx.Children(hi), head, hi, func(t sent.Token) bool {
				return predicate.IsFuturePassiveParticipleForm(t)
			})
			if gi < 0 {
				continue
			}
			if boundary.CrossesStrong(tokens, i, gi) {
				continue
			}
			tags = append(tags, Tag{
				Type:    TypePurposeClause,
				Subtype: "ad_noun_gerundive",
				Start:   min(i, gi),
				End:     max(i, gi),
				Highlights: []Span{
					{Start: i, End: i},
					{Start: gi, End: gi},
				},
				Confidence: 0.90,
				Trigger: NewTrigger("ad+noun+gerundive_agree",
					Ref{"ad_index", i},
					Ref{"noun_index", hi},
					Ref{"gerundive_index", gi}),
			})
		}
	}

	return tags
}

// correlativeBefore returns the last result correlative before marker in
// the same segment.
func correlativeBefore(tokens []sent.Token, marker int) (int, bool) {
	segStart, _ := boundary.SegmentBounds(tokens, marker)
	best := -1
	for j := segStart; j < marker; j++ {
		text := strings.ToLower(strings.TrimSpace(tokens[j].Text))
		lemma := strings.ToLower(strings.TrimSpace(tokens[j].Lemma))
		if resultCorrelatives[text] || resultCorrelatives[lemma] {
			best = j
		}
	}
	return best, best >= 0
}

// nearestAgreeing returns the candidate child closest to anchor that
// matches the predicate and agrees with ref in case, number and gender.
func nearestAgreeing(tokens []sent.Token, children []int, ref sent.Token, anchor int, match func(sent.Token) bool) int {
	best := -1
	bestDist := 0
	for _, ci := range children {
		c := tokens[ci]
		if !match(c) {
			continue
		}
		if !sent.AgreeCaseNumberGender(c, ref) {
			continue
		}
		d := abs(ci - anchor)
		if best < 0 || d < bestDist {
			best = ci
			bestDist = d
		}
	}
	return best
}
