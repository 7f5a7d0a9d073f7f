package construct

import (
	"sort"
	"strings"

	"github.com/cours-de-latin/constructio/boundary"
	"github.com/cours-de-latin/constructio/discourse"
	"github.com/cours-de-latin/constructio/predicate"
	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// ScoreWeights tunes apodosis selection. All values are magnitudes; the
// sign is fixed by the rule (After, Root and Verb add, the rest subtract).
type ScoreWeights struct {
	// After rewards candidates at or past the last protasis end. Both
	// the reward and the Before penalty decay with token distance.
	After  int
	Before int

	// Root rewards the sentence root, Verb rewards VERB over AUX.
	Root int
	Verb int

	// GoverningVerb penalizes finite speech verbs, which usually govern
	// indirect discourse rather than carry the apodosis.
	GoverningVerb int

	// RelativeClause makes relative-clause verbs a last resort.
	RelativeClause int
}

// DefaultScoreWeights are the weights the tagger ships with.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		After:          6,
		Before:         2,
		Root:           8,
		Verb:           2,
		GoverningVerb:  8,
		RelativeClause: 50,
	}
}

// protasis is one collected si-clause, pending apodosis resolution.
type protasis struct {
	siIdx    int
	verbIdx  int
	segStart int
	segEnd   int

	// nodes is the comma-bounded text span of the clause, as a set.
	nodes map[int]bool
}

// segGroup tracks all protases sharing one strong-punct segment, so a
// multi-protasis sentence resolves to a single apodosis past them all.
type segGroup struct {
	blocked map[int]bool
	lastEnd int
}

// DetectConditionals finds si-conditionals, pairs each protasis with an
// apodosis in the same segment, infers discourse and classifies the pair
// (future_more_vivid, past_contrafactual, ...). Each resolved pair
// yields a conditional_protasis tag and, when an apodosis was found, a
// conditional_apodosis tag carrying the same metadata.
func DetectConditionals(tokens []sent.Token) []Tag {
	return DetectConditionalsScored(tokens, DefaultScoreWeights())
}

// DetectConditionalsScored is DetectConditionals with explicit apodosis
// selection weights.
func DetectConditionalsScored(tokens []sent.Token, w ScoreWeights) []Tag {
	n := len(tokens)
	idx := tree.New(tokens)

	// pass 1: collect protases and group them by segment
	var prots []protasis
	groups := map[[2]int]*segGroup{}

	for i, tok := range tokens {
		if strings.ToLower(tok.Text) != "si" && strings.ToLower(tok.Lemma) != "si" {
			continue
		}
		if tok.Deprel != "mark" {
			continue
		}
		pvIdx := tok.HeadIndex(n)
		if pvIdx < 0 {
			continue
		}
		if boundary.CrossesStrong(tokens, i, pvIdx) {
			continue
		}
		if !tokens[pvIdx].IsVerbal() {
			continue
		}

		segStart, segEnd := boundary.SegmentBounds(tokens, pvIdx)
		left, right := boundary.CommaClauseBounds(tokens, pvIdx, segStart, segEnd, true)
		// displaced "si" still belongs to its clause
		left = min(left, i)

		nodes := make(map[int]bool, right-left+1)
		for j := left; j <= right; j++ {
			nodes[j] = true
		}

		prots = append(prots, protasis{
			siIdx:    i,
			verbIdx:  pvIdx,
			segStart: segStart,
			segEnd:   segEnd,
			nodes:    nodes,
		})

		key := [2]int{segStart, segEnd}
		g := groups[key]
		if g == nil {
			g = &segGroup{blocked: map[int]bool{}, lastEnd: -1}
			groups[key] = g
		}
		for j := range nodes {
			g.blocked[j] = true
		}
		g.lastEnd = max(g.lastEnd, right)
	}

	// pass 2: resolve apodosis, infer discourse, classify and emit
	var tags []Tag
	for _, p := range prots {
		g := groups[[2]int{p.segStart, p.segEnd}]
		blocked := make(map[int]bool, len(g.blocked))
		for j := range g.blocked {
			if !p.nodes[j] {
				blocked[j] = true
			}
		}
		preferAfter := max(p.verbIdx, g.lastEnd)

		apIdx := pickApodosis(tokens, idx, w, p, blocked, nil, preferAfter)
		disc := discourse.Infer(tokens, idx, p.verbIdx, apIdx, p.segStart, p.segEnd)

		// the governing verb of indirect discourse cannot also be the
		// apodosis; reselect around it
		if disc.HeadVerbIndex >= 0 && apIdx == disc.HeadVerbIndex {
			forbidden := map[int]bool{disc.HeadVerbIndex: true}
			if alt := pickApodosis(tokens, idx, w, p, blocked, forbidden, preferAfter); alt >= 0 {
				apIdx = alt
				disc = discourse.Infer(tokens, idx, p.verbIdx, apIdx, p.segStart, p.segEnd)
			}
		}

		label := classifyConditional(tokens, idx, p.verbIdx, apIdx, disc)
		meta := buildConditional(tokens, idx, label, p.verbIdx, apIdx, disc)

		protStart := p.verbIdx
		protEnd := p.verbIdx
		for j := range p.nodes {
			protStart = min(protStart, j)
			protEnd = max(protEnd, j)
		}
		protStart = max(p.segStart, min(protStart, p.siIdx))
		protEnd = min(p.segEnd, protEnd)

		tags = append(tags, Tag{
			Type:       TypeConditionalProtasis,
			Subtype:    label,
			Start:      protStart,
			End:        protEnd,
			Highlights: []Span{{Start: protStart, End: protEnd}},
			Confidence: 0.83,
			Trigger: NewTrigger("si+head",
				Ref{"si_index", p.siIdx},
				Ref{"protasis_verb_index", p.verbIdx},
				Ref{"apodosis_verb_index", apIdx}),
			Conditional: meta,
		})

		if apIdx < 0 {
			continue
		}

		apStart, apEnd := boundary.CommaClauseBounds(tokens, apIdx, p.segStart, p.segEnd, true)
		if apEnd-apStart < 1 {
			// degenerate comma span: fall back to the apodosis subtree
			// clamped to the same bounds
			first, last := -1, -1
			for j := apStart; j <= apEnd; j++ {
				if idx.InSubtree(apIdx, j) {
					if first < 0 {
						first = j
					}
					last = j
				}
			}
			if first >= 0 {
				apStart, apEnd = first, last
			}
		}

		tags = append(tags, Tag{
			Type:       TypeConditionalApodosis,
			Subtype:    label,
			Start:      apStart,
			End:        apEnd,
			Highlights: []Span{{Start: apStart, End: apEnd}},
			Confidence: 0.80,
			Trigger: NewTrigger("main-clause-bound-by-commas",
				Ref{"si_index", p.siIdx},
				Ref{"protasis_verb_index", p.verbIdx},
				Ref{"apodosis_verb_index", apIdx}),
			Conditional: meta,
		})
	}

	return tags
}

// relativeLikeVerb reports whether the verb at j heads a relative clause,
// either by deprel or by carrying a relative pronoun dependent.
func relativeLikeVerb(tokens []sent.Token, idx *tree.Index, j int) bool {
	if strings.Contains(tokens[j].Deprel, "relcl") {
		return true
	}
	for _, ci := range idx.Children(j) {
		ct := tokens[ci]
		if (ct.Upos == "PRON" || ct.Upos == "DET") && ct.Feats.Has("PronType", "Rel") {
			return true
		}
	}
	return false
}

// pickApodosis chooses the apodosis verb for p within its segment, or -1.
// Selection is proximity-driven: finiteness does not beat distance, but
// candidates after the last protasis beat candidates before it.
func pickApodosis(tokens []sent.Token, idx *tree.Index, w ScoreWeights, p protasis, blocked, forbidden map[int]bool, preferAfter int) int {
	type cand struct {
		score int
		idx   int
	}
	var after, before []cand

	for j := p.segStart; j <= p.segEnd; j++ {
		if p.nodes[j] || blocked[j] || forbidden[j] {
			continue
		}
		tj := tokens[j]
		if !tj.IsVerbal() {
			continue
		}
		if !predicate.IsFinite(tj) && !predicate.IsInfinitive(tj) {
			continue
		}

		s := 0
		if j >= preferAfter {
			s += w.After - (j - preferAfter)
		} else {
			s -= w.Before + (preferAfter - j)
		}
		if tj.Deprel == "root" {
			s += w.Root
		}
		if tj.Upos == "VERB" {
			s += w.Verb
		}
		if discourse.IsGoverningVerb(tj) {
			s -= w.GoverningVerb
		}
		if relativeLikeVerb(tokens, idx, j) {
			s -= w.RelativeClause
		}

		c := cand{score: s, idx: j}
		if j >= preferAfter {
			after = append(after, c)
		} else {
			before = append(before, c)
		}
	}

	best := func(cs []cand) int {
		sort.Slice(cs, func(a, b int) bool {
			if cs[a].score != cs[b].score {
				return cs[a].score > cs[b].score
			}
			return cs[a].idx > cs[b].idx
		})
		return cs[0].idx
	}
	if len(after) > 0 {
		return best(after)
	}
	if len(before) > 0 {
		return best(before)
	}
	return -1
}

// classifyConditional labels a (protasis, apodosis) pair. Labels stay
// stable across discourse; indirect discourse anchors on the protasis
// form so infinitival apodoses do not drag everything into "mixed".
func classifyConditional(tokens []sent.Token, idx *tree.Index, pvIdx, apIdx int, disc discourse.Info) string {
	if pvIdx < 0 || pvIdx >= len(tokens) {
		return "unknown"
	}
	ps := predicate.Sig(tokens, idx, pvIdx)

	if apIdx < 0 || apIdx >= len(tokens) {
		switch {
		case ps.Mood == "Sub" && ps.Tense == "Pres":
			return "future_less_vivid"
		case ps.ImperfectSubjunctive():
			return "present_contrafactual"
		case ps.PluperfectLike():
			return "past_contrafactual"
		case ps.Mood == "Ind" && ps.Tense == "Fut":
			return "future_more_vivid"
		case ps.Mood == "Ind" && ps.Tense == "Pres":
			return "present_simple"
		case ps.Mood == "Ind" && ps.Tense == "Past":
			return "past_simple"
		}
		return "mixed"
	}

	av := tokens[apIdx]
	if predicate.IsInfinitive(av) {
		infTime := predicate.InfinitiveTime(tokens, idx, apIdx)

		if disc.Indirect() {
			switch {
			case ps.Mood == "Sub" && ps.Tense == "Pres":
				return "future_less_vivid"
			case ps.ImperfectSubjunctive():
				return "present_contrafactual"
			case ps.PluperfectLike():
				return "past_contrafactual"
			case ps.Mood == "Ind" && ps.Tense == "Fut" && infTime == "Fut":
				return "future_more_vivid"
			case ps.Mood == "Ind" && ps.Tense == "Pres" && infTime == "Pres":
				return "present_simple"
			case ps.Mood == "Ind" && ps.Tense == "Past" && (infTime == "Past" || infTime == "Pres"):
				return "past_simple"
			}
			if ps.Mood == "Sub" {
				return "future_less_vivid"
			}
			return "mixed"
		}

		switch {
		case ps.Mood == "Sub" && ps.Tense == "Pres":
			return "future_less_vivid"
		case ps.ImperfectSubjunctive():
			return "present_contrafactual"
		case ps.PluperfectLike():
			return "past_contrafactual"
		}
		return "mixed"
	}

	as := predicate.Sig(tokens, idx, apIdx)

	if !disc.Indirect() {
		if ps.Mood == "Ind" && as.Mood == "Ind" {
			switch {
			case ps.Tense == "Fut" && as.Tense == "Fut":
				return "future_more_vivid"
			case ps.Tense == "Pres" && as.Tense == "Pres":
				return "present_simple"
			case ps.Tense == "Past" && as.Tense == "Past":
				return "past_simple"
			}
			return "mixed_indicative"
		}
		if ps.Mood == "Sub" && as.Mood == "Sub" {
			switch {
			case ps.Tense == "Pres" && as.Tense == "Pres":
				return "future_less_vivid"
			case ps.ImperfectSubjunctive() && as.ImperfectSubjunctive():
				return "present_contrafactual"
			case ps.PluperfectLike() && as.PluperfectLike():
				return "past_contrafactual"
			}
			return "mixed_subjunctive"
		}
		return "mixed"
	}

	if ps.Mood == "Sub" {
		switch {
		case ps.Tense == "Pres" && as.Tense == "Pres" && as.Mood == "Sub":
			return "future_less_vivid"
		case ps.ImperfectSubjunctive():
			return "present_contrafactual"
		case ps.PluperfectLike():
			return "past_contrafactual"
		}
		return "mixed_subjunctive"
	}
	if ps.Mood == "Ind" {
		switch {
		case ps.Tense == "Fut" && as.Tense == "Fut" && as.Mood == "Ind":
			return "future_more_vivid"
		case ps.Tense == "Pres" && as.Tense == "Pres" && as.Mood == "Ind":
			return "present_simple"
		case ps.Tense == "Past" && as.Tense == "Past" && as.Mood == "Ind":
			return "past_simple"
		}
	}
	return "mixed"
}

func buildConditional(tokens []sent.Token, idx *tree.Index, label string, pvIdx, apIdx int, disc discourse.Info) *Conditional {
	ps := predicate.Sig(tokens, idx, pvIdx)
	c := &Conditional{
		Label:         label,
		Discourse:     disc.Discourse,
		Sequence:      disc.Sequence,
		Statement:     disc.Statement,
		HeadVerbIndex: disc.HeadVerbIndex,
		HeadVerbTense: disc.HeadVerbTense,
		Protasis: PredInfo{
			VerbIndex: pvIdx,
			Mood:      ps.Mood,
			Tense:     ps.Tense,
			Aspect:    ps.Aspect,
			VerbForm:  ps.VerbForm,
			Compound:  ps.Compound,
		},
		Apodosis: PredInfo{VerbIndex: -1},
	}
	if apIdx < 0 {
		return c
	}

	as := predicate.Sig(tokens, idx, apIdx)
	ap := PredInfo{
		VerbIndex: apIdx,
		Mood:      as.Mood,
		Tense:     as.Tense,
		Aspect:    as.Aspect,
		VerbForm:  as.VerbForm,
		Compound:  as.Compound,
	}
	av := tokens[apIdx]
	switch {
	case predicate.IsInfinitive(av):
		ap.Form = "infinitive"
		ap.InfTime = predicate.InfinitiveTime(tokens, idx, apIdx)
	case predicate.IsFinite(av):
		ap.Form = "finite"
	}
	c.Apodosis = ap
	return c
}
