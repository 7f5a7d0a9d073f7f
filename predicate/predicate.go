// Package predicate normalizes a verb's effective mood/tense/aspect.
//
// A two-word periphrastic predicate ("factus est", "sint erepturi")
// otherwise reports the bare tense of the copula, which is wrong for
// classification: "factus est" is perfect, not present. Signature
// collapses auxiliary + participle into one logical predicate.
package predicate

import (
	"strings"

	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// Compound kinds.
const (
	FutureActivePeriphrastic   = "future_active_periphrastic"
	PerfectPassivePeriphrastic = "perfect_passive_periphrastic"
)

// Compound records the two halves of a periphrastic predicate.
type Compound struct {
	Kind      string `json:"kind"`
	AuxIndex  int    `json:"aux_index"`
	PartIndex int    `json:"part_index"`
}

// Signature is the normalized shape of a predicate. Empty fields mean
// unspecified.
type Signature struct {
	Mood     string    `json:"mood,omitempty"`
	Tense    string    `json:"tense,omitempty"`
	Aspect   string    `json:"aspect,omitempty"`
	VerbForm string    `json:"verbForm,omitempty"`
	Compound *Compound `json:"compound,omitempty"`
}

// IsFinite reports whether the token is a finite verb. Trees in this
// corpus often omit VerbForm=Fin, so an unspecified VerbForm on a
// VERB/AUX counts as finite.
func IsFinite(t sent.Token) bool {
	if !t.IsVerbal() {
		return false
	}
	vf, ok := t.Feats.Get("VerbForm")
	return !ok || vf == "Fin"
}

// IsInfinitive reports whether the token carries VerbForm=Inf.
func IsInfinitive(t sent.Token) bool {
	return t.Feats.Has("VerbForm", "Inf")
}

// IsFuturePassiveParticipleForm reports the morphology shared by gerunds
// and gerundives: a VERB/AUX participle, passive, prospective aspect.
func IsFuturePassiveParticipleForm(t sent.Token) bool {
	if !t.IsVerbal() {
		return false
	}
	return t.Feats.Has("VerbForm", "Part") && t.Feats.Has("Voice", "Pass") && t.Feats.Has("Aspect", "Prosp")
}

// LooksLikeFutureParticiple matches the -urus surface pattern of the
// future active participle, for trees that omit Aspect=Prosp.
func LooksLikeFutureParticiple(form string) bool {
	f := strings.ToLower(form)
	for _, suffix := range []string{"urus", "ura", "urum", "uros", "uras"} {
		if strings.HasSuffix(f, suffix) {
			return true
		}
	}
	return false
}

func isCopula(t sent.Token) bool {
	lemma := strings.ToLower(t.Lemma)
	return (lemma == "sum" || lemma == "esse") && t.IsVerbal()
}

// Sig resolves the effective signature of the predicate at vi.
func Sig(tokens []sent.Token, idx *tree.Index, vi int) Signature {
	if vi < 0 || vi >= len(tokens) {
		return Signature{}
	}

	tok := tokens[vi]
	sig := Signature{
		Mood:     tok.Feats["Mood"],
		Tense:    tok.Feats["Tense"],
		Aspect:   tok.Feats["Aspect"],
		VerbForm: tok.Feats["VerbForm"],
	}

	if !isCopula(tok) {
		return sig
	}

	// Prefer a participle directly attached to the copula.
	partIdx := -1
	for _, ci := range idx.Children(vi) {
		if tokens[ci].Feats.Has("VerbForm", "Part") {
			partIdx = ci
			break
		}
	}
	if partIdx < 0 {
		return sig
	}

	part := tokens[partIdx]
	voice := part.Feats["Voice"]
	aspect := part.Feats["Aspect"]

	// sum + future active participle (-urus)
	if voice == "Act" && (aspect == "Prosp" || LooksLikeFutureParticiple(part.Text)) {
		sig.Tense = "Fut"
		sig.Aspect = "Prosp"
		sig.Compound = &Compound{Kind: FutureActivePeriphrastic, AuxIndex: vi, PartIndex: partIdx}
		return sig
	}

	// sum + perfect passive participle
	if voice == "Pass" && aspect == "Perf" {
		switch sig.Tense {
		case "Pres":
			sig.Tense = "Past" // perfect passive
		case "Past":
			sig.Tense = "Pqp" // pluperfect passive
		}
		sig.Aspect = "Perf"
		sig.Compound = &Compound{Kind: PerfectPassivePeriphrastic, AuxIndex: vi, PartIndex: partIdx}
	}

	return sig
}

// ImperfectSubjunctive reports the UD encoding of the Latin imperfect
// subjunctive (Mood=Sub, Tense=Past, Aspect=Imp).
func (s Signature) ImperfectSubjunctive() bool {
	return s.Mood == "Sub" && s.Tense == "Past" && s.Aspect == "Imp"
}

// PluperfectLike accepts both encodings of the pluperfect: an explicit
// Tense=Pqp or the collapsed Past/Perf combination.
func (s Signature) PluperfectLike() bool {
	return s.Mood == "Sub" && (s.Tense == "Pqp" || s.Aspect == "Perf")
}

// InfinitiveTime infers the time reference of an infinitive predicate for
// indirect discourse: Past, Fut or Pres. It understands "fore", perfect
// -isse forms, and participle+esse periphrases found anywhere in the
// infinitive's subtree.
func InfinitiveTime(tokens []sent.Token, idx *tree.Index, infIdx int) string {
	if infIdx < 0 || infIdx >= len(tokens) {
		return ""
	}

	tok := tokens[infIdx]
	text := strings.ToLower(tok.Text)
	tense := tok.Feats["Tense"]
	aspect := tok.Feats["Aspect"]

	if tense == "Past" || tense == "Pqp" || aspect == "Perf" {
		return "Past"
	}
	if tense == "Fut" || aspect == "Prosp" {
		return "Fut"
	}
	if text == "fore" {
		return "Fut"
	}

	if strings.ToLower(tok.Lemma) == "sum" {
		sawFuture := false
		sawPast := false
		for j := range tokens {
			if j == infIdx || !idx.InSubtree(infIdx, j) {
				continue
			}
			tj := tokens[j]
			form := strings.ToLower(tj.Text)
			if tj.Feats.Has("VerbForm", "Part") {
				if LooksLikeFutureParticiple(form) || tj.Feats.Has("Aspect", "Prosp") {
					sawFuture = true
				}
				if tj.Feats.Has("Voice", "Pass") && tj.Feats.Has("Aspect", "Perf") {
					sawPast = true
				}
			}
			if form == "fore" {
				sawFuture = true
			}
		}
		if sawFuture {
			return "Fut"
		}
		if sawPast {
			return "Past"
		}
	}

	return "Pres"
}
