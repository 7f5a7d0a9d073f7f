package construct

import (
	"testing"

	"github.com/cours-de-latin/constructio/tree"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// mkTok keeps test sentences readable. head is 1-based, 0 for root.
func mkTok(text, lemma, upos, deprel string, head int, feats string) sent.Token {
	return sent.Token{Text: text, Lemma: lemma, Upos: upos, Deprel: deprel,
		Head: head, Feats: sent.ParseFeats(feats)}
}

func punct(text string) sent.Token {
	return sent.Token{Text: text, Upos: "PUNCT", Deprel: "punct"}
}

// cum Caesar in Galliam venisset ,
func cumClauseTokens() []sent.Token {
	return []sent.Token{
		mkTok("cum", "cum", "SCONJ", "mark", 5, ""),
		mkTok("Caesar", "Caesar", "PROPN", "nsubj", 5, "Case=Nom|Gender=Masc|Number=Sing"),
		mkTok("in", "in", "ADP", "case", 4, ""),
		mkTok("Galliam", "Gallia", "PROPN", "obl", 5, "Case=Acc|Gender=Fem|Number=Sing"),
		mkTok("venisset", "venio", "VERB", "root", 0, "Mood=Sub|Tense=Pqp|VerbForm=Fin"),
		punct(","),
	}
}

func TestDetectCumClause(t *testing.T) {
	tokens := cumClauseTokens()
	tags := DetectCumClauses(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}

	tag := tags[0]
	if tag.Type != TypeCumClause {
		t.Errorf("type = %q", tag.Type)
	}
	if tag.Start != 0 || tag.End != 4 {
		t.Errorf("span = [%d,%d], want [0,4]", tag.Start, tag.End)
	}
	if ci, _ := tag.Trigger.Get("cum_index"); ci != 0 {
		t.Errorf("cum_index = %d", ci)
	}
	if vi, _ := tag.Trigger.Get("verb_index"); vi != 4 {
		t.Errorf("verb_index = %d", vi)
	}
}

func TestCumIndicativeNoMatch(t *testing.T) {
	tokens := cumClauseTokens()
	tokens[4].Feats = sent.ParseFeats("Mood=Ind|Tense=Past|VerbForm=Fin")
	if tags := DetectCumClauses(tokens); len(tags) != 0 {
		t.Errorf("temporal cum with indicative should not match, got %d tags", len(tags))
	}
}

func TestCumAcrossSegmentNoMatch(t *testing.T) {
	tokens := []sent.Token{
		mkTok("cum", "cum", "SCONJ", "mark", 3, ""),
		punct(";"),
		mkTok("venisset", "venio", "VERB", "root", 0, "Mood=Sub|Tense=Pqp|VerbForm=Fin"),
	}
	if tags := DetectCumClauses(tokens); len(tags) != 0 {
		t.Errorf("marker and verb in different segments, got %d tags", len(tags))
	}
}

func TestDetectAblativeAbsolute(t *testing.T) {
	// urbe capta
	tokens := []sent.Token{
		mkTok("urbe", "urbs", "NOUN", "obl", 2, "Case=Abl|Gender=Fem|Number=Sing"),
		mkTok("capta", "capio", "VERB", "advcl", 0,
			"Aspect=Perf|Case=Abl|Gender=Fem|Number=Sing|VerbForm=Part|Voice=Pass"),
	}
	tags := DetectAblativeAbsolutes(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	tag := tags[0]
	if tag.Type != TypeAblAbs || tag.Start != 0 || tag.End != 1 {
		t.Errorf("tag = %+v", tag)
	}
	if len(tag.Highlights) != 2 {
		t.Errorf("want participle and noun highlighted, got %v", tag.Highlights)
	}
}

func TestAblativeAbsoluteMissingAgreement(t *testing.T) {
	// the noun lacks Gender: never guess agreement
	tokens := []sent.Token{
		mkTok("urbe", "urbs", "NOUN", "obl", 2, "Case=Abl|Number=Sing"),
		mkTok("capta", "capio", "VERB", "advcl", 0,
			"Aspect=Perf|Case=Abl|Gender=Fem|Number=Sing|VerbForm=Part|Voice=Pass"),
	}
	if tags := DetectAblativeAbsolutes(tokens); len(tags) != 0 {
		t.Errorf("missing feature is a non-match, got %d tags", len(tags))
	}
}

func TestDetectIndirectStatement(t *testing.T) {
	// dicit Caesarem venire
	tokens := []sent.Token{
		mkTok("dicit", "dico", "VERB", "root", 0, "Mood=Ind|Tense=Pres|VerbForm=Fin"),
		mkTok("Caesarem", "Caesar", "PROPN", "nsubj", 3, "Case=Acc|Gender=Masc|Number=Sing"),
		mkTok("venire", "venio", "VERB", "xcomp", 1, "VerbForm=Inf|Voice=Act"),
	}
	tags := DetectIndirectStatements(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	tag := tags[0]
	if tag.Confidence != 0.93 {
		t.Errorf("nsubj bonus missing: confidence = %v", tag.Confidence)
	}
	if ai, _ := tag.Trigger.Get("acc_subject_index"); ai != 1 {
		t.Errorf("acc_subject_index = %d", ai)
	}
	if ii, _ := tag.Trigger.Get("inf_index"); ii != 2 {
		t.Errorf("inf_index = %d", ii)
	}
}

func TestIndirectStatementNeedsAccusative(t *testing.T) {
	tokens := []sent.Token{
		mkTok("dicit", "dico", "VERB", "root", 0, "Mood=Ind|Tense=Pres|VerbForm=Fin"),
		mkTok("Caesar", "Caesar", "PROPN", "nsubj", 3, "Case=Nom|Gender=Masc|Number=Sing"),
		mkTok("venire", "venio", "VERB", "xcomp", 1, "VerbForm=Inf|Voice=Act"),
	}
	if tags := DetectIndirectStatements(tokens); len(tags) != 0 {
		t.Errorf("nominative subject must not trigger, got %d tags", len(tags))
	}
}

func TestDetectPurposeClause(t *testing.T) {
	// venit ut videat
	tokens := []sent.Token{
		mkTok("venit", "venio", "VERB", "root", 0, "Mood=Ind|Tense=Pres|VerbForm=Fin"),
		mkTok("ut", "ut", "SCONJ", "mark", 3, ""),
		mkTok("videat", "video", "VERB", "advcl", 1, "Mood=Sub|Tense=Pres|VerbForm=Fin"),
	}
	tags := DetectPurposeClauses(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if tags[0].Type != TypePurposeClause || tags[0].Subtype != "ut_ne" {
		t.Errorf("tag = %+v", tags[0])
	}
}

func TestCorrelativeMakesResultClause(t *testing.T) {
	// ita pugnavit ut hostes fugerent
	tokens := []sent.Token{
		mkTok("ita", "ita", "ADV", "advmod", 2, ""),
		mkTok("pugnavit", "pugno", "VERB", "root", 0, "Mood=Ind|Tense=Past|VerbForm=Fin"),
		mkTok("ut", "ut", "SCONJ", "mark", 5, ""),
		mkTok("hostes", "hostis", "NOUN", "nsubj", 5, "Case=Nom|Gender=Masc|Number=Plur"),
		mkTok("fugerent", "fugio", "VERB", "advcl", 2,
			"Aspect=Imp|Mood=Sub|Tense=Past|VerbForm=Fin"),
	}
	tags := DetectPurposeClauses(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	tag := tags[0]
	if tag.Type != TypeResultClause || tag.Subtype != "ut_correlative_result" {
		t.Errorf("tag = %+v", tag)
	}
	if ci, _ := tag.Trigger.Get("correlative_index"); ci != 0 {
		t.Errorf("correlative_index = %d", ci)
	}
}

func TestNeStaysPurpose(t *testing.T) {
	// a correlative before "ne" must not flip it to a result clause
	tokens := []sent.Token{
		mkTok("ita", "ita", "ADV", "advmod", 2, ""),
		mkTok("monet", "moneo", "VERB", "root", 0, "Mood=Ind|Tense=Pres|VerbForm=Fin"),
		mkTok("ne", "ne", "SCONJ", "mark", 4, ""),
		mkTok("veniant", "venio", "VERB", "advcl", 2, "Mood=Sub|Tense=Pres|VerbForm=Fin"),
	}
	tags := DetectPurposeClauses(tokens)
	if len(tags) != 1 || tags[0].Type != TypePurposeClause {
		t.Fatalf("tags = %+v", tags)
	}
}

func TestDetectSubjunctiveRelative(t *testing.T) {
	// misit qui dicerent
	tokens := []sent.Token{
		mkTok("misit", "mitto", "VERB", "root", 0, "Mood=Ind|Tense=Past|VerbForm=Fin"),
		mkTok("qui", "qui", "PRON", "nsubj", 3, "Case=Nom|Gender=Masc|Number=Plur|PronType=Rel"),
		mkTok("dicerent", "dico", "VERB", "acl:relcl", 1,
			"Aspect=Imp|Mood=Sub|Tense=Past|VerbForm=Fin"),
	}
	tags := DetectSubjunctiveRelatives(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if tags[0].Subtype != "qui_subj" {
		t.Errorf("subtype = %q", tags[0].Subtype)
	}

	// the generic relative detector sees the same pair as subjunctive
	rel := DetectRelativeClauses(tokens)
	if len(rel) != 1 || rel[0].Subtype != "subjunctive" {
		t.Errorf("relative tags = %+v", rel)
	}
}

func TestRelativeClauseIndicative(t *testing.T) {
	tokens := []sent.Token{
		mkTok("vir", "vir", "NOUN", "nsubj", 4, "Case=Nom|Gender=Masc|Number=Sing"),
		mkTok("quem", "qui", "PRON", "obj", 3, "Case=Acc|Gender=Masc|Number=Sing|PronType=Rel"),
		mkTok("vidi", "video", "VERB", "acl:relcl", 1, "Mood=Ind|Tense=Past|VerbForm=Fin"),
		mkTok("venit", "venio", "VERB", "root", 0, "Mood=Ind|Tense=Past|VerbForm=Fin"),
	}
	tags := DetectRelativeClauses(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if tags[0].Subtype != "indicative" || tags[0].Confidence != 0.91 {
		t.Errorf("tag = %+v", tags[0])
	}
	if len(DetectSubjunctiveRelatives(tokens)) != 0 {
		t.Error("indicative clause must not be tagged subjunctive relative")
	}
}

func TestGerundGerundiveExclusive(t *testing.T) {
	// pugnandi (gerund) vs capiendam agreeing with urbem (gerundive)
	tokens := []sent.Token{
		mkTok("cupidus", "cupidus", "ADJ", "root", 0, "Case=Nom|Gender=Masc|Number=Sing"),
		mkTok("pugnandi", "pugno", "VERB", "csubj", 1,
			"Aspect=Prosp|Case=Gen|Gender=Neut|Number=Sing|VerbForm=Part|Voice=Pass"),
		mkTok("urbem", "urbs", "NOUN", "obj", 1, "Case=Acc|Gender=Fem|Number=Sing"),
		mkTok("capiendam", "capio", "VERB", "amod", 3,
			"Aspect=Prosp|Case=Acc|Gender=Fem|Number=Sing|VerbForm=Part|Voice=Pass"),
	}
	idx := tree.New(tokens)

	for _, i := range []int{1, 3} {
		g := IsGerund(tokens, idx, i)
		gv := IsGerundive(tokens, idx, i)
		if g == gv {
			t.Errorf("token %d: gerund=%v gerundive=%v, want exactly one", i, g, gv)
		}
	}
	if !IsGerund(tokens, idx, 1) {
		t.Error("pugnandi is a gerund")
	}
	if !IsGerundive(tokens, idx, 3) {
		t.Error("capiendam agrees with urbem, so it is a gerundive")
	}

	tags := DetectGerunds(tokens)
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(tags))
	}
	if tags[0].Type != TypeGerund || tags[1].Type != TypeGerundive {
		t.Errorf("types = %q, %q", tags[0].Type, tags[1].Type)
	}
}

func TestFlipGerundWithObject(t *testing.T) {
	// urbem capiendi: gerund with a direct object, the flip candidate
	tokens := []sent.Token{
		mkTok("urbem", "urbs", "NOUN", "obj", 2, "Case=Acc|Gender=Fem|Number=Sing"),
		mkTok("capiendi", "capio", "VERB", "root", 0,
			"Aspect=Prosp|Case=Gen|Gender=Neut|Number=Sing|VerbForm=Part|Voice=Pass"),
	}
	tags := DetectGerundGerundiveFlip(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if tags[0].Subtype != "gerund_form_with_object" || tags[0].Confidence != 0.86 {
		t.Errorf("tag = %+v", tags[0])
	}
}

func TestFlipAdNounGerundive(t *testing.T) {
	// ad urbem capiendam
	tokens := []sent.Token{
		mkTok("ad", "ad", "ADP", "case", 2, ""),
		mkTok("urbem", "urbs", "NOUN", "obl", 0, "Case=Acc|Gender=Fem|Number=Sing"),
		mkTok("capiendam", "capio", "VERB", "amod", 2,
			"Aspect=Prosp|Case=Acc|Gender=Fem|Number=Sing|VerbForm=Part|Voice=Pass"),
	}
	tags := DetectGerundGerundiveFlip(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	tag := tags[0]
	if tag.Subtype != "gerundive_form_ad_phrase" || tag.Confidence != 0.84 {
		t.Errorf("tag = %+v", tag)
	}
	if tag.Start != 0 || tag.End != 2 {
		t.Errorf("span = [%d,%d]", tag.Start, tag.End)
	}
}

func TestFlipAdGerundiveNoNoun(t *testing.T) {
	// ad attached directly to a gerundive with no agreeing noun child
	tokens := []sent.Token{
		mkTok("ad", "ad", "ADP", "case", 2, ""),
		mkTok("capiendam", "capio", "VERB", "advcl", 0,
			"Aspect=Prosp|Case=Acc|Gender=Fem|Number=Sing|VerbForm=Part|Voice=Pass"),
	}
	tags := DetectGerundGerundiveFlip(tokens)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if tags[0].Subtype != "gerundive_form_ad_phrase_no_noun" || tags[0].Confidence != 0.72 {
		t.Errorf("tag = %+v", tags[0])
	}
}
