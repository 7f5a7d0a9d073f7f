package construct

import (
	sent "github.com/cours-de-latin/constructio/sentence"
)

// Tagger runs every detector over sentences and collects the results.
// The zero value is not usable; call NewTagger.
type Tagger struct {
	weights ScoreWeights

	diag Diagnostics
}

// Diagnostics counts what a tagging run saw. Counters are cumulative
// across Tag calls on the same Tagger.
type Diagnostics struct {
	Sentences       int            `json:"sentences"`
	TaggedSentences int            `json:"tagged_sentences"`
	Tags            int            `json:"tags"`
	CyclicHeads     int            `json:"cyclic_heads,omitempty"`
	ByType          map[string]int `json:"by_type,omitempty"`
}

// Merge folds another run's counters into d. Used to combine the
// diagnostics of parallel workers, each with its own Tagger.
func (d *Diagnostics) Merge(o Diagnostics) {
	d.Sentences += o.Sentences
	d.TaggedSentences += o.TaggedSentences
	d.Tags += o.Tags
	d.CyclicHeads += o.CyclicHeads
	if d.ByType == nil {
		d.ByType = map[string]int{}
	}
	for k, v := range o.ByType {
		d.ByType[k] += v
	}
}

// Option configures a Tagger.
type Option func(*Tagger)

// WithScoreWeights overrides the apodosis selection weights.
func WithScoreWeights(w ScoreWeights) Option {
	return func(t *Tagger) { t.weights = w }
}

// NewTagger builds a tagger with default weights.
func NewTagger(opts ...Option) *Tagger {
	t := &Tagger{
		weights: DefaultScoreWeights(),
		diag:    Diagnostics{ByType: map[string]int{}},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TagSentence runs every detector over one token list, in a fixed order,
// and deduplicates the result. It never mutates tokens.
func (t *Tagger) TagSentence(tokens []sent.Token) []Tag {
	t.diag.Sentences++
	if hasCyclicHeads(tokens) {
		t.diag.CyclicHeads++
	}

	var tags []Tag
	tags = append(tags, DetectCumClauses(tokens)...)
	tags = append(tags, DetectAblativeAbsolutes(tokens)...)
	tags = append(tags, DetectIndirectStatements(tokens)...)
	tags = append(tags, DetectPurposeClauses(tokens)...)
	tags = append(tags, DetectSubjunctiveRelatives(tokens)...)
	tags = append(tags, DetectRelativeClauses(tokens)...)
	tags = append(tags, DetectGerunds(tokens)...)
	tags = append(tags, DetectGerundGerundiveFlip(tokens)...)
	tags = append(tags, DetectConditionalsScored(tokens, t.weights)...)

	tags = Dedup(tags)

	if len(tags) > 0 {
		t.diag.TaggedSentences++
		t.diag.Tags += len(tags)
		for _, tg := range tags {
			t.diag.ByType[tg.Type]++
		}
	}
	return tags
}

// TagCorpus tags every sentence and returns the results keyed by sid.
// Sentences without any tag are omitted.
func (t *Tagger) TagCorpus(sentences []sent.Sentence) map[string][]Tag {
	out := make(map[string][]Tag)
	for _, s := range sentences {
		if tags := t.TagSentence(s.Tokens); len(tags) > 0 {
			out[s.Sid] = tags
		}
	}
	return out
}

// Diagnostics returns a snapshot of the run counters.
func (t *Tagger) Diagnostics() Diagnostics {
	d := t.diag
	d.ByType = make(map[string]int, len(t.diag.ByType))
	for k, v := range t.diag.ByType {
		d.ByType[k] = v
	}
	return d
}

// hasCyclicHeads reports whether following head links from any token
// revisits a token before reaching the root.
func hasCyclicHeads(tokens []sent.Token) bool {
	n := len(tokens)
	for i := range tokens {
		seen := map[int]bool{i: true}
		cur := i
		for {
			next := tokens[cur].HeadIndex(n)
			if next < 0 {
				break
			}
			if seen[next] {
				return true
			}
			seen[next] = true
			cur = next
		}
	}
	return false
}
