// Package sentence holds the token model for dependency-parsed Latin
// sentences, as produced by the upstream UD annotation stage.
package sentence

// Token represents a word of the sentence, with POS, morphology and
// dependency metadata.
type Token struct {
	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// Universal POS category (NOUN, VERB, AUX, SCONJ, PUNCT, ...)
	Upos string `json:"upos"`

	// Morphological features. Missing keys mean unspecified, never an error.
	Feats Feats `json:"feats"`

	// Head is 1-based: 0 means this token is the root, otherwise the
	// head is the token at position Head-1. Heads never point outside
	// the sentence, but upstream parser errors can produce cycles.
	Head int `json:"head"`

	// The dependency relation to the head (root, mark, case, nsubj, ...)
	Deprel string `json:"deprel"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index,omitempty"`
}

// Sentence is one dependency-parsed sentence of the corpus.
type Sentence struct {
	// Sid is the stable sentence identifier, "chapter.index" form.
	Sid string `json:"sid"`

	// The source text of the sentence.
	Text string `json:"text"`

	Tokens []Token `json:"tokens"`
}

// Corpus maps a chapter key ("1", "2", ...) to its sentences.
type Corpus map[string][]Sentence

// Sentences returns all sentences of the corpus. Chapter order is not
// guaranteed; callers that need order iterate sorted chapter keys.
func (c Corpus) Sentences() []Sentence {
	var out []Sentence
	for _, sents := range c {
		out = append(out, sents...)
	}
	return out
}

// BySid returns the sentence with the given sid.
func (c Corpus) BySid(sid string) (Sentence, bool) {
	for _, sents := range c {
		for _, s := range sents {
			if s.Sid == sid {
				return s, true
			}
		}
	}
	return Sentence{}, false
}

// IsPunct reports whether the token is punctuation, either by POS or by
// dependency relation (some pipelines only set one of the two).
func (t Token) IsPunct() bool {
	return t.Upos == "PUNCT" || t.Deprel == "punct"
}

// IsNounish reports whether the token can act as a nominal (noun, proper
// noun or pronoun).
func (t Token) IsNounish() bool {
	return t.Upos == "NOUN" || t.Upos == "PROPN" || t.Upos == "PRON"
}

// IsVerbal reports whether the token is a verb or auxiliary.
func (t Token) IsVerbal() bool {
	return t.Upos == "VERB" || t.Upos == "AUX"
}

// HeadIndex returns the 0-based index of the token's head, or -1 for the
// root or an out-of-range head value.
func (t Token) HeadIndex(n int) int {
	if t.Head <= 0 {
		return -1
	}
	h := t.Head - 1
	if h >= n {
		return -1
	}
	return h
}
