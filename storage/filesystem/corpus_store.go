// Package filesystem stores the corpus and its construction tags as the
// JSON files the annotation pipeline produces.
package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cours-de-latin/constructio/storage"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// CorpusStore reads a UD corpus JSON file into memory. Two shapes are
// accepted: the wrapped {"meta":…,"chapters":{…}} form and the older
// flat {"1":[…],"2":[…]} form.
type CorpusStore struct {
	path string

	// In-memory cache
	corpus sent.Corpus
}

var _ storage.CorpusRepository = (*CorpusStore)(nil)

// NewCorpusStore loads the corpus file at path.
func NewCorpusStore(path string) (*CorpusStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	corpus, err := ParseCorpus(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &CorpusStore{path: path, corpus: corpus}, nil
}

// ParseCorpus decodes either accepted UD JSON shape.
func ParseCorpus(data []byte) (sent.Corpus, error) {
	var wrapped struct {
		Chapters sent.Corpus `json:"chapters"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Chapters != nil {
		return wrapped.Chapters, nil
	}

	var flat sent.Corpus
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}
	return flat, nil
}

func (s *CorpusStore) Chapters() ([]string, error) {
	keys := make([]string, 0, len(s.corpus))
	for k := range s.corpus {
		keys = append(keys, k)
	}
	sortChapters(keys)
	return keys, nil
}

func (s *CorpusStore) Sentences(chapter string) ([]sent.Sentence, error) {
	sents, ok := s.corpus[chapter]
	if !ok {
		return nil, fmt.Errorf("chapter not found: %s", chapter)
	}
	return sents, nil
}

func (s *CorpusStore) Sentence(sid string) (sent.Sentence, error) {
	if st, ok := s.corpus.BySid(sid); ok {
		return st, nil
	}
	return sent.Sentence{}, fmt.Errorf("sentence not found: %s", sid)
}

func (s *CorpusStore) FindByLemma(lemma string, limit int) ([]sent.Sentence, error) {
	lemma = strings.ToLower(lemma)

	chapters, _ := s.Chapters()
	var results []sent.Sentence
	for _, ch := range chapters {
		for _, st := range s.corpus[ch] {
			if limit > 0 && len(results) >= limit {
				return results, nil
			}
			for _, tok := range st.Tokens {
				if strings.ToLower(tok.Lemma) == lemma {
					results = append(results, st)
					break
				}
			}
		}
	}
	return results, nil
}

func (s *CorpusStore) WriteChapter(chapter string, sentences []sent.Sentence) error {
	return fmt.Errorf("read-only storage")
}

// sortChapters orders chapter keys numerically, falling back to string
// order for non-numeric keys.
func sortChapters(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		if aerr == nil {
			return true
		}
		if berr == nil {
			return false
		}
		return keys[i] < keys[j]
	})
}
