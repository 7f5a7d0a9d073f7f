// Package storage defines the repository interfaces for the parsed
// corpus and the construction tag sets produced from it.
package storage

import (
	"github.com/cours-de-latin/constructio/construct"

	sent "github.com/cours-de-latin/constructio/sentence"
)

// Meta describes one constructions output: where the corpus came from
// and which tag types the tagger can emit.
type Meta struct {
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}

// CorpusReader defines read operations for sentence storage.
type CorpusReader interface {
	// Chapters returns the chapter keys, sorted numerically where
	// possible.
	Chapters() ([]string, error)

	// Sentences returns the sentences of one chapter, in corpus order.
	Sentences(chapter string) ([]sent.Sentence, error)

	// Sentence returns a single sentence by sid ("chapter.index").
	Sentence(sid string) (sent.Sentence, error)

	// FindByLemma returns up to limit sentences containing the lemma.
	FindByLemma(lemma string, limit int) ([]sent.Sentence, error)
}

// CorpusWriter defines write operations for sentence storage.
type CorpusWriter interface {
	// WriteChapter persists one chapter's sentences and their lemma
	// index.
	WriteChapter(chapter string, sentences []sent.Sentence) error
}

// CorpusRepository combines read and write operations.
type CorpusRepository interface {
	CorpusReader
	CorpusWriter
}

// TagReader defines read operations for construction tag storage.
type TagReader interface {
	// Meta returns the stored run metadata.
	Meta() (Meta, error)

	// Tags returns the tags of one sentence. A sentence without tags
	// yields an empty slice, not an error.
	Tags(sid string) ([]construct.Tag, error)

	// All returns every stored tag set keyed by sid.
	All() (map[string][]construct.Tag, error)
}

// TagWriter defines write operations for construction tag storage.
type TagWriter interface {
	// Write persists a full tagging run. Sentences without tags are
	// absent from bySid.
	Write(meta Meta, bySid map[string][]construct.Tag) error
}

// TagRepository combines read and write operations.
type TagRepository interface {
	TagReader
	TagWriter
}
