package filesystem

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cours-de-latin/constructio/construct"
	"github.com/cours-de-latin/constructio/storage"
)

// TagStore reads and writes the constructions JSON file. On read the
// older "tags_by_sid" key is accepted next to "by_sentence"; writes
// always use "by_sentence".
type TagStore struct {
	path string
}

var _ storage.TagRepository = (*TagStore)(nil)

func NewTagStore(path string) *TagStore {
	return &TagStore{path: path}
}

type tagFile struct {
	Meta       storage.Meta               `json:"meta"`
	BySentence map[string][]construct.Tag `json:"by_sentence,omitempty"`
	TagsBySid  map[string][]construct.Tag `json:"tags_by_sid,omitempty"`
}

func (s *TagStore) read() (tagFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return tagFile{}, fmt.Errorf("IO error: %w", err)
	}

	var f tagFile
	if err := json.Unmarshal(data, &f); err != nil {
		return tagFile{}, fmt.Errorf("JSON decoding error: %w", err)
	}
	if f.BySentence == nil && f.TagsBySid == nil {
		return tagFile{}, fmt.Errorf("%s: no constructions mapping (by_sentence or tags_by_sid)", s.path)
	}
	return f, nil
}

func (f tagFile) bySid() map[string][]construct.Tag {
	if f.BySentence != nil {
		return f.BySentence
	}
	return f.TagsBySid
}

func (s *TagStore) Meta() (storage.Meta, error) {
	f, err := s.read()
	if err != nil {
		return storage.Meta{}, err
	}
	return f.Meta, nil
}

func (s *TagStore) Tags(sid string) ([]construct.Tag, error) {
	f, err := s.read()
	if err != nil {
		return nil, err
	}
	return f.bySid()[sid], nil
}

func (s *TagStore) All() (map[string][]construct.Tag, error) {
	f, err := s.read()
	if err != nil {
		return nil, err
	}
	return f.bySid(), nil
}

func (s *TagStore) Write(meta storage.Meta, bySid map[string][]construct.Tag) error {
	f := tagFile{Meta: meta, BySentence: bySid}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	return nil
}
