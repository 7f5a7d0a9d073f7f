package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cours-de-latin/constructio/storage"
	"github.com/cours-de-latin/constructio/storage/filesystem"
	"github.com/cours-de-latin/constructio/storage/sqlite/zombiezen"
)

// isJSON decides the backend for a path: .json files are read through
// the filesystem stores, everything else is treated as a sqlite
// database.
func isJSON(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

func NewCorpusRepository(p *Pool, path string) (storage.CorpusRepository, error) {
	if isJSON(path) {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("corpus not found: %s", path)
		}
		return filesystem.NewCorpusStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewCorpusStore(pool), nil
}

func NewTagRepository(p *Pool, path string) (storage.TagRepository, error) {
	if isJSON(path) {
		return filesystem.NewTagStore(path), nil
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	if err := zombiezen.CreateSchemas(pool, "tags.sql"); err != nil {
		return nil, err
	}
	return zombiezen.NewTagStore(pool), nil
}
