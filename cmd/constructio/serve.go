package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"

	"github.com/cours-de-latin/constructio/construct"
	sent "github.com/cours-de-latin/constructio/sentence"
	"github.com/cours-de-latin/constructio/storage"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve sentences and tags as a JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "corpus", Usage: "corpus path (.json or sqlite db)", Required: true},
			&cli.StringFlag{Name: "tags", Usage: "tags path (.json or sqlite db)", Required: true},
			&cli.StringFlag{Name: "addr", Usage: "listen address", Value: ":8080"},
		},
		Action: func(c *cli.Context) error {
			return serveAction(c.String("corpus"), c.String("tags"), c.String("addr"))
		},
	}
}

type sentenceResponse struct {
	Sentence sent.Sentence   `json:"sentence"`
	Tags     []construct.Tag `json:"tags"`
}

type tagsResponse struct {
	Sid  string          `json:"sid"`
	Tags []construct.Tag `json:"tags"`
}

type typesResponse struct {
	Types  []string       `json:"types"`
	Counts map[string]int `json:"counts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func handleTags(store storage.TagReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		sid := r.URL.Query().Get("sid")
		if sid == "" {
			writeError(w, http.StatusBadRequest, "missing 'sid' query parameter")
			return
		}
		tags, err := store.Tags(sid)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if tags == nil {
			tags = []construct.Tag{}
		}
		writeJSON(w, http.StatusOK, tagsResponse{Sid: sid, Tags: tags})
	}
}

func handleSentence(corpus storage.CorpusReader, store storage.TagReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		sid := r.URL.Query().Get("sid")
		if sid == "" {
			writeError(w, http.StatusBadRequest, "missing 'sid' query parameter")
			return
		}
		s, err := corpus.Sentence(sid)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		tags, err := store.Tags(sid)
		if err != nil {
			tags = nil
		}
		if tags == nil {
			tags = []construct.Tag{}
		}
		writeJSON(w, http.StatusOK, sentenceResponse{Sentence: s, Tags: tags})
	}
}

func handleTypes(store storage.TagReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		all, err := store.All()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		counts := map[string]int{}
		for _, tags := range all {
			for _, tag := range tags {
				counts[tag.Type]++
			}
		}
		writeJSON(w, http.StatusOK, typesResponse{Types: construct.Types(), Counts: counts})
	}
}

func serveAction(corpusPath, tagsPath, addr string) error {
	pool := &Pool{}
	defer pool.Close()

	corpus, err := NewCorpusRepository(pool, corpusPath)
	if err != nil {
		return err
	}
	store, err := NewTagRepository(pool, tagsPath)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", handleTags(store))
	mux.HandleFunc("/api/sentence", handleSentence(corpus, store))
	mux.HandleFunc("/api/types", handleTypes(store))

	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, cors.Default().Handler(mux))
}
