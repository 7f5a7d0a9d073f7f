package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cours-de-latin/constructio/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	sent "github.com/cours-de-latin/constructio/sentence"
)

type CorpusStore struct {
	pool *sqlitex.Pool
}

var _ storage.CorpusRepository = (*CorpusStore)(nil)

func NewCorpusStore(pool *sqlitex.Pool) *CorpusStore {
	return &CorpusStore{pool: pool}
}

func (h *CorpusStore) Chapters() ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var chapters []string
	err = sqlitex.Execute(conn,
		"SELECT DISTINCT chapter FROM sentences ORDER BY CAST(chapter AS INTEGER), chapter",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				chapters = append(chapters, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return chapters, nil
}

func (h *CorpusStore) Sentences(chapter string) ([]sent.Sentence, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var sents []sent.Sentence
	err = sqlitex.Execute(conn,
		"SELECT data FROM sentences WHERE chapter = ? ORDER BY rowid",
		&sqlitex.ExecOptions{
			Args: []interface{}{chapter},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var st sent.Sentence
				if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &st); err != nil {
					return err
				}
				sents = append(sents, st)
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	if sents == nil {
		return nil, fmt.Errorf("chapter not found: %s", chapter)
	}
	return sents, nil
}

func (h *CorpusStore) Sentence(sid string) (sent.Sentence, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Sentence{}, err
	}
	defer h.pool.Put(conn)

	var st sent.Sentence
	found := false
	err = sqlitex.Execute(conn,
		"SELECT data FROM sentences WHERE sid = ?",
		&sqlitex.ExecOptions{
			Args: []interface{}{sid},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				return json.Unmarshal([]byte(stmt.ColumnText(0)), &st)
			},
		})
	if err != nil {
		return sent.Sentence{}, err
	}
	if !found {
		return sent.Sentence{}, fmt.Errorf("sentence not found: %s", sid)
	}
	return st, nil
}

func (h *CorpusStore) FindByLemma(lemma string, limit int) ([]sent.Sentence, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	// Fetch the rowids first, then the sentence data in one bulk query.
	var rowIDs []int64
	err = sqlitex.Execute(conn,
		"SELECT sentence_rowid FROM sentence_lemmas WHERE lemma = ? ORDER BY sentence_rowid LIMIT ?",
		&sqlitex.ExecOptions{
			Args: []interface{}{strings.ToLower(lemma), limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rowIDs = append(rowIDs, stmt.ColumnInt64(0))
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	if len(rowIDs) == 0 {
		return nil, nil
	}

	idStrings := make([]string, len(rowIDs))
	for i, id := range rowIDs {
		idStrings[i] = strconv.FormatInt(id, 10)
	}
	query := fmt.Sprintf("SELECT data FROM sentences WHERE rowid IN (%s) ORDER BY rowid",
		strings.Join(idStrings, ","))

	results := make([]sent.Sentence, 0, len(rowIDs))
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var st sent.Sentence
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &st); err != nil {
				return err
			}
			results = append(results, st)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (h *CorpusStore) WriteChapter(chapter string, sentences []sent.Sentence) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	for _, st := range sentences {
		data, marshalErr := json.Marshal(st)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn,
			"INSERT OR REPLACE INTO sentences (sid, chapter, data) VALUES (?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []interface{}{st.Sid, chapter, string(data)},
			})
		if err != nil {
			return fmt.Errorf("failed to insert sentence %s: %w", st.Sid, err)
		}
		sentRowID := conn.LastInsertRowID()

		uniqueLemmas := make(map[string]bool)
		for _, token := range st.Tokens {
			if token.Lemma != "" {
				uniqueLemmas[strings.ToLower(token.Lemma)] = true
			}
		}

		for lemma := range uniqueLemmas {
			err = sqlitex.Execute(conn,
				"INSERT INTO sentence_lemmas (lemma, sentence_rowid) VALUES (?, ?)",
				&sqlitex.ExecOptions{
					Args: []interface{}{lemma, sentRowID},
				})
			if err != nil {
				return fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return nil
}
