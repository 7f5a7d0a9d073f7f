package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cours-de-latin/constructio/construct"
	"github.com/cours-de-latin/constructio/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type TagStore struct {
	pool *sqlitex.Pool
}

var _ storage.TagRepository = (*TagStore)(nil)

func NewTagStore(pool *sqlitex.Pool) *TagStore {
	return &TagStore{pool: pool}
}

func (h *TagStore) Meta() (storage.Meta, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return storage.Meta{}, err
	}
	defer h.pool.Put(conn)

	var meta storage.Meta
	found := false
	err = sqlitex.Execute(conn, "SELECT source, tags FROM meta WHERE id = 1",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				meta.Source = stmt.ColumnText(0)
				if tags := stmt.ColumnText(1); tags != "" {
					meta.Tags = strings.Split(tags, ",")
				}
				return nil
			},
		})
	if err != nil {
		return storage.Meta{}, err
	}
	if !found {
		return storage.Meta{}, fmt.Errorf("no tagging run stored")
	}
	return meta, nil
}

func (h *TagStore) Tags(sid string) ([]construct.Tag, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var tags []construct.Tag
	err = sqlitex.Execute(conn, "SELECT data FROM tags WHERE sid = ?",
		&sqlitex.ExecOptions{
			Args: []interface{}{sid},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				return json.Unmarshal([]byte(stmt.ColumnText(0)), &tags)
			},
		})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (h *TagStore) All() (map[string][]construct.Tag, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	out := make(map[string][]construct.Tag)
	err = sqlitex.Execute(conn, "SELECT sid, data FROM tags",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var tags []construct.Tag
				if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &tags); err != nil {
					return err
				}
				out[stmt.ColumnText(0)] = tags
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Write replaces any previously stored tagging run.
func (h *TagStore) Write(meta storage.Meta, bySid map[string][]construct.Tag) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn,
		"INSERT OR REPLACE INTO meta (id, source, tags) VALUES (1, ?, ?)",
		&sqlitex.ExecOptions{
			Args: []interface{}{meta.Source, strings.Join(meta.Tags, ",")},
		})
	if err != nil {
		return fmt.Errorf("failed to write meta: %w", err)
	}

	if err = sqlitex.Execute(conn, "DELETE FROM tags", nil); err != nil {
		return err
	}

	for sid, tags := range bySid {
		data, marshalErr := json.Marshal(tags)
		if marshalErr != nil {
			return marshalErr
		}
		err = sqlitex.Execute(conn,
			"INSERT INTO tags (sid, data) VALUES (?, ?)",
			&sqlitex.ExecOptions{
				Args: []interface{}{sid, string(data)},
			})
		if err != nil {
			return fmt.Errorf("failed to insert tags for %s: %w", sid, err)
		}
	}

	return nil
}
