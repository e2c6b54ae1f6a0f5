package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// timeKey marks an encoded time.Time inside the JSON document body.
const timeKey = "$time"

// SQLiteStore persists documents as JSON rows in a single table keyed by
// collection path and document id. Queries load the collection and are
// evaluated in process.
type SQLiteStore struct {
	db    *sql.DB
	clock func() time.Time
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db, clock: func() time.Time { return time.Now().UTC() }}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS documents (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        collection TEXT NOT NULL,
        id TEXT NOT NULL,
        data TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        UNIQUE (collection, id)
    );

    CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection);
    `
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM documents WHERE collection = ? AND id = ?", collection, id).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	data, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	return &Document{ID: id, Data: data}, nil
}

func (s *SQLiteStore) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	data = cloneMap(data)
	if data == nil {
		data = map[string]any{}
	}
	resolveServerTimestamps(data, s.clock())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if merge {
		var raw string
		err := tx.QueryRowContext(ctx, "SELECT data FROM documents WHERE collection = ? AND id = ?", collection, id).Scan(&raw)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return fmt.Errorf("failed to read document for merge: %w", err)
		default:
			existing, err := decodeDocument(raw)
			if err != nil {
				return err
			}
			for k, v := range data {
				existing[k] = v
			}
			data = existing
		}
	}

	encoded, err := encodeDocument(data)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
        INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
        ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data`,
		collection, id, encoded)
	if err != nil {
		return fmt.Errorf("failed to execute document upsert: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Update(ctx context.Context, collection, id string, data map[string]any) error {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}
	return s.Set(ctx, collection, id, data, true)
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE collection = ? AND id = ?", collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, data FROM documents WHERE collection = ? ORDER BY seq ASC", collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		data, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return applyQuery(docs, q), nil
}

func encodeDocument(data map[string]any) (string, error) {
	b, err := json.Marshal(encodeValue(data))
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	return string(b), nil
}

func decodeDocument(raw string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	decoded, _ := decodeValue(data).(map[string]any)
	return decoded, nil
}

func encodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return map[string]any{timeKey: t.UTC().Format(time.RFC3339Nano)}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = encodeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = encodeValue(e)
		}
		return out
	}
	return v
}

func decodeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if s, ok := t[timeKey].(string); ok && len(t) == 1 {
			if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return ts
			}
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = decodeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = decodeValue(e)
		}
		return out
	}
	return v
}
