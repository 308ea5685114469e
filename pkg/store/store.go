package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/CTAG07/namegen/pkg/textgen"
)

// ErrModelNotFound is returned when no model is stored under a name.
var ErrModelNotFound = errors.New("model not found")

// Store saves and loads models. Its methods are safe for concurrent use.
type Store struct {
	db         *sql.DB
	stmtGet    *sql.Stmt
	stmtList   *sql.Stmt
	stmtUpsert *sql.Stmt
	stmtRemove *sql.Stmt
	logger     *slog.Logger
}

// New prepares the statements used by the store. SetupSchema must have been
// called on db first.
func New(db *sql.DB) (*Store, error) {
	stmtGet, err := db.Prepare(`SELECT model_id, model_uuid, engine, dataset_length, payload, created_at FROM namegen_models WHERE model_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtList, err := db.Prepare(`SELECT model_id, model_uuid, model_name, engine, dataset_length, created_at FROM namegen_models ORDER BY model_name;`)
	if err != nil {
		return nil, err
	}

	stmtUpsert, err := db.Prepare(`
INSERT INTO namegen_models (model_uuid, model_name, engine, dataset_length, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(model_name) DO UPDATE SET
    model_uuid = excluded.model_uuid,
    engine = excluded.engine,
    dataset_length = excluded.dataset_length,
    payload = excluded.payload,
    created_at = excluded.created_at
RETURNING model_id;`)
	if err != nil {
		return nil, err
	}

	stmtRemove, err := db.Prepare(`DELETE FROM namegen_models WHERE model_name = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		stmtGet:    stmtGet,
		stmtList:   stmtList,
		stmtUpsert: stmtUpsert,
		stmtRemove: stmtRemove,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases the prepared statements. The database itself stays open.
func (s *Store) Close() {
	_ = s.stmtGet.Close()
	_ = s.stmtList.Close()
	_ = s.stmtUpsert.Close()
	_ = s.stmtRemove.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Save snapshots m and stores it under name, replacing any model already
// stored under that name.
func (s *Store) Save(ctx context.Context, name string, m textgen.Model) (Info, error) {
	r, err := NewRecord(name, m)
	if err != nil {
		return Info{}, err
	}
	if err := s.put(ctx, s.stmtUpsert, r); err != nil {
		return Info{}, err
	}

	s.logger.InfoContext(ctx, "Model saved",
		slog.String("model_name", r.Name),
		slog.String("model_uuid", r.UUID.String()),
		slog.String("engine", r.Engine),
		slog.Int("dataset_length", r.DatasetLength),
	)
	return r.Info, nil
}

func (s *Store) put(ctx context.Context, stmt *sql.Stmt, r *Record) error {
	if r.Name == "" {
		return errors.New("model name must not be empty")
	}
	payload, err := r.encodePayload()
	if err != nil {
		return fmt.Errorf("could not encode model '%s': %w", r.Name, err)
	}
	err = stmt.QueryRowContext(ctx, r.UUID.String(), r.Name, r.Engine, r.DatasetLength, payload, r.CreatedAt.Unix()).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("could not store model '%s': %w", r.Name, err)
	}
	return nil
}

// Load returns the model stored under name.
func (s *Store) Load(ctx context.Context, name string) (*Record, error) {
	r := &Record{Info: Info{Name: name}}
	var payload []byte
	var created int64
	err := s.stmtGet.QueryRowContext(ctx, name).Scan(&r.ID, &r.UUID, &r.Engine, &r.DatasetLength, &payload, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: '%s'", ErrModelNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load model '%s': %w", name, err)
	}
	r.CreatedAt = time.Unix(created, 0).UTC()

	if err := r.decodePayload(payload); err != nil {
		return nil, fmt.Errorf("could not decode model '%s': %w", name, err)
	}
	return r, nil
}

// LoadGenerator loads the model stored under name and rebuilds its generator.
func (s *Store) LoadGenerator(ctx context.Context, name string) (textgen.Model, error) {
	r, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return r.Generator()
}

// List returns the metadata of every stored model, ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []Info
	for rows.Next() {
		var info Info
		var created int64
		if err = rows.Scan(&info.ID, &info.UUID, &info.Name, &info.Engine, &info.DatasetLength, &created); err != nil {
			return nil, err
		}
		info.CreatedAt = time.Unix(created, 0).UTC()
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes the model stored under name.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.stmtRemove.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to remove model '%s': %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: '%s'", ErrModelNotFound, name)
	}

	s.logger.InfoContext(ctx, "Model removed successfully", slog.String("model_name", name))
	return nil
}
