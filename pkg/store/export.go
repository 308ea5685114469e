package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// Export writes the model stored under name to w as indented JSON.
func (s *Store) Export(ctx context.Context, name string, w io.Writer) error {
	r, err := s.Load(ctx, name)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Model exported",
		slog.String("model_name", r.Name),
		slog.String("engine", r.Engine),
	)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// Import reads a model written by Export and stores it, replacing any model
// with the same name. The model is validated by rebuilding its generator
// before anything is written.
func (s *Store) Import(ctx context.Context, r io.Reader) (Info, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return Info{}, fmt.Errorf("failed to decode json model: %w", err)
	}
	if _, err := rec.Generator(); err != nil {
		return Info{}, fmt.Errorf("invalid model '%s': %w", rec.Name, err)
	}
	if rec.UUID == uuid.Nil {
		rec.UUID = uuid.New()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Info{}, fmt.Errorf("could not begin transaction for import: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if err := s.put(ctx, tx.StmtContext(ctx, s.stmtUpsert), &rec); err != nil {
		return Info{}, err
	}
	if err := tx.Commit(); err != nil {
		return Info{}, fmt.Errorf("could not commit import: %w", err)
	}

	s.logger.InfoContext(ctx, "Model imported successfully",
		slog.String("model_name", rec.Name),
		slog.String("model_uuid", rec.UUID.String()),
		slog.String("engine", rec.Engine),
	)
	return rec.Info, nil
}

// WriteFile writes rec to path as indented JSON. The file is replaced
// atomically, so readers never observe a partial model.
func WriteFile(path string, rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode model '%s': %w", rec.Name, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("could not write model file '%s': %w", path, err)
	}
	return nil
}

// ReadFile reads a model written by WriteFile or Export.
func ReadFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read model file '%s': %w", path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("could not decode model file '%s': %w", path, err)
	}
	return &rec, nil
}
