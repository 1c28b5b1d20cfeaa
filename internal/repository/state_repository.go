package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("state not found")

// StateEntry is one persisted collection, stored as a JSON document under its partition key.
type StateEntry struct {
	Key  string `db:"state_key"`
	Data string `db:"data"`
}

type StateRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	List(ctx context.Context) ([]StateEntry, error)
	Delete(ctx context.Context, key string) error
}

type stateRepository struct {
	db    *sqlx.DB
	table string
}

func NewLocalStateRepository(db *sqlx.DB) StateRepository {
	return &stateRepository{db: db, table: "local_state"}
}

func NewCloudStateRepository(db *sqlx.DB) StateRepository {
	return &stateRepository{db: db, table: "cloud_state"}
}

func (r *stateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var data string
	query := r.db.Rebind(`SELECT data FROM ` + r.table + ` WHERE state_key = ?`)
	err := r.db.GetContext(ctx, &data, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (r *stateRepository) Put(ctx context.Context, key string, data []byte) error {
	query := r.db.Rebind(`
		INSERT INTO ` + r.table + ` (state_key, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (state_key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`)

	_, err := r.db.ExecContext(ctx, query, key, string(data))
	return err
}

func (r *stateRepository) List(ctx context.Context) ([]StateEntry, error) {
	var entries []StateEntry
	query := `SELECT state_key, data FROM ` + r.table + ` ORDER BY state_key`
	err := r.db.SelectContext(ctx, &entries, query)
	return entries, err
}

func (r *stateRepository) Delete(ctx context.Context, key string) error {
	query := r.db.Rebind(`DELETE FROM ` + r.table + ` WHERE state_key = ?`)
	_, err := r.db.ExecContext(ctx, query, key)
	return err
}
