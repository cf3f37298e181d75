package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/repository"
	"github.com/bnema/ember/internal/logging"
)

type sessionStateRepo struct {
	db *sql.DB
}

// NewSessionStateRepository creates a new SQLite-backed session state repository.
func NewSessionStateRepository(db *sql.DB) repository.SessionStateRepository {
	return &sessionStateRepo{db: db}
}

func (r *sessionStateRepo) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session_state (id, state_json, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET state_json = excluded.state_json, saved_at = excluded.saved_at`,
		string(data), time.Now().Unix())
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Int("tabs", state.TabCount()).Msg("session state saved")
	return nil
}

func (r *sessionStateRepo) GetSnapshot(ctx context.Context) (*entity.SessionState, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT state_json FROM session_state WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state entity.SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &state, nil
}

func (r *sessionStateRepo) ClearLastSessionState(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_state`)
	return err
}
