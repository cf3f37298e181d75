package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/repository"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

type privacyStatsRepo struct {
	db *sql.DB
}

// NewPrivacyStatsRepository creates a new SQLite-backed tracker counter.
func NewPrivacyStatsRepository(db *sql.DB) repository.PrivacyStatsRepository {
	return &privacyStatsRepo{db: db}
}

func (r *privacyStatsRepo) Increment(ctx context.Context, company, day string, n int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO privacy_stats (company, day, count) VALUES (?, ?, ?)
		ON CONFLICT(company, day) DO UPDATE SET count = count + excluded.count`,
		company, day, n)
	return err
}

func (r *privacyStatsRepo) Total(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(count), 0) FROM privacy_stats`).Scan(&n)
	return n, err
}

func (r *privacyStatsRepo) ClearPrivacyStats(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM privacy_stats`)
	return err
}

type chatHistoryRepo struct {
	db *sql.DB
}

// NewChatHistoryRepository creates a new SQLite-backed chat history store.
func NewChatHistoryRepository(db *sql.DB) repository.ChatHistoryRepository {
	return &chatHistoryRepo{db: db}
}

func (r *chatHistoryRepo) Add(ctx context.Context, chat *entity.AIChat) error {
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ai_chats (id, title, created_at) VALUES (?, ?, ?)`,
		chat.ID, chat.Title, chat.CreatedAt.Unix())
	return err
}

func (r *chatHistoryRepo) List(ctx context.Context) ([]*entity.AIChat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, created_at FROM ai_chats ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.AIChat
	for rows.Next() {
		var c entity.AIChat
		var created int64
		if err := rows.Scan(&c.ID, &c.Title, &created); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(created, 0)
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *chatHistoryRepo) CleanAIChatHistory(ctx context.Context) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ai_chats`)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	logging.FromContext(ctx).Debug().Int64("removed", n).Msg("chat history cleaned")
	return nil
}

type bookmarkRepo struct {
	db         *sql.DB
	syncActive func() bool
}

// NewBookmarkRepository creates a new SQLite-backed bookmark store.
// syncActive reports whether bookmark sync is enabled; nil means never.
func NewBookmarkRepository(db *sql.DB, syncActive func() bool) repository.BookmarkRepository {
	return &bookmarkRepo{db: db, syncActive: syncActive}
}

func (r *bookmarkRepo) Add(ctx context.Context, b *entity.Bookmark) error {
	b.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (url, title, domain, deleted, updated_at) VALUES (?, ?, ?, 0, ?)`,
		b.URL, b.Title, domainOf(b.URL), b.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	b.ID, err = res.LastInsertId()
	return err
}

// Delete leaves a tombstone for sync.
func (r *bookmarkRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookmarks SET deleted = 1, updated_at = ? WHERE id = ?`, time.Now().Unix(), id)
	return err
}

func (r *bookmarkRepo) List(ctx context.Context) ([]*entity.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, title, deleted, updated_at FROM bookmarks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Bookmark
	for rows.Next() {
		var b entity.Bookmark
		var updated int64
		if err := rows.Scan(&b.ID, &b.URL, &b.Title, &b.Deleted, &updated); err != nil {
			return nil, err
		}
		b.UpdatedAt = time.Unix(updated, 0)
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *bookmarkRepo) Domains(ctx context.Context) (scope.Set, error) {
	return selectDomains(ctx, r.db, `SELECT DISTINCT domain FROM bookmarks WHERE deleted = 0`)
}

func (r *bookmarkRepo) IsSyncActive(context.Context) bool {
	return r.syncActive != nil && r.syncActive()
}

func (r *bookmarkRepo) PurgeDeletedBookmarks(ctx context.Context) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE deleted = 1`)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	logging.FromContext(ctx).Debug().Int64("removed", n).Msg("deleted bookmarks purged")
	return nil
}

type savedLoginRepo struct {
	db *sql.DB
}

// NewSavedLoginRepository creates a new SQLite-backed saved login index.
func NewSavedLoginRepository(db *sql.DB) repository.SavedLoginRepository {
	return &savedLoginRepo{db: db}
}

func (r *savedLoginRepo) Add(ctx context.Context, login *entity.SavedLogin) error {
	login.Domain = domainOf(login.Domain)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_logins (domain, username) VALUES (?, ?)`, login.Domain, login.Username)
	if err != nil {
		return err
	}
	login.ID, err = res.LastInsertId()
	return err
}

func (r *savedLoginRepo) Domains(ctx context.Context) (scope.Set, error) {
	return selectDomains(ctx, r.db, `SELECT DISTINCT domain FROM saved_logins`)
}
