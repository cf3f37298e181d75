package repository

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

// PrivacyStatsRepository counts blocked trackers.
type PrivacyStatsRepository interface {
	Increment(ctx context.Context, company, day string, n int64) error
	Total(ctx context.Context) (int64, error)
	ClearPrivacyStats(ctx context.Context) error
}

// ChatHistoryRepository stores chat assistant conversations.
type ChatHistoryRepository interface {
	Add(ctx context.Context, chat *entity.AIChat) error
	List(ctx context.Context) ([]*entity.AIChat, error)
	CleanAIChatHistory(ctx context.Context) error
}

// BookmarkRepository stores bookmarks. Deleted bookmarks are kept as
// tombstones until sync acknowledged them.
type BookmarkRepository interface {
	Add(ctx context.Context, b *entity.Bookmark) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Bookmark, error)
	// Domains lists the eTLD+1 of live bookmarks.
	Domains(ctx context.Context) (scope.Set, error)
	IsSyncActive(ctx context.Context) bool
	PurgeDeletedBookmarks(ctx context.Context) error
}

// SavedLoginRepository exposes the domains of stored credentials.
type SavedLoginRepository interface {
	Add(ctx context.Context, login *entity.SavedLogin) error
	Domains(ctx context.Context) (scope.Set, error)
}
