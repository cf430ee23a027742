package sqlite

import (
	"context"

	"github.com/watpato/profile-server/internal/domain"
)

// OwnStats collects the counters shown on a user's own profile.
// Friendships are stored once per pair, so both directions are counted.
func (s *Store) OwnStats(ctx context.Context, userID int64) (domain.OwnStats, error) {
	var stats domain.OwnStats

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM user_friends WHERE user_id = ?1 OR friend_id = ?1),
			(SELECT COUNT(*) FROM user_follows WHERE followed_id = ?1),
			(SELECT COUNT(*) FROM books WHERE author_id = ?1),
			(SELECT COUNT(*) FROM book_likes WHERE user_id = ?1)`,
		userID).Scan(
		&stats.FriendsCount,
		&stats.FollowersCount,
		&stats.BooksWritten,
		&stats.BooksLiked,
	)
	if err != nil {
		return domain.OwnStats{}, err
	}
	return stats, nil
}

// PublicStats collects the counters shown on another user's profile.
func (s *Store) PublicStats(ctx context.Context, userID int64) (domain.PublicStats, error) {
	var stats domain.PublicStats

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM user_follows WHERE followed_id = ?1),
			(SELECT COUNT(*) FROM books WHERE author_id = ?1 AND published = 1)`,
		userID).Scan(
		&stats.FollowersCount,
		&stats.BooksPublished,
	)
	if err != nil {
		return domain.PublicStats{}, err
	}
	return stats, nil
}
