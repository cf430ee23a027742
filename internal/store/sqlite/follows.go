package sqlite

import (
	"context"
	"time"

	"github.com/watpato/profile-server/internal/domain"
	"github.com/watpato/profile-server/internal/store"
)

// ToggleFollow flips the follow relationship from followerID to followedID
// and reports which way it flipped. The existence check runs as a plain read
// before the write, so two callers racing from "no relationship" both act as
// follow attempts: the loser's insert hits the primary key and resolves to
// followed, leaving exactly one row.
func (s *Store) ToggleFollow(ctx context.Context, followerID, followedID int64) (domain.FollowAction, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM user_follows WHERE follower_id = ? AND followed_id = ?
		)`, followerID, followedID).Scan(&exists)
	if err != nil {
		return "", err
	}

	if !exists {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO user_follows (follower_id, followed_id, created_at)
			VALUES (?, ?, ?)`,
			followerID, followedID, formatTime(time.Now()))
		if err != nil {
			if isUniqueViolation(err) {
				// A concurrent toggle inserted the row first. Both
				// callers meant to follow, and the follow stands.
				return domain.FollowActionFollowed, nil
			}
			return "", err
		}
		return domain.FollowActionFollowed, nil
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM user_follows WHERE follower_id = ? AND followed_id = ?`,
		followerID, followedID)
	if err != nil {
		return "", err
	}

	// A delete that found no row means a concurrent toggle removed it
	// between our read and the write; the relationship is gone either way.
	return domain.FollowActionUnfollowed, nil
}

// AddFriend records a friendship between two users. The pair is stored once
// regardless of direction.
// Returns store.ErrAlreadyExists if the friendship is already recorded.
func (s *Store) AddFriend(ctx context.Context, userID, friendID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_friends (user_id, friend_id) VALUES (?, ?)`,
		userID, friendID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}
