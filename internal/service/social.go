package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/watpato/profile-server/internal/domain"
	domainerrors "github.com/watpato/profile-server/internal/errors"
	"github.com/watpato/profile-server/internal/store"
)

// notifyTimeout bounds the background notification delivery after the
// follow response has already been sent.
const notifyTimeout = 5 * time.Second

// Notifier delivers follow notifications. Implementations must be safe
// for concurrent use.
type Notifier interface {
	SendNewFollower(ctx context.Context, followedID int64, followerUsername string) error
}

// SocialService provides the follow graph operations.
type SocialService struct {
	store    store.Store
	notifier Notifier
	logger   *slog.Logger
}

// NewSocialService creates a new social service. The notifier may be nil,
// in which case follow notifications are skipped.
func NewSocialService(st store.Store, notifier Notifier, logger *slog.Logger) *SocialService {
	return &SocialService{
		store:    st,
		notifier: notifier,
		logger:   logger,
	}
}

// ToggleFollow flips the follow relationship from followerID to followedID
// and reports the resulting action. When a follow is established, the
// followed user is notified in the background; notification failures never
// affect the result.
func (s *SocialService) ToggleFollow(ctx context.Context, followerID, followedID int64) (domain.FollowAction, error) {
	if followerID == followedID {
		return "", domainerrors.Validation("You cannot follow yourself")
	}

	for _, id := range []int64{followerID, followedID} {
		exists, err := s.store.UserExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check user %d: %w", id, err)
		}
		if !exists {
			return "", domainerrors.NotFound("User not found")
		}
	}

	action, err := s.store.ToggleFollow(ctx, followerID, followedID)
	if err != nil {
		return "", fmt.Errorf("toggle follow: %w", err)
	}

	s.logger.Info("follow toggled",
		"follower_id", followerID,
		"followed_id", followedID,
		"action", action,
	)

	if action == domain.FollowActionFollowed && s.notifier != nil {
		go s.sendFollowNotification(followerID, followedID)
	}

	return action, nil
}

// sendFollowNotification runs detached from the request; it gets its own
// deadline so a slow notification service cannot leak goroutines. The
// follower's username is looked up here so unfollows never pay for it.
func (s *SocialService) sendFollowNotification(followerID, followedID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	follower, err := s.store.GetUser(ctx, followerID)
	if err != nil {
		s.logger.Warn("failed to load follower for notification",
			"follower_id", followerID,
			"error", err,
		)
		return
	}

	if err := s.notifier.SendNewFollower(ctx, followedID, follower.Username); err != nil {
		s.logger.Warn("failed to send follow notification",
			"followed_id", followedID,
			"follower", follower.Username,
			"error", err,
		)
	}
}
