package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/watpato/profile-server/internal/domain"
	domainerrors "github.com/watpato/profile-server/internal/errors"
	"github.com/watpato/profile-server/internal/store"
)

// ProfileService provides user profile management.
type ProfileService struct {
	store  store.Store
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(st store.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:  st,
		logger: logger,
	}
}

// GetOwnProfile assembles the full profile a user sees for themselves:
// account fields, favorite genres, liked books, all authored books
// including drafts, and the private stat counters.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID int64) (*domain.OwnProfile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	genres, err := s.store.FavoriteGenres(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite genres: %w", err)
	}

	liked, err := s.store.LikedBooks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("liked books: %w", err)
	}

	own, err := s.store.BooksByAuthor(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("own books: %w", err)
	}

	stats, err := s.store.OwnStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("own stats: %w", err)
	}

	return &domain.OwnProfile{
		User:           *user,
		FavoriteGenres: genres,
		LikedBooks:     liked,
		OwnBooks:       own,
		Stats:          stats,
	}, nil
}

// GetPublicProfile assembles the profile visible to other users. Drafts
// are excluded and only the public stat counters are exposed.
func (s *ProfileService) GetPublicProfile(ctx context.Context, userID int64) (*domain.PublicProfile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	genres, err := s.store.FavoriteGenres(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite genres: %w", err)
	}

	published, err := s.store.BooksByAuthor(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("published books: %w", err)
	}

	stats, err := s.store.PublicStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("public stats: %w", err)
	}

	return &domain.PublicProfile{
		User:           *user,
		FavoriteGenres: genres,
		PublishedBooks: published,
		Stats:          stats,
	}, nil
}

// UpdateProfilePicture sets the profile picture URL for a user and returns
// the updated account record.
func (s *ProfileService) UpdateProfilePicture(ctx context.Context, userID int64, url string) (*domain.User, error) {
	if err := s.store.UpdateProfilePicture(ctx, userID, url); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("update profile picture: %w", err)
	}

	s.logger.Info("updated profile picture", "user_id", userID)
	return s.getUser(ctx, userID)
}

// UpdateBanner sets the banner URL for a user and returns the updated
// account record.
func (s *ProfileService) UpdateBanner(ctx context.Context, userID int64, url string) (*domain.User, error) {
	if err := s.store.UpdateBanner(ctx, userID, url); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("update banner: %w", err)
	}

	s.logger.Info("updated banner", "user_id", userID)
	return s.getUser(ctx, userID)
}

// UpdateProfileInfo applies a partial update to username, biography, and
// the favorite genre set. Username collisions and unknown genre IDs are
// rejected before the store transaction runs.
func (s *ProfileService) UpdateProfileInfo(ctx context.Context, userID int64, patch domain.ProfilePatch) (*domain.ProfileInfo, error) {
	if patch.Username != nil {
		taken, err := s.store.UsernameTaken(ctx, *patch.Username, userID)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if taken {
			return nil, domainerrors.Conflict("Username already exists")
		}
	}

	if patch.FavoriteGenres != nil {
		if err := s.validateGenres(ctx, patch.FavoriteGenres); err != nil {
			return nil, err
		}
	}

	info, err := s.store.UpdateProfileInfo(ctx, userID, patch)
	if err != nil {
		switch {
		case domainerrors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("User not found")
		case domainerrors.Is(err, store.ErrAlreadyExists):
			// Lost the race between the pre-check and the write.
			return nil, domainerrors.Conflict("Username already exists")
		}
		return nil, fmt.Errorf("update profile info: %w", err)
	}

	s.logger.Info("updated profile info",
		"user_id", userID,
		"username_changed", patch.Username != nil,
		"genres_changed", patch.FavoriteGenres != nil,
	)
	return info, nil
}

// validateGenres verifies that every requested genre ID exists.
func (s *ProfileService) validateGenres(ctx context.Context, ids []int64) error {
	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	count, err := s.store.CountGenres(ctx, unique)
	if err != nil {
		return fmt.Errorf("count genres: %w", err)
	}
	if count != len(unique) {
		return domainerrors.Validation("One or more favorite genres do not exist")
	}
	return nil
}

func (s *ProfileService) getUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
