// Package store defines the persistence interface for the profile server.
package store

import (
	"context"

	"github.com/watpato/profile-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	UpdateProfilePicture(ctx context.Context, userID int64, url string) error
	UpdateBanner(ctx context.Context, userID int64, url string) error
	UpdateProfileInfo(ctx context.Context, userID int64, patch domain.ProfilePatch) (*domain.ProfileInfo, error)

	// Genres
	CreateGenre(ctx context.Context, g *domain.Genre) error
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	FavoriteGenres(ctx context.Context, userID int64) ([]domain.Genre, error)
	CountGenres(ctx context.Context, ids []int64) (int, error)

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	LikeBook(ctx context.Context, userID, bookID int64) error
	LikedBooks(ctx context.Context, userID int64) ([]domain.LikedBook, error)
	BooksByAuthor(ctx context.Context, authorID int64, publishedOnly bool) ([]domain.Book, error)

	// Follows and friends
	ToggleFollow(ctx context.Context, followerID, followedID int64) (domain.FollowAction, error)
	AddFriend(ctx context.Context, userID, friendID int64) error

	// Stats
	OwnStats(ctx context.Context, userID int64) (domain.OwnStats, error)
	PublicStats(ctx context.Context, userID int64) (domain.PublicStats, error)
}
