package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watpato/profile-server/internal/domain"
	domainerrors "github.com/watpato/profile-server/internal/errors"
	"github.com/watpato/profile-server/internal/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createUser(t *testing.T, s *sqlite.Store, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@test.com",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createGenre(t *testing.T, s *sqlite.Store, name string) *domain.Genre {
	t.Helper()
	g := &domain.Genre{Name: name}
	require.NoError(t, s.CreateGenre(context.Background(), g))
	return g
}

func createBook(t *testing.T, s *sqlite.Store, title string, authorID int64, published bool) *domain.Book {
	t.Helper()
	book := &domain.Book{
		Title:     title,
		AuthorID:  &authorID,
		Published: published,
	}
	require.NoError(t, s.CreateBook(context.Background(), book))
	return book
}

func strPtr(s string) *string { return &s }

func TestGetOwnProfile(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	author := createUser(t, st, "writer")
	fan := createUser(t, st, "fan")

	fantasy := createGenre(t, st, "Fantasy")
	_, err := st.UpdateProfileInfo(ctx, author.ID, domain.ProfilePatch{
		FavoriteGenres: []int64{fantasy.ID},
	})
	require.NoError(t, err)

	published := createBook(t, st, "Published Work", author.ID, true)
	createBook(t, st, "Work In Progress", author.ID, false)

	require.NoError(t, st.LikeBook(ctx, author.ID, published.ID))
	_, err = st.ToggleFollow(ctx, fan.ID, author.ID)
	require.NoError(t, err)

	profile, err := svc.GetOwnProfile(ctx, author.ID)
	require.NoError(t, err)

	assert.Equal(t, "writer", profile.User.Username)
	assert.Len(t, profile.FavoriteGenres, 1)
	assert.Len(t, profile.LikedBooks, 1)
	// Own view includes drafts.
	assert.Len(t, profile.OwnBooks, 2)
	assert.Equal(t, 2, profile.Stats.BooksWritten)
	assert.Equal(t, 1, profile.Stats.BooksLiked)
	assert.Equal(t, 1, profile.Stats.FollowersCount)
	assert.Equal(t, 0, profile.Stats.FriendsCount)
}

func TestGetOwnProfile_NotFound(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())

	_, err := svc.GetOwnProfile(context.Background(), 777)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetPublicProfile(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	author := createUser(t, st, "public_author")
	createBook(t, st, "Published", author.ID, true)
	createBook(t, st, "Draft", author.ID, false)

	profile, err := svc.GetPublicProfile(ctx, author.ID)
	require.NoError(t, err)

	assert.Equal(t, "public_author", profile.User.Username)
	// Public view hides drafts.
	require.Len(t, profile.PublishedBooks, 1)
	assert.Equal(t, "Published", profile.PublishedBooks[0].Title)
	assert.Equal(t, 1, profile.Stats.BooksPublished)
	assert.Equal(t, 0, profile.Stats.FollowersCount)
}

func TestUpdateProfilePicture(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	user := createUser(t, st, "pic_user")

	updated, err := svc.UpdateProfilePicture(ctx, user.ID, "https://cdn.test/p.png")
	require.NoError(t, err)
	assert.Equal(t, "pic_user", updated.Username)
	require.NotNil(t, updated.ProfilePicture)
	assert.Equal(t, "https://cdn.test/p.png", *updated.ProfilePicture)

	got, err := st.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProfilePicture)
	assert.Equal(t, "https://cdn.test/p.png", *got.ProfilePicture)

	_, err = svc.UpdateProfilePicture(ctx, user.ID+100, "x")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUpdateBanner(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	user := createUser(t, st, "banner_user")

	updated, err := svc.UpdateBanner(ctx, user.ID, "https://cdn.test/b.png")
	require.NoError(t, err)
	require.NotNil(t, updated.Banner)
	assert.Equal(t, "https://cdn.test/b.png", *updated.Banner)

	got, err := st.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Banner)
	assert.Equal(t, "https://cdn.test/b.png", *got.Banner)

	_, err = svc.UpdateBanner(ctx, user.ID+100, "x")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUpdateProfileInfo(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	user := createUser(t, st, "old_name")
	fantasy := createGenre(t, st, "Fantasy")
	mystery := createGenre(t, st, "Mystery")

	info, err := svc.UpdateProfileInfo(ctx, user.ID, domain.ProfilePatch{
		Username:       strPtr("new_name"),
		Biography:      strPtr("Hello there"),
		FavoriteGenres: []int64{fantasy.ID, mystery.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "new_name", info.Username)
	require.NotNil(t, info.Biography)
	assert.Equal(t, "Hello there", *info.Biography)
	assert.Len(t, info.FavoriteGenres, 2)
}

func TestUpdateProfileInfo_SameUsernameAllowed(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	user := createUser(t, st, "keeper")

	// Re-submitting your own username is not a conflict.
	info, err := svc.UpdateProfileInfo(ctx, user.ID, domain.ProfilePatch{
		Username: strPtr("keeper"),
	})
	require.NoError(t, err)
	assert.Equal(t, "keeper", info.Username)
}

func TestUpdateProfileInfo_UsernameConflict(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	createUser(t, st, "taken_name")
	user := createUser(t, st, "other_user")

	_, err := svc.UpdateProfileInfo(ctx, user.ID, domain.ProfilePatch{
		Username: strPtr("taken_name"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestUpdateProfileInfo_UnknownGenre(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	user := createUser(t, st, "genre_user")
	fantasy := createGenre(t, st, "Fantasy")

	_, err := svc.UpdateProfileInfo(ctx, user.ID, domain.ProfilePatch{
		FavoriteGenres: []int64{fantasy.ID, fantasy.ID + 100},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// The favorite set must be untouched after the rejected update.
	genres, err := st.FavoriteGenres(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func TestUpdateProfileInfo_DuplicateGenresAccepted(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())
	ctx := context.Background()

	user := createUser(t, st, "dup_genre_user")
	fantasy := createGenre(t, st, "Fantasy")

	info, err := svc.UpdateProfileInfo(ctx, user.ID, domain.ProfilePatch{
		FavoriteGenres: []int64{fantasy.ID, fantasy.ID},
	})
	require.NoError(t, err)
	assert.Len(t, info.FavoriteGenres, 1)
}

func TestUpdateProfileInfo_NotFound(t *testing.T) {
	st := newTestStore(t)
	svc := NewProfileService(st, testLogger())

	_, err := svc.UpdateProfileInfo(context.Background(), 12345, domain.ProfilePatch{
		Biography: strPtr("ghost bio"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
