package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/watpato/profile-server/internal/domain"
	"github.com/watpato/profile-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, username, email, friend_code, profile_picture, banner, biography, created_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		friendCode sql.NullString
		picture    sql.NullString
		banner     sql.NullString
		biography  sql.NullString
		createdAt  string
	)

	err := scanner.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&friendCode,
		&picture,
		&banner,
		&biography,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	u.FriendCode = stringPtr(friendCode)
	u.ProfilePicture = stringPtr(picture)
	u.Banner = stringPtr(banner)
	u.Biography = stringPtr(biography)

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a new user and assigns the generated ID.
// Returns store.ErrAlreadyExists if the username or email is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, friend_code, profile_picture, banner, biography, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.Email,
		nullableString(user.FriendCode),
		nullableString(user.ProfilePicture),
		nullableString(user.Banner),
		nullableString(user.Biography),
		formatTime(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	user.ID, err = result.LastInsertId()
	return err
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UserExists reports whether a user with the given ID exists.
func (s *Store) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

// UsernameTaken reports whether username belongs to a user other than excludeID.
// Pass excludeID 0 to check against all users.
func (s *Store) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	var taken int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = ? AND id != ?)`,
		username, excludeID).Scan(&taken)
	if err != nil {
		return false, err
	}
	return taken == 1, nil
}

// UpdateProfilePicture sets the profile picture URL for a user.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) UpdateProfilePicture(ctx context.Context, userID int64, url string) error {
	return s.updateUserColumn(ctx, userID, "profile_picture", url)
}

// UpdateBanner sets the banner URL for a user.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) UpdateBanner(ctx context.Context, userID int64, url string) error {
	return s.updateUserColumn(ctx, userID, "banner", url)
}

func (s *Store) updateUserColumn(ctx context.Context, userID int64, column, value string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+column+` = ? WHERE id = ?`, value, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// UpdateProfileInfo applies a partial profile update in a single transaction.
// Nil patch fields leave the current value untouched; a non-nil FavoriteGenres
// slice replaces the full favorite set. The updated profile info is re-read
// inside the same transaction so the caller sees a consistent snapshot.
// Returns store.ErrNotFound if the user does not exist and
// store.ErrAlreadyExists if the new username is taken.
func (s *Store) UpdateProfileInfo(ctx context.Context, userID int64, patch domain.ProfilePatch) (*domain.ProfileInfo, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, store.ErrNotFound
	}

	if patch.Username != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET username = ? WHERE id = ?`, *patch.Username, userID); err != nil {
			if isUniqueViolation(err) {
				return nil, store.ErrAlreadyExists
			}
			return nil, err
		}
	}

	if patch.Biography != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET biography = ? WHERE id = ?`, *patch.Biography, userID); err != nil {
			return nil, err
		}
	}

	if patch.FavoriteGenres != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_fav_genres WHERE user_id = ?`, userID); err != nil {
			return nil, err
		}
		// OR IGNORE tolerates duplicate IDs in the request.
		for _, genreID := range patch.FavoriteGenres {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO user_fav_genres (user_id, genre_id) VALUES (?, ?)`,
				userID, genreID); err != nil {
				return nil, err
			}
		}
	}

	info := domain.ProfileInfo{ID: userID}
	var biography sql.NullString
	if err := tx.QueryRowContext(ctx,
		`SELECT username, biography FROM users WHERE id = ?`, userID).
		Scan(&info.Username, &biography); err != nil {
		return nil, err
	}
	info.Biography = stringPtr(biography)

	info.FavoriteGenres, err = favoriteGenres(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &info, nil
}
